package organization

import (
	"context"
	"fmt"

	"github.com/complyark/dpdpa-portal/internal/organization/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

// DBQuery objects for organization operations
var (
	QueryCreateOrganization = dbmodel.DBQuery{
		ID: "CREATE_ORGANIZATION",
		Query: "INSERT INTO ORGANIZATION (ORGANIZATION_NAME, INDUSTRY_ID, CONTACT_EMAIL, CONTACT_PHONE, " +
			"ADDRESS, REQUEST_PAGE_TOKEN) VALUES (?, ?, ?, ?, ?, ?)",
	}

	QueryGetOrganizationByID = dbmodel.DBQuery{
		ID: "GET_ORGANIZATION_BY_ID",
		Query: "SELECT ORGANIZATION_ID, ORGANIZATION_NAME, INDUSTRY_ID, CONTACT_EMAIL, CONTACT_PHONE, " +
			"ADDRESS, REQUEST_PAGE_TOKEN FROM ORGANIZATION WHERE ORGANIZATION_ID = ?",
	}

	QueryGetOrganizationByPageToken = dbmodel.DBQuery{
		ID: "GET_ORGANIZATION_BY_PAGE_TOKEN",
		Query: "SELECT ORGANIZATION_ID, ORGANIZATION_NAME, INDUSTRY_ID, CONTACT_EMAIL, CONTACT_PHONE, " +
			"ADDRESS, REQUEST_PAGE_TOKEN FROM ORGANIZATION WHERE REQUEST_PAGE_TOKEN = ?",
	}

	QueryGetAllOrganizations = dbmodel.DBQuery{
		ID: "GET_ALL_ORGANIZATIONS",
		Query: "SELECT ORGANIZATION_ID, ORGANIZATION_NAME, INDUSTRY_ID, CONTACT_EMAIL, CONTACT_PHONE, " +
			"ADDRESS, REQUEST_PAGE_TOKEN FROM ORGANIZATION ORDER BY ORGANIZATION_NAME",
	}

	QueryUpdateOrganization = dbmodel.DBQuery{
		ID: "UPDATE_ORGANIZATION",
		Query: "UPDATE ORGANIZATION SET ORGANIZATION_NAME = ?, INDUSTRY_ID = ?, CONTACT_EMAIL = ?, " +
			"CONTACT_PHONE = ?, ADDRESS = ? WHERE ORGANIZATION_ID = ?",
	}

	QueryUpdateOrganizationPageToken = dbmodel.DBQuery{
		ID:    "UPDATE_ORGANIZATION_PAGE_TOKEN",
		Query: "UPDATE ORGANIZATION SET REQUEST_PAGE_TOKEN = ? WHERE ORGANIZATION_ID = ?",
	}
)

// OrganizationStore defines the interface for organization data operations
type OrganizationStore interface {
	Create(tx dbmodel.TxInterface, org *model.Organization) error
	GetByID(ctx context.Context, organizationID int64) (*model.Organization, error)
	GetByPageToken(ctx context.Context, token string) (*model.Organization, error)
	List(ctx context.Context) ([]model.Organization, error)
	Update(tx dbmodel.TxInterface, org *model.Organization) error
	UpdatePageToken(tx dbmodel.TxInterface, organizationID int64, token string) error
}

type store struct {
	dbClient provider.DBClientInterface
}

// NewOrganizationStore creates a new organization store
func NewOrganizationStore(dbClient provider.DBClientInterface) OrganizationStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new organization and populates its generated ID
func (s *store) Create(tx dbmodel.TxInterface, org *model.Organization) error {
	result, err := tx.Exec(QueryCreateOrganization.Query,
		org.OrganizationName,
		org.IndustryID,
		org.ContactEmail,
		org.ContactPhone,
		org.Address,
		org.RequestPageToken,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	org.OrganizationID = id
	return nil
}

// GetByID retrieves an organization by ID
func (s *store) GetByID(ctx context.Context, organizationID int64) (*model.Organization, error) {
	results, err := s.dbClient.Query(QueryGetOrganizationByID, organizationID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("organization %w", dbutils.ErrNotFound)
	}
	return mapToOrganization(results[0]), nil
}

// GetByPageToken retrieves an organization by its public submission token
func (s *store) GetByPageToken(ctx context.Context, token string) (*model.Organization, error) {
	results, err := s.dbClient.Query(QueryGetOrganizationByPageToken, token)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("organization %w", dbutils.ErrNotFound)
	}
	return mapToOrganization(results[0]), nil
}

// List retrieves all organizations
func (s *store) List(ctx context.Context) ([]model.Organization, error) {
	results, err := s.dbClient.Query(QueryGetAllOrganizations)
	if err != nil {
		return nil, err
	}

	orgs := make([]model.Organization, 0, len(results))
	for _, row := range results {
		orgs = append(orgs, *mapToOrganization(row))
	}
	return orgs, nil
}

// Update updates an organization's profile fields
func (s *store) Update(tx dbmodel.TxInterface, org *model.Organization) error {
	_, err := tx.Exec(QueryUpdateOrganization.Query,
		org.OrganizationName,
		org.IndustryID,
		org.ContactEmail,
		org.ContactPhone,
		org.Address,
		org.OrganizationID,
	)
	return err
}

// UpdatePageToken rotates the organization's public submission token
func (s *store) UpdatePageToken(tx dbmodel.TxInterface, organizationID int64, token string) error {
	_, err := tx.Exec(QueryUpdateOrganizationPageToken.Query, token, organizationID)
	return err
}

func mapToOrganization(row map[string]interface{}) *model.Organization {
	return &model.Organization{
		OrganizationID:   dbutils.ToInt64(row["ORGANIZATION_ID"]),
		OrganizationName: dbutils.ToString(row["ORGANIZATION_NAME"]),
		IndustryID:       dbutils.ToInt64(row["INDUSTRY_ID"]),
		ContactEmail:     dbutils.ToString(row["CONTACT_EMAIL"]),
		ContactPhone:     dbutils.ToString(row["CONTACT_PHONE"]),
		Address:          dbutils.ToString(row["ADDRESS"]),
		RequestPageToken: dbutils.ToString(row["REQUEST_PAGE_TOKEN"]),
	}
}
