package user

import (
	"context"
	"fmt"

	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/user/model"
)

// DBQuery objects for user operations
var (
	QueryCreateUser = dbmodel.DBQuery{
		ID: "CREATE_USER",
		Query: "INSERT INTO PORTAL_USER (ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, ROLE, IS_ACTIVE) " +
			"VALUES (?, ?, ?, ?, ?, ?)",
	}

	QueryGetUserByID = dbmodel.DBQuery{
		ID: "GET_USER_BY_ID",
		Query: "SELECT USER_ID, ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, ROLE, IS_ACTIVE " +
			"FROM PORTAL_USER WHERE USER_ID = ?",
	}

	QueryGetUsersByOrganization = dbmodel.DBQuery{
		ID: "GET_USERS_BY_ORGANIZATION",
		Query: "SELECT USER_ID, ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, ROLE, IS_ACTIVE " +
			"FROM PORTAL_USER WHERE ORGANIZATION_ID = ? ORDER BY FIRST_NAME, LAST_NAME",
	}

	QueryGetUsersByOrganizationAndRole = dbmodel.DBQuery{
		ID: "GET_USERS_BY_ORGANIZATION_AND_ROLE",
		Query: "SELECT USER_ID, ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, ROLE, IS_ACTIVE " +
			"FROM PORTAL_USER WHERE ORGANIZATION_ID = ? AND ROLE = ? AND IS_ACTIVE = 1 " +
			"ORDER BY FIRST_NAME, LAST_NAME",
	}

	QueryUpdateUser = dbmodel.DBQuery{
		ID: "UPDATE_USER",
		Query: "UPDATE PORTAL_USER SET FIRST_NAME = ?, LAST_NAME = ?, EMAIL = ?, ROLE = ?, IS_ACTIVE = ? " +
			"WHERE USER_ID = ?",
	}
)

// UserStore defines the interface for staff user data operations
type UserStore interface {
	Create(tx dbmodel.TxInterface, user *model.User) error
	GetByID(ctx context.Context, userID int64) (*model.User, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]model.User, error)
	ListByOrganizationAndRole(ctx context.Context, organizationID int64, role string) ([]model.User, error)
	Update(tx dbmodel.TxInterface, user *model.User) error
}

type store struct {
	dbClient provider.DBClientInterface
}

// NewUserStore creates a new staff user store
func NewUserStore(dbClient provider.DBClientInterface) UserStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new staff user and populates the generated ID
func (s *store) Create(tx dbmodel.TxInterface, user *model.User) error {
	result, err := tx.Exec(QueryCreateUser.Query,
		user.OrganizationID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Role,
		user.IsActive,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.UserID = id
	return nil
}

// GetByID retrieves a staff user by ID
func (s *store) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	results, err := s.dbClient.Query(QueryGetUserByID, userID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("user %w", dbutils.ErrNotFound)
	}
	return mapToUser(results[0]), nil
}

// ListByOrganization retrieves all staff users of an organization
func (s *store) ListByOrganization(ctx context.Context, organizationID int64) ([]model.User, error) {
	results, err := s.dbClient.Query(QueryGetUsersByOrganization, organizationID)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(results))
	for _, row := range results {
		users = append(users, *mapToUser(row))
	}
	return users, nil
}

// ListByOrganizationAndRole retrieves the active users of an organization
// holding the given role
func (s *store) ListByOrganizationAndRole(ctx context.Context, organizationID int64, role string) ([]model.User, error) {
	results, err := s.dbClient.Query(QueryGetUsersByOrganizationAndRole, organizationID, role)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(results))
	for _, row := range results {
		users = append(users, *mapToUser(row))
	}
	return users, nil
}

// Update updates a staff user
func (s *store) Update(tx dbmodel.TxInterface, user *model.User) error {
	_, err := tx.Exec(QueryUpdateUser.Query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Role,
		user.IsActive,
		user.UserID,
	)
	return err
}

func mapToUser(row map[string]interface{}) *model.User {
	return &model.User{
		UserID:         dbutils.ToInt64(row["USER_ID"]),
		OrganizationID: dbutils.ToInt64(row["ORGANIZATION_ID"]),
		FirstName:      dbutils.ToString(row["FIRST_NAME"]),
		LastName:       dbutils.ToString(row["LAST_NAME"]),
		Email:          dbutils.ToString(row["EMAIL"]),
		Role:           dbutils.ToString(row["ROLE"]),
		IsActive:       dbutils.ToBool(row["IS_ACTIVE"]),
	}
}
