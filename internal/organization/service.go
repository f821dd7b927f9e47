package organization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/organization/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// OrganizationServiceInterface defines the contract for organization operations
type OrganizationServiceInterface interface {
	CreateOrganization(ctx context.Context, actor authn.Actor, request *model.CreateRequest) (*model.Organization, *serviceerror.ServiceError)
	GetOrganization(ctx context.Context, actor authn.Actor, organizationID int64) (*model.Organization, *serviceerror.ServiceError)
	GetOrganizationByPageToken(ctx context.Context, token string) (*model.Organization, *serviceerror.ServiceError)
	ListOrganizations(ctx context.Context, actor authn.Actor) (*model.ListResponse, *serviceerror.ServiceError)
	UpdateOrganization(ctx context.Context, actor authn.Actor, organizationID int64, request *model.UpdateRequest) (*model.Organization, *serviceerror.ServiceError)
	RotatePageToken(ctx context.Context, actor authn.Actor, organizationID int64) (*model.Organization, *serviceerror.ServiceError)
}

type organizationService struct {
	stores *stores.StoreRegistry
}

func newOrganizationService(registry *stores.StoreRegistry) OrganizationServiceInterface {
	return &organizationService{
		stores: registry,
	}
}

// CreateOrganization registers a new tenant and mints its public
// submission token.
func (s *organizationService) CreateOrganization(
	ctx context.Context,
	actor authn.Actor,
	request *model.CreateRequest,
) (*model.Organization, *serviceerror.ServiceError) {
	if !actor.SpansOrganizations() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only a super administrator may register organizations",
		)
	}

	org := &model.Organization{
		OrganizationName: strings.TrimSpace(request.OrganizationName),
		IndustryID:       request.IndustryID,
		ContactEmail:     request.ContactEmail,
		ContactPhone:     request.ContactPhone,
		Address:          request.Address,
		RequestPageToken: utils.GenerateUUID(),
	}

	store := s.stores.Organization.(OrganizationStore)
	err := s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Create(tx, org)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to create organization: %v", err),
		)
	}

	return org, nil
}

// GetOrganization retrieves an organization the actor may access
func (s *organizationService) GetOrganization(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) (*model.Organization, *serviceerror.ServiceError) {
	if !actor.CanAccessOrganization(organizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not access this organization",
		)
	}

	store := s.stores.Organization.(OrganizationStore)
	org, err := store.GetByID(ctx, organizationID)
	if err != nil {
		return nil, organizationLookupError(organizationID, err)
	}
	return org, nil
}

// GetOrganizationByPageToken resolves the tenant behind a public submission
// token. Unknown tokens are reported as not found without detail.
func (s *organizationService) GetOrganizationByPageToken(
	ctx context.Context,
	token string,
) (*model.Organization, *serviceerror.ServiceError) {
	if err := utils.ValidatePageToken(token); err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ResourceNotFoundError,
			"unknown request page",
		)
	}

	store := s.stores.Organization.(OrganizationStore)
	org, err := store.GetByPageToken(ctx, token)
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			return nil, serviceerror.CustomServiceError(
				serviceerror.ResourceNotFoundError,
				"unknown request page",
			)
		}
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to resolve request page: %v", err),
		)
	}
	return org, nil
}

// ListOrganizations returns all tenants for a super administrator
func (s *organizationService) ListOrganizations(ctx context.Context, actor authn.Actor) (*model.ListResponse, *serviceerror.ServiceError) {
	if !actor.SpansOrganizations() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only a super administrator may list organizations",
		)
	}

	store := s.stores.Organization.(OrganizationStore)
	orgs, err := store.List(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list organizations: %v", err),
		)
	}
	return &model.ListResponse{Organizations: orgs, Total: len(orgs)}, nil
}

// UpdateOrganization updates a tenant's profile
func (s *organizationService) UpdateOrganization(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
	request *model.UpdateRequest,
) (*model.Organization, *serviceerror.ServiceError) {
	if !actor.IsAdmin() || !actor.CanAccessOrganization(organizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not update this organization",
		)
	}

	store := s.stores.Organization.(OrganizationStore)
	org, err := store.GetByID(ctx, organizationID)
	if err != nil {
		return nil, organizationLookupError(organizationID, err)
	}

	org.OrganizationName = strings.TrimSpace(request.OrganizationName)
	org.IndustryID = request.IndustryID
	org.ContactEmail = request.ContactEmail
	org.ContactPhone = request.ContactPhone
	org.Address = request.Address

	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Update(tx, org)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to update organization: %v", err),
		)
	}

	return org, nil
}

// RotatePageToken mints a fresh public submission token, invalidating the
// previous public URL.
func (s *organizationService) RotatePageToken(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
) (*model.Organization, *serviceerror.ServiceError) {
	if !actor.IsAdmin() || !actor.CanAccessOrganization(organizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not rotate this organization's page token",
		)
	}

	store := s.stores.Organization.(OrganizationStore)
	org, err := store.GetByID(ctx, organizationID)
	if err != nil {
		return nil, organizationLookupError(organizationID, err)
	}

	org.RequestPageToken = utils.GenerateUUID()
	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.UpdatePageToken(tx, organizationID, org.RequestPageToken)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to rotate page token: %v", err),
		)
	}

	return org, nil
}

func organizationLookupError(organizationID int64, err error) *serviceerror.ServiceError {
	if errors.Is(err, dbutils.ErrNotFound) {
		return serviceerror.CustomServiceError(
			serviceerror.ResourceNotFoundError,
			fmt.Sprintf("organization not found: %d", organizationID),
		)
	}
	return serviceerror.CustomServiceError(
		serviceerror.DatabaseError,
		fmt.Sprintf("failed to retrieve organization: %v", err),
	)
}
