package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/system/authn"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/user/model"
)

// UserServiceInterface defines the contract for staff user operations
type UserServiceInterface interface {
	CreateUser(ctx context.Context, actor authn.Actor, request *model.CreateRequest) (*model.User, *serviceerror.ServiceError)
	GetUser(ctx context.Context, actor authn.Actor, userID int64) (*model.User, *serviceerror.ServiceError)
	ListUsers(ctx context.Context, actor authn.Actor, organizationID int64) (*model.ListResponse, *serviceerror.ServiceError)
	UpdateUser(ctx context.Context, actor authn.Actor, userID int64, request *model.UpdateRequest) (*model.User, *serviceerror.ServiceError)
}

type userService struct {
	stores *stores.StoreRegistry
}

func newUserService(registry *stores.StoreRegistry) UserServiceInterface {
	return &userService{
		stores: registry,
	}
}

// CreateUser adds a staff user to an organization
func (s *userService) CreateUser(
	ctx context.Context,
	actor authn.Actor,
	request *model.CreateRequest,
) (*model.User, *serviceerror.ServiceError) {
	if !actor.IsAdmin() || !actor.CanAccessOrganization(request.OrganizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not manage users of this organization",
		)
	}
	if request.Role == authn.RoleSuperAdmin && !actor.SpansOrganizations() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only a super administrator may grant the superadmin role",
		)
	}

	user := &model.User{
		OrganizationID: request.OrganizationID,
		FirstName:      strings.TrimSpace(request.FirstName),
		LastName:       strings.TrimSpace(request.LastName),
		Email:          request.Email,
		Role:           request.Role,
		IsActive:       true,
	}

	store := s.stores.User.(UserStore)
	err := s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Create(tx, user)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to create user: %v", err),
		)
	}

	return user, nil
}

// GetUser retrieves a staff user the actor may see
func (s *userService) GetUser(ctx context.Context, actor authn.Actor, userID int64) (*model.User, *serviceerror.ServiceError) {
	store := s.stores.User.(UserStore)
	user, err := store.GetByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(userID, err)
	}
	if !actor.CanAccessOrganization(user.OrganizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not access users of this organization",
		)
	}
	return user, nil
}

// ListUsers retrieves the staff of an organization
func (s *userService) ListUsers(ctx context.Context, actor authn.Actor, organizationID int64) (*model.ListResponse, *serviceerror.ServiceError) {
	if !actor.CanAccessOrganization(organizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not access users of this organization",
		)
	}

	store := s.stores.User.(UserStore)
	users, err := store.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list users: %v", err),
		)
	}
	return &model.ListResponse{Users: users, Total: len(users)}, nil
}

// UpdateUser modifies a staff user
func (s *userService) UpdateUser(
	ctx context.Context,
	actor authn.Actor,
	userID int64,
	request *model.UpdateRequest,
) (*model.User, *serviceerror.ServiceError) {
	store := s.stores.User.(UserStore)
	user, err := store.GetByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(userID, err)
	}
	if !actor.IsAdmin() || !actor.CanAccessOrganization(user.OrganizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not manage users of this organization",
		)
	}
	if request.Role == authn.RoleSuperAdmin && !actor.SpansOrganizations() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only a super administrator may grant the superadmin role",
		)
	}

	user.FirstName = strings.TrimSpace(request.FirstName)
	user.LastName = strings.TrimSpace(request.LastName)
	user.Email = request.Email
	user.Role = request.Role
	if request.IsActive != nil {
		user.IsActive = *request.IsActive
	}

	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Update(tx, user)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to update user: %v", err),
		)
	}

	return user, nil
}

func userLookupError(userID int64, err error) *serviceerror.ServiceError {
	if errors.Is(err, dbutils.ErrNotFound) {
		return serviceerror.CustomServiceError(
			serviceerror.ResourceNotFoundError,
			fmt.Sprintf("user not found: %d", userID),
		)
	}
	return serviceerror.CustomServiceError(
		serviceerror.DatabaseError,
		fmt.Sprintf("failed to retrieve user: %v", err),
	)
}
