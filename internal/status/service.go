package status

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// StatusServiceInterface defines the contract for status catalog operations
type StatusServiceInterface interface {
	ListStatuses(ctx context.Context, includeInactive bool) (*model.ListResponse, *serviceerror.ServiceError)
	GetStatus(ctx context.Context, statusID int64) (*model.Status, *serviceerror.ServiceError)
	GetStatusByName(ctx context.Context, name string) (*model.Status, *serviceerror.ServiceError)
	CreateStatus(ctx context.Context, actor authn.Actor, request *model.CreateRequest) (*model.Status, *serviceerror.ServiceError)
	UpdateStatus(ctx context.Context, actor authn.Actor, statusID int64, request *model.UpdateRequest) (*model.Status, *serviceerror.ServiceError)
	DeleteStatus(ctx context.Context, actor authn.Actor, statusID int64) *serviceerror.ServiceError
}

// statusService implements the StatusServiceInterface
type statusService struct {
	stores *stores.StoreRegistry
}

// newStatusService creates a new status catalog service
func newStatusService(registry *stores.StoreRegistry) StatusServiceInterface {
	return &statusService{
		stores: registry,
	}
}

// ListStatuses returns the status catalog
func (s *statusService) ListStatuses(ctx context.Context, includeInactive bool) (*model.ListResponse, *serviceerror.ServiceError) {
	store := s.stores.Status.(StatusStore)
	statuses, err := store.List(ctx, includeInactive)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list statuses: %v", err),
		)
	}
	return &model.ListResponse{Statuses: statuses, Total: len(statuses)}, nil
}

// GetStatus retrieves a catalog status by ID
func (s *statusService) GetStatus(ctx context.Context, statusID int64) (*model.Status, *serviceerror.ServiceError) {
	store := s.stores.Status.(StatusStore)
	status, err := store.GetByID(ctx, statusID)
	if err != nil {
		return nil, statusLookupError(statusID, err)
	}
	return status, nil
}

// GetStatusByName retrieves a catalog status by its name, case-insensitively
func (s *statusService) GetStatusByName(ctx context.Context, name string) (*model.Status, *serviceerror.ServiceError) {
	if strings.TrimSpace(name) == "" {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ValidationError,
			"status name must not be empty",
		)
	}

	store := s.stores.Status.(StatusStore)
	status, err := store.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			svcErr := serviceerror.CustomServiceError(
				serviceerror.ResourceNotFoundError,
				fmt.Sprintf("status not found: %s", name),
			)
			svcErr.Code = codes.StatusNotFound
			return nil, svcErr
		}
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to retrieve status: %v", err),
		)
	}
	return status, nil
}

// CreateStatus adds a new status to the catalog
func (s *statusService) CreateStatus(
	ctx context.Context,
	actor authn.Actor,
	request *model.CreateRequest,
) (*model.Status, *serviceerror.ServiceError) {
	if !actor.IsAdmin() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only administrators may modify the status catalog",
		)
	}
	if svcErr := validateStatusName(request.StatusName); svcErr != nil {
		return nil, svcErr
	}

	store := s.stores.Status.(StatusStore)
	if svcErr := s.checkNameAvailable(ctx, store, request.StatusName, 0); svcErr != nil {
		return nil, svcErr
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}
	status := &model.Status{
		StatusName: strings.TrimSpace(request.StatusName),
		SLADays:    request.SLADays,
		IsActive:   isActive,
	}

	err := s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Create(tx, status)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to create status: %v", err),
		)
	}

	return status, nil
}

// UpdateStatus modifies an existing catalog status
func (s *statusService) UpdateStatus(
	ctx context.Context,
	actor authn.Actor,
	statusID int64,
	request *model.UpdateRequest,
) (*model.Status, *serviceerror.ServiceError) {
	if !actor.IsAdmin() {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only administrators may modify the status catalog",
		)
	}
	if svcErr := validateStatusName(request.StatusName); svcErr != nil {
		return nil, svcErr
	}

	store := s.stores.Status.(StatusStore)
	existing, err := store.GetByID(ctx, statusID)
	if err != nil {
		return nil, statusLookupError(statusID, err)
	}

	if svcErr := s.checkNameAvailable(ctx, store, request.StatusName, statusID); svcErr != nil {
		return nil, svcErr
	}

	existing.StatusName = strings.TrimSpace(request.StatusName)
	existing.SLADays = request.SLADays
	if request.IsActive != nil {
		existing.IsActive = *request.IsActive
	}

	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Update(tx, existing)
		},
	})
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to update status: %v", err),
		)
	}

	return existing, nil
}

// DeleteStatus removes a catalog status. Deletion is refused while any
// request or grievance still carries the status.
func (s *statusService) DeleteStatus(ctx context.Context, actor authn.Actor, statusID int64) *serviceerror.ServiceError {
	if !actor.IsAdmin() {
		return serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"only administrators may modify the status catalog",
		)
	}

	store := s.stores.Status.(StatusStore)
	if _, err := store.GetByID(ctx, statusID); err != nil {
		return statusLookupError(statusID, err)
	}

	usage, err := store.CountUsage(ctx, statusID)
	if err != nil {
		return serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to check status usage: %v", err),
		)
	}
	if usage > 0 {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.ConflictError,
			fmt.Sprintf("status %d is referenced by %d entities and cannot be deleted", statusID, usage),
		)
		svcErr.Code = codes.StatusInUse
		return svcErr
	}

	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Delete(tx, statusID)
		},
	})
	if err != nil {
		return serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to delete status: %v", err),
		)
	}

	return nil
}

// checkNameAvailable enforces case-insensitive name uniqueness across the
// catalog. excludeID skips the status being updated.
func (s *statusService) checkNameAvailable(
	ctx context.Context,
	store StatusStore,
	name string,
	excludeID int64,
) *serviceerror.ServiceError {
	existing, err := store.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			return nil
		}
		return serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to check status name: %v", err),
		)
	}
	if existing.StatusID != excludeID {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.ConflictError,
			fmt.Sprintf("status name already exists: %s", existing.StatusName),
		)
		svcErr.Code = codes.StatusNameTaken
		return svcErr
	}
	return nil
}

func validateStatusName(name string) *serviceerror.ServiceError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return serviceerror.CustomServiceError(
			serviceerror.ValidationError,
			"status name must not be empty",
		)
	}
	if len(trimmed) > 100 {
		return serviceerror.CustomServiceError(
			serviceerror.ValidationError,
			"status name too long (max 100 chars)",
		)
	}
	return nil
}

func statusLookupError(statusID int64, err error) *serviceerror.ServiceError {
	if errors.Is(err, dbutils.ErrNotFound) {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.ResourceNotFoundError,
			fmt.Sprintf("status not found: %d", statusID),
		)
		svcErr.Code = codes.StatusNotFound
		return svcErr
	}
	return serviceerror.CustomServiceError(
		serviceerror.DatabaseError,
		fmt.Sprintf("failed to retrieve status: %v", err),
	)
}
