/*
 * Copyright (c) 2025, ComplyArk. (https://www.complyark.com).
 *
 * ComplyArk licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package grievance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/complyark/dpdpa-portal/internal/grievance/model"
	"github.com/complyark/dpdpa-portal/internal/lifecycle"
	"github.com/complyark/dpdpa-portal/internal/notification"
	notifmodel "github.com/complyark/dpdpa-portal/internal/notification/model"
	"github.com/complyark/dpdpa-portal/internal/organization"
	"github.com/complyark/dpdpa-portal/internal/status"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/log"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
	"github.com/complyark/dpdpa-portal/internal/user"
)

// errRollback carries a ServiceError out of a transaction closure.
var errRollback = errors.New("lifecycle update rejected")

// GrievanceServiceInterface defines the contract for grievance operations.
type GrievanceServiceInterface interface {
	SubmitPublic(ctx context.Context, pageToken string, request *model.SubmitRequest) (*model.Grievance, *serviceerror.ServiceError)
	CreateGrievance(ctx context.Context, actor authn.Actor, request *model.SubmitRequest) (*model.Grievance, *serviceerror.ServiceError)
	GetGrievance(ctx context.Context, actor authn.Actor, grievanceID int64) (*model.Grievance, *serviceerror.ServiceError)
	ListGrievances(ctx context.Context, actor authn.Actor, organizationID int64, filters model.SearchFilters) (*model.ListResponse, *serviceerror.ServiceError)
	GetHistory(ctx context.Context, actor authn.Actor, grievanceID int64) (*model.HistoryResponse, *serviceerror.ServiceError)
	ApplyChange(ctx context.Context, actor authn.Actor, grievanceID int64, request *model.UpdateRequest) (*model.Grievance, *serviceerror.ServiceError)
	EscalateOverdue(ctx context.Context) (int, *serviceerror.ServiceError)
}

// grievanceService implements GrievanceServiceInterface
type grievanceService struct {
	stores       *stores.StoreRegistry
	notification notification.NotificationServiceInterface
	lifecycleCfg *config.LifecycleConfig
	logger       *log.Logger
}

func newGrievanceService(
	registry *stores.StoreRegistry,
	notificationService notification.NotificationServiceInterface,
	lifecycleCfg *config.LifecycleConfig,
) GrievanceServiceInterface {
	return &grievanceService{
		stores:       registry,
		notification: notificationService,
		lifecycleCfg: lifecycleCfg,
		logger:       log.GetLogger().With(log.String(log.LoggerKeyComponentName, "GrievanceService")),
	}
}

// SubmitPublic accepts a grievance submitted through an organization's
// public request page.
func (s *grievanceService) SubmitPublic(
	ctx context.Context,
	pageToken string,
	request *model.SubmitRequest,
) (*model.Grievance, *serviceerror.ServiceError) {
	orgStore := s.stores.Organization.(organization.OrganizationStore)
	org, err := orgStore.GetByPageToken(ctx, pageToken)
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

	return s.create(ctx, org.OrganizationID, org.OrganizationName, s.lifecycleCfg.SystemUserID, request)
}

// CreateGrievance records a grievance captured by staff.
func (s *grievanceService) CreateGrievance(
	ctx context.Context,
	actor authn.Actor,
	request *model.SubmitRequest,
) (*model.Grievance, *serviceerror.ServiceError) {
	orgStore := s.stores.Organization.(organization.OrganizationStore)
	org, err := orgStore.GetByID(ctx, actor.OrganizationID)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to resolve organization: %v", err),
		)
	}

	return s.create(ctx, org.OrganizationID, org.OrganizationName, actor.UserID, request)
}

func (s *grievanceService) create(
	ctx context.Context,
	organizationID int64,
	organizationName string,
	createdByUserID int64,
	request *model.SubmitRequest,
) (*model.Grievance, *serviceerror.ServiceError) {
	statusStore := s.stores.Status.(status.StatusStore)
	submitted, err := statusStore.GetByName(ctx, string(s.lifecycleCfg.GetSubmittedStatus()))
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.InternalServerError,
			fmt.Sprintf("initial status is not configured: %v", err),
		)
	}

	now := time.Now().UTC()
	due := lifecycle.DueDateFromSLA(now, submitted.SLADays)
	entity := &model.Grievance{
		OrganizationID:    organizationID,
		FirstName:         utils.SanitizeInput(request.FirstName),
		LastName:          utils.SanitizeInput(request.LastName),
		Email:             request.Email,
		Phone:             utils.SanitizeInput(request.Phone),
		GrievanceComments: utils.SanitizeInput(request.GrievanceComments),
		StatusID:          submitted.StatusID,
		CreatedAt:         now,
		LastUpdatedAt:     now,
		CompletionDate:    &due,
	}

	store := s.stores.Grievance.(GrievanceStore)
	err = s.stores.ExecuteTransaction([]func(tx dbmodel.TxInterface) error{
		func(tx dbmodel.TxInterface) error {
			return store.Create(tx, entity)
		},
		func(tx dbmodel.TxInterface) error {
			newStatusID := entity.StatusID
			return store.AppendHistory(tx, &model.HistoryEntry{
				GrievanceID:     entity.GrievanceID,
				ChangeDate:      now,
				ChangedByUserID: createdByUserID,
				NewStatusID:     &newStatusID,
				Comments:        "Grievance submitted",
			})
		},
	})
	if err != nil {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to create grievance: %v", err),
		)
		svcErr.Code = codes.GrievanceCreationFailed
		return nil, svcErr
	}

	s.notification.DispatchAsync(&notifmodel.Notice{
		TemplateName: notifmodel.TemplateCreation,
		Recipient:    entity.Email,
		Data:         s.noticeData(entity, organizationName, entity.ComplainantName()),
	})

	s.logger.Info("Grievance created",
		log.Int64("grievance_id", entity.GrievanceID),
		log.Int64("organization_id", organizationID),
	)
	return entity, nil
}

// GetGrievance retrieves a grievance the actor may access
func (s *grievanceService) GetGrievance(ctx context.Context, actor authn.Actor, grievanceID int64) (*model.Grievance, *serviceerror.ServiceError) {
	store := s.stores.Grievance.(GrievanceStore)
	entity, err := store.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, grievanceLookupError(grievanceID, err)
	}
	if !actor.CanAccessOrganization(entity.OrganizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not access grievances of this organization",
		)
	}
	return entity, nil
}

// ListGrievances retrieves a filtered page of grievances. organizationID 0
// defaults to the actor's own organization; a super administrator then sees
// all organizations.
func (s *grievanceService) ListGrievances(
	ctx context.Context,
	actor authn.Actor,
	organizationID int64,
	filters model.SearchFilters,
) (*model.ListResponse, *serviceerror.ServiceError) {
	if organizationID == 0 && !actor.SpansOrganizations() {
		organizationID = actor.OrganizationID
	}
	if organizationID != 0 && !actor.CanAccessOrganization(organizationID) {
		return nil, serviceerror.CustomServiceError(
			serviceerror.ForbiddenError,
			"caller may not list this organization's grievances",
		)
	}

	store := s.stores.Grievance.(GrievanceStore)
	grievances, total, err := store.Search(ctx, organizationID, filters)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list grievances: %v", err),
		)
	}
	return &model.ListResponse{
		Grievances: grievances,
		Total:      total,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	}, nil
}

// GetHistory retrieves a grievance's audit trail, newest first
func (s *grievanceService) GetHistory(ctx context.Context, actor authn.Actor, grievanceID int64) (*model.HistoryResponse, *serviceerror.ServiceError) {
	if _, svcErr := s.GetGrievance(ctx, actor, grievanceID); svcErr != nil {
		return nil, svcErr
	}

	store := s.stores.Grievance.(GrievanceStore)
	history, err := store.GetHistory(ctx, grievanceID)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to retrieve history: %v", err),
		)
	}
	return &model.HistoryResponse{History: history, Total: len(history)}, nil
}

// ApplyChange validates and applies a lifecycle update to a grievance. The
// entity row is locked for the duration of the transaction, so concurrent
// updates to the same grievance serialize.
func (s *grievanceService) ApplyChange(
	ctx context.Context,
	actor authn.Actor,
	grievanceID int64,
	request *model.UpdateRequest,
) (*model.Grievance, *serviceerror.ServiceError) {
	statusStore := s.stores.Status.(status.StatusStore)
	catalog, err := statusStore.List(ctx, true)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to load status catalog: %v", err),
		)
	}
	deps := lifecycle.Deps{
		Lifecycle: s.lifecycleCfg,
		Statuses:  lifecycle.NewStatusIndex(catalog),
		Now:       time.Now().UTC(),
	}

	change := &lifecycle.Change{Comments: request.Comments}
	if request.StatusID != nil {
		change.StatusChange = &lifecycle.StatusChange{
			NewStatusID:     *request.StatusID,
			ClosureComments: request.ClosureComments,
		}
	}
	if request.HasAssignmentChange() {
		change.AssignmentChange = &lifecycle.AssignmentChange{NewAssigneeID: request.AssignedToUserID}
	}

	var assignee *assigneeInfo
	if request.AssignedToUserID != nil {
		userStore := s.stores.User.(user.UserStore)
		candidate, err := userStore.GetByID(ctx, *request.AssignedToUserID)
		if err != nil || !candidate.IsActive {
			svcErr := serviceerror.CustomServiceError(
				serviceerror.ValidationError,
				fmt.Sprintf("assignee is not an active staff user: %d", *request.AssignedToUserID),
			)
			svcErr.Code = codes.AssigneeInvalid
			return nil, svcErr
		}
		assignee = &assigneeInfo{
			orgID: candidate.OrganizationID,
			email: candidate.Email,
			name:  candidate.FullName(),
		}
	}

	store := s.stores.Grievance.(GrievanceStore)
	var entity *model.Grievance
	var resolution *lifecycle.Resolution
	var svcErr *serviceerror.ServiceError

	txErr := s.stores.WithTransaction(func(tx dbmodel.TxInterface) error {
		locked, err := store.GetByIDForUpdate(tx, grievanceID)
		if err != nil {
			svcErr = grievanceLookupError(grievanceID, err)
			return errRollback
		}
		if !actor.CanAccessOrganization(locked.OrganizationID) {
			svcErr = serviceerror.CustomServiceError(
				serviceerror.ForbiddenError,
				"caller may not modify grievances of this organization",
			)
			return errRollback
		}
		if assignee != nil && assignee.orgID != locked.OrganizationID {
			svcErr = serviceerror.CustomServiceError(
				serviceerror.ValidationError,
				"assignee belongs to a different organization",
			)
			svcErr.Code = codes.AssigneeInvalid
			return errRollback
		}

		resolution, svcErr = lifecycle.Resolve(&lifecycle.Entity{
			ID:               locked.GrievanceID,
			OrganizationID:   locked.OrganizationID,
			StatusID:         locked.StatusID,
			AssignedToUserID: locked.AssignedToUserID,
			CreatedAt:        locked.CreatedAt,
			CompletionDate:   locked.CompletionDate,
			ClosedAt:         locked.ClosedDateTime,
		}, change, actor, deps)
		if svcErr != nil {
			return errRollback
		}

		applyResolution(locked, resolution, deps.Now)
		if err := store.UpdateLifecycle(tx, locked); err != nil {
			return err
		}

		historyEntry := historyFromResolution(locked.GrievanceID, resolution)
		if err := store.AppendHistory(tx, historyEntry); err != nil {
			return err
		}

		entity = locked
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	if txErr != nil {
		updateErr := serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to apply change: %v", txErr),
		)
		updateErr.Code = codes.GrievanceUpdateFailed
		return nil, updateErr
	}

	s.dispatchLifecycleNotices(ctx, entity, resolution, assignee)
	s.logger.Info("Grievance updated",
		log.Int64("grievance_id", entity.GrievanceID),
		log.Bool("status_changed", resolution.StatusChanged),
		log.Bool("assignment_changed", resolution.AssignmentChanged),
	)
	return entity, nil
}

// EscalateOverdue moves every open, past-due grievance into the configured
// overdue status.
func (s *grievanceService) EscalateOverdue(ctx context.Context) (int, *serviceerror.ServiceError) {
	statusStore := s.stores.Status.(status.StatusStore)
	target, err := statusStore.GetByName(ctx, string(s.lifecycleCfg.GetOverdueStatus()))
	if err != nil {
		return 0, serviceerror.CustomServiceError(
			serviceerror.InternalServerError,
			fmt.Sprintf("overdue status is not configured: %v", err),
		)
	}
	closed, err := statusStore.GetByName(ctx, string(s.lifecycleCfg.GetClosedStatus()))
	if err != nil {
		return 0, serviceerror.CustomServiceError(
			serviceerror.InternalServerError,
			fmt.Sprintf("closed status is not configured: %v", err),
		)
	}

	store := s.stores.Grievance.(GrievanceStore)
	overdue, err := store.ListOpenPastDue(ctx, []int64{target.StatusID, closed.StatusID})
	if err != nil {
		return 0, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list overdue grievances: %v", err),
		)
	}

	actor := authn.SystemActor(s.lifecycleCfg.SystemUserID)
	count := 0
	for i := range overdue {
		_, svcErr := s.ApplyChange(ctx, actor, overdue[i].GrievanceID, &model.UpdateRequest{
			StatusID: &target.StatusID,
			Comments: "Escalated automatically: past due date",
		})
		if svcErr != nil {
			s.logger.Warn("Failed to escalate overdue grievance",
				log.Int64("grievance_id", overdue[i].GrievanceID),
				log.String("error", svcErr.ErrorDescription),
			)
			continue
		}
		count++
	}
	return count, nil
}

type assigneeInfo struct {
	orgID int64
	email string
	name  string
}

// applyResolution writes the resolved lifecycle outcome onto the entity
func applyResolution(entity *model.Grievance, resolution *lifecycle.Resolution, now time.Time) {
	entity.StatusID = resolution.NewStatusID
	entity.LastUpdatedAt = now
	if resolution.AssignmentChanged {
		entity.AssignedToUserID = resolution.NewAssigneeID
	}
	if resolution.CompletionDate != nil {
		entity.CompletionDate = resolution.CompletionDate
	}
	if resolution.IsClosure {
		entity.ClosedDateTime = resolution.ClosedAt
		entity.CompletedOnTime = resolution.CompletedOnTime
		comments := resolution.ClosureComments
		entity.ClosureComments = &comments
	}
}

// historyFromResolution converts the resolver's history entry to the
// grievance history model
func historyFromResolution(grievanceID int64, resolution *lifecycle.Resolution) *model.HistoryEntry {
	h := resolution.History
	return &model.HistoryEntry{
		GrievanceID:         grievanceID,
		ChangeDate:          h.ChangeDate,
		ChangedByUserID:     h.ChangedByUserID,
		OldStatusID:         h.OldStatusID,
		NewStatusID:         h.NewStatusID,
		OldAssignedToUserID: h.OldAssignedToUserID,
		NewAssignedToUserID: h.NewAssignedToUserID,
		Comments:            h.Comments,
	}
}

// dispatchLifecycleNotices sends the emails a resolved change calls for.
// Closure replaces the generic status update; escalation is additional.
func (s *grievanceService) dispatchLifecycleNotices(
	ctx context.Context,
	entity *model.Grievance,
	resolution *lifecycle.Resolution,
	assignee *assigneeInfo,
) {
	orgStore := s.stores.Organization.(organization.OrganizationStore)
	org, err := orgStore.GetByID(ctx, entity.OrganizationID)
	if err != nil {
		s.logger.Warn("Skipping notifications, organization lookup failed",
			log.Int64("grievance_id", entity.GrievanceID), log.Error(err))
		return
	}

	if resolution.StatusChanged && !resolution.IsClosure {
		data := s.noticeData(entity, org.OrganizationName, entity.ComplainantName())
		data["statusName"] = resolution.NewStatusName
		s.notification.DispatchAsync(&notifmodel.Notice{
			TemplateName: notifmodel.TemplateStatusChange,
			Recipient:    entity.Email,
			Data:         data,
		})
	}

	if resolution.IsClosure {
		var cc []string
		if assignee != nil {
			cc = append(cc, assignee.email)
		}
		s.notification.DispatchAsync(&notifmodel.Notice{
			TemplateName: notifmodel.TemplateClosure,
			Recipient:    entity.Email,
			CC:           cc,
			Data:         s.noticeData(entity, org.OrganizationName, entity.ComplainantName()),
		})
	}

	if resolution.AssignmentChanged && assignee != nil {
		s.notification.DispatchAsync(&notifmodel.Notice{
			TemplateName: notifmodel.TemplateAssignment,
			Recipient:    assignee.email,
			Data:         s.noticeData(entity, org.OrganizationName, assignee.name),
		})
	}

	if resolution.IsEscalation {
		userStore := s.stores.User.(user.UserStore)
		admins, err := userStore.ListByOrganizationAndRole(ctx, entity.OrganizationID, authn.RoleAdmin)
		if err != nil {
			s.logger.Warn("Skipping escalation notices, admin lookup failed",
				log.Int64("grievance_id", entity.GrievanceID), log.Error(err))
			return
		}
		for i := range admins {
			s.notification.DispatchAsync(&notifmodel.Notice{
				TemplateName: notifmodel.TemplateEscalation,
				Recipient:    admins[i].Email,
				Data:         s.noticeData(entity, org.OrganizationName, admins[i].FullName()),
			})
		}
	}
}

// noticeData builds the placeholder values shared by all grievance templates
func (s *grievanceService) noticeData(entity *model.Grievance, organizationName, greetingName string) map[string]string {
	closureComment := ""
	if entity.ClosureComments != nil {
		closureComment = *entity.ClosureComments
	}
	return map[string]string{
		"requestId":        strconv.FormatInt(entity.GrievanceID, 10),
		"requestType":      "Grievance",
		"name":             greetingName,
		"organizationName": organizationName,
		"closureComment":   closureComment,
	}
}

func grievanceLookupError(grievanceID int64, err error) *serviceerror.ServiceError {
	if errors.Is(err, dbutils.ErrNotFound) {
		svcErr := serviceerror.CustomServiceError(
			serviceerror.ResourceNotFoundError,
			fmt.Sprintf("grievance not found: %d", grievanceID),
		)
		svcErr.Code = codes.GrievanceNotFound
		return svcErr
	}
	return serviceerror.CustomServiceError(
		serviceerror.DatabaseError,
		fmt.Sprintf("failed to retrieve grievance: %v", err),
	)
}
