package dprequest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyark/dpdpa-portal/internal/dprequest/model"
	notifmodel "github.com/complyark/dpdpa-portal/internal/notification/model"
	orgmodel "github.com/complyark/dpdpa-portal/internal/organization/model"
	statusmodel "github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/stores/storetest"
	usermodel "github.com/complyark/dpdpa-portal/internal/user/model"
)

// ---- fakes ----

type fakeRequestStore struct {
	requests map[int64]*model.DPRequest
	history  []model.HistoryEntry
	nextID   int64
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: map[int64]*model.DPRequest{}, nextID: 1}
}

func (f *fakeRequestStore) Create(tx dbmodel.TxInterface, request *model.DPRequest) error {
	request.RequestID = f.nextID
	f.nextID++
	copied := *request
	f.requests[request.RequestID] = &copied
	return nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, requestID int64) (*model.DPRequest, error) {
	request, ok := f.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("request %w", dbutils.ErrNotFound)
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestStore) GetByIDForUpdate(tx dbmodel.TxInterface, requestID int64) (*model.DPRequest, error) {
	return f.GetByID(context.Background(), requestID)
}

func (f *fakeRequestStore) UpdateLifecycle(tx dbmodel.TxInterface, request *model.DPRequest) error {
	copied := *request
	f.requests[request.RequestID] = &copied
	return nil
}

func (f *fakeRequestStore) AppendHistory(tx dbmodel.TxInterface, entry *model.HistoryEntry) error {
	entry.HistoryID = int64(len(f.history) + 1)
	f.history = append(f.history, *entry)
	return nil
}

func (f *fakeRequestStore) GetHistory(ctx context.Context, requestID int64) ([]model.HistoryEntry, error) {
	var result []model.HistoryEntry
	for i := len(f.history) - 1; i >= 0; i-- {
		if f.history[i].RequestID == requestID {
			result = append(result, f.history[i])
		}
	}
	return result, nil
}

func (f *fakeRequestStore) Search(ctx context.Context, organizationID int64, filters model.SearchFilters) ([]model.DPRequest, int, error) {
	var result []model.DPRequest
	for id := int64(1); id < f.nextID; id++ {
		request, ok := f.requests[id]
		if !ok {
			continue
		}
		if organizationID > 0 && request.OrganizationID != organizationID {
			continue
		}
		if filters.StatusID != nil && request.StatusID != *filters.StatusID {
			continue
		}
		result = append(result, *request)
	}
	return result, len(result), nil
}

func (f *fakeRequestStore) ListOpenPastDue(ctx context.Context, excludeStatusIDs []int64) ([]model.DPRequest, error) {
	now := time.Now().UTC()
	excluded := map[int64]bool{}
	for _, id := range excludeStatusIDs {
		excluded[id] = true
	}
	var result []model.DPRequest
	for id := int64(1); id < f.nextID; id++ {
		request, ok := f.requests[id]
		if !ok || excluded[request.StatusID] || request.ClosedDateTime != nil {
			continue
		}
		if request.CompletionDate != nil && request.CompletionDate.Before(now) {
			result = append(result, *request)
		}
	}
	return result, nil
}

type fakeStatusStore struct {
	statuses map[int64]*statusmodel.Status
}

func (f *fakeStatusStore) Create(tx dbmodel.TxInterface, s *statusmodel.Status) error { return nil }
func (f *fakeStatusStore) Update(tx dbmodel.TxInterface, s *statusmodel.Status) error { return nil }
func (f *fakeStatusStore) Delete(tx dbmodel.TxInterface, statusID int64) error        { return nil }
func (f *fakeStatusStore) CountUsage(ctx context.Context, statusID int64) (int64, error) {
	return 0, nil
}

func (f *fakeStatusStore) GetByID(ctx context.Context, statusID int64) (*statusmodel.Status, error) {
	s, ok := f.statuses[statusID]
	if !ok {
		return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
	}
	return s, nil
}

func (f *fakeStatusStore) GetByName(ctx context.Context, name string) (*statusmodel.Status, error) {
	for _, s := range f.statuses {
		if strings.EqualFold(s.StatusName, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
}

func (f *fakeStatusStore) List(ctx context.Context, includeInactive bool) ([]statusmodel.Status, error) {
	var result []statusmodel.Status
	for id := int64(1); id <= int64(len(f.statuses)); id++ {
		if s, ok := f.statuses[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

type fakeOrgStore struct {
	orgs map[int64]*orgmodel.Organization
}

func (f *fakeOrgStore) Create(tx dbmodel.TxInterface, org *orgmodel.Organization) error { return nil }
func (f *fakeOrgStore) Update(tx dbmodel.TxInterface, org *orgmodel.Organization) error { return nil }
func (f *fakeOrgStore) UpdatePageToken(tx dbmodel.TxInterface, organizationID int64, token string) error {
	return nil
}
func (f *fakeOrgStore) List(ctx context.Context) ([]orgmodel.Organization, error) { return nil, nil }

func (f *fakeOrgStore) GetByID(ctx context.Context, organizationID int64) (*orgmodel.Organization, error) {
	org, ok := f.orgs[organizationID]
	if !ok {
		return nil, fmt.Errorf("organization %w", dbutils.ErrNotFound)
	}
	return org, nil
}

func (f *fakeOrgStore) GetByPageToken(ctx context.Context, token string) (*orgmodel.Organization, error) {
	for _, org := range f.orgs {
		if org.RequestPageToken == token {
			return org, nil
		}
	}
	return nil, fmt.Errorf("organization %w", dbutils.ErrNotFound)
}

type fakeUserStore struct {
	users map[int64]*usermodel.User
}

func (f *fakeUserStore) Create(tx dbmodel.TxInterface, u *usermodel.User) error { return nil }
func (f *fakeUserStore) Update(tx dbmodel.TxInterface, u *usermodel.User) error { return nil }

func (f *fakeUserStore) GetByID(ctx context.Context, userID int64) (*usermodel.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %w", dbutils.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserStore) ListByOrganization(ctx context.Context, organizationID int64) ([]usermodel.User, error) {
	return nil, nil
}

func (f *fakeUserStore) ListByOrganizationAndRole(ctx context.Context, organizationID int64, role string) ([]usermodel.User, error) {
	var result []usermodel.User
	for _, u := range f.users {
		if u.OrganizationID == organizationID && u.Role == role && u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

type recordingNotifier struct {
	notices []*notifmodel.Notice
}

func (r *recordingNotifier) Dispatch(ctx context.Context, notice *notifmodel.Notice) *serviceerror.ServiceError {
	r.notices = append(r.notices, notice)
	return nil
}

func (r *recordingNotifier) DispatchAsync(notice *notifmodel.Notice) {
	r.notices = append(r.notices, notice)
}

func (r *recordingNotifier) ListTemplates(ctx context.Context) ([]notifmodel.EmailTemplate, *serviceerror.ServiceError) {
	return nil, nil
}

func (r *recordingNotifier) UpdateTemplate(ctx context.Context, name, subject, bodyHTML string) (*notifmodel.EmailTemplate, *serviceerror.ServiceError) {
	return nil, nil
}

func (r *recordingNotifier) byTemplate(name string) []*notifmodel.Notice {
	var result []*notifmodel.Notice
	for _, n := range r.notices {
		if n.TemplateName == name {
			result = append(result, n)
		}
	}
	return result
}

// ---- fixture ----

type testEnv struct {
	service  RequestServiceInterface
	requests *fakeRequestStore
	notifier *recordingNotifier
}

const (
	statusSubmitted  = int64(1)
	statusInProgress = int64(2)
	statusEscalated  = int64(3)
	statusClosed     = int64(4)
)

var admin = authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
var staff = authn.Actor{UserID: 11, OrganizationID: 1, Role: authn.RoleUser}
var otherOrgAdmin = authn.Actor{UserID: 20, OrganizationID: 2, Role: authn.RoleAdmin}

func setupRequestService(t *testing.T) *testEnv {
	t.Helper()

	registry := stores.NewStoreRegistry(storetest.NewFakeDBClient())
	requests := newFakeRequestStore()
	registry.Request = requests
	registry.Status = &fakeStatusStore{statuses: map[int64]*statusmodel.Status{
		statusSubmitted:  {StatusID: statusSubmitted, StatusName: "Submitted", SLADays: 30, IsActive: true},
		statusInProgress: {StatusID: statusInProgress, StatusName: "In Progress", SLADays: 15, IsActive: true},
		statusEscalated:  {StatusID: statusEscalated, StatusName: "Escalated", SLADays: 5, IsActive: true},
		statusClosed:     {StatusID: statusClosed, StatusName: "Closed", SLADays: 1, IsActive: true},
	}}
	registry.Organization = &fakeOrgStore{orgs: map[int64]*orgmodel.Organization{
		1: {OrganizationID: 1, OrganizationName: "Acme Ltd", ContactEmail: "dpo@acme.example", RequestPageToken: "3b241101-e2bb-4255-8caf-4136c566a964"},
		2: {OrganizationID: 2, OrganizationName: "Globex", ContactEmail: "dpo@globex.example", RequestPageToken: "9f8b2c43-11aa-4e55-9c00-000000000002"},
	}}
	registry.User = &fakeUserStore{users: map[int64]*usermodel.User{
		10: {UserID: 10, OrganizationID: 1, FirstName: "Admin", LastName: "One", Email: "admin@acme.example", Role: authn.RoleAdmin, IsActive: true},
		11: {UserID: 11, OrganizationID: 1, FirstName: "Staff", LastName: "One", Email: "staff@acme.example", Role: authn.RoleUser, IsActive: true},
		12: {UserID: 12, OrganizationID: 1, FirstName: "Staff", LastName: "Two", Email: "staff2@acme.example", Role: authn.RoleUser, IsActive: true},
		13: {UserID: 13, OrganizationID: 1, FirstName: "Gone", LastName: "User", Email: "gone@acme.example", Role: authn.RoleUser, IsActive: false},
		20: {UserID: 20, OrganizationID: 2, FirstName: "Other", LastName: "Admin", Email: "admin@globex.example", Role: authn.RoleAdmin, IsActive: true},
	}}

	notifier := &recordingNotifier{}
	lifecycleCfg := &config.LifecycleConfig{
		StatusMappings: config.StatusMappings{
			SubmittedStatus: "Submitted",
			EscalatedStatus: "Escalated",
			ClosedStatus:    "Closed",
			OverdueStatus:   "Escalated",
		},
		DueSoonWindowDays: 7,
		SystemUserID:      1,
	}

	return &testEnv{
		service:  newRequestService(registry, notifier, lifecycleCfg),
		requests: requests,
		notifier: notifier,
	}
}

func submitRequest(t *testing.T, env *testEnv) *model.DPRequest {
	t.Helper()
	created, svcErr := env.service.SubmitPublic(context.Background(), "3b241101-e2bb-4255-8caf-4136c566a964", &model.SubmitRequest{
		FirstName:   "Asha",
		LastName:    "Rao",
		Email:       "asha@example.com",
		RequestType: model.TypeAccess,
	})
	require.Nil(t, svcErr)
	return created
}

// ---- tests ----

func TestSubmitPublic_CreatesInInitialStatusWithDueDate(t *testing.T) {
	env := setupRequestService(t)

	created := submitRequest(t, env)

	assert.Equal(t, int64(1), created.OrganizationID)
	assert.Equal(t, statusSubmitted, created.StatusID)
	require.NotNil(t, created.CompletionDate)
	expectedDue := created.CreatedAt.AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedDue, *created.CompletionDate, time.Second)

	// Initial history entry records the entry into the lifecycle
	history, svcErr := env.service.GetHistory(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	require.Equal(t, 1, history.Total)
	require.NotNil(t, history.History[0].NewStatusID)
	assert.Equal(t, statusSubmitted, *history.History[0].NewStatusID)
	assert.Nil(t, history.History[0].OldStatusID)

	// Creation notification goes to the data principal
	creations := env.notifier.byTemplate(notifmodel.TemplateCreation)
	require.Len(t, creations, 1)
	assert.Equal(t, "asha@example.com", creations[0].Recipient)
	assert.Equal(t, "Access", creations[0].Data["requestType"])
	assert.Equal(t, "Acme Ltd", creations[0].Data["organizationName"])
}

func TestSubmitPublic_UnknownToken(t *testing.T) {
	env := setupRequestService(t)

	_, svcErr := env.service.SubmitPublic(context.Background(), "00000000-0000-0000-0000-00000000dead", &model.SubmitRequest{
		FirstName:   "Asha",
		Email:       "asha@example.com",
		RequestType: model.TypeAccess,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.ResourceNotFound, svcErr.Code)
}

func TestApplyChange_StatusMoveAppendsChainedHistory(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	inProgress := statusInProgress
	updated, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		StatusID: &inProgress,
		Comments: "started processing",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, statusInProgress, updated.StatusID)

	escalated := statusEscalated
	_, svcErr = env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		StatusID: &escalated,
	})
	require.Nil(t, svcErr)

	history, svcErr := env.service.GetHistory(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	require.Equal(t, 3, history.Total)

	// Newest first; each entry's old status is the previous entry's new status
	newest, middle := history.History[0], history.History[1]
	require.NotNil(t, newest.OldStatusID)
	require.NotNil(t, middle.NewStatusID)
	assert.Equal(t, *middle.NewStatusID, *newest.OldStatusID)
	assert.Equal(t, statusEscalated, *newest.NewStatusID)
}

func TestApplyChange_StatusMoveNotifiesRequester(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	inProgress := statusInProgress
	_, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		StatusID: &inProgress,
		Comments: "started processing",
	})
	require.Nil(t, svcErr)

	updates := env.notifier.byTemplate(notifmodel.TemplateStatusChange)
	require.Len(t, updates, 1)
	assert.Equal(t, "asha@example.com", updates[0].Recipient)
	assert.Equal(t, "In Progress", updates[0].Data["statusName"])

	// Closure sends the closure notice instead of another status update
	closed := statusClosed
	_, svcErr = env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		StatusID:        &closed,
		ClosureComments: "Access package delivered",
	})
	require.Nil(t, svcErr)
	assert.Len(t, env.notifier.byTemplate(notifmodel.TemplateStatusChange), 1)
	assert.Len(t, env.notifier.byTemplate(notifmodel.TemplateClosure), 1)
}

func TestApplyChange_NoteOnlyHistoryKeepsStatusChain(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	_, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		Comments: "called the requester to confirm identity",
	})
	require.Nil(t, svcErr)

	history, svcErr := env.service.GetHistory(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	require.Equal(t, 2, history.Total)

	// A note restates the current status so the chain stays unbroken
	newest := history.History[0]
	require.NotNil(t, newest.OldStatusID)
	require.NotNil(t, newest.NewStatusID)
	assert.Equal(t, statusSubmitted, *newest.OldStatusID)
	assert.Equal(t, statusSubmitted, *newest.NewStatusID)
	assert.Equal(t, "called the requester to confirm identity", newest.Comments)
}

func TestApplyChange_EmptyPayloadRejected(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	_, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.NoChange, svcErr.Code)
}

func TestApplyChange_CrossOrgForbidden(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	inProgress := statusInProgress
	_, svcErr := env.service.ApplyChange(context.Background(), otherOrgAdmin, created.RequestID, &model.UpdateRequest{
		StatusID: &inProgress,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestApplyChange_ClosureFlow(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	// Assign first so the closure CC goes somewhere
	assignee := int64(12)
	_, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		AssignedToUserID: &assignee,
	})
	require.Nil(t, svcErr)

	closed := statusClosed
	updated, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		StatusID:        &closed,
		ClosureComments: "Access package delivered",
	})
	require.Nil(t, svcErr)

	assert.Equal(t, statusClosed, updated.StatusID)
	require.NotNil(t, updated.ClosedDateTime)
	require.NotNil(t, updated.CompletedOnTime)
	assert.True(t, *updated.CompletedOnTime)
	require.NotNil(t, updated.ClosureComments)
	assert.Equal(t, "Access package delivered", *updated.ClosureComments)

	closures := env.notifier.byTemplate(notifmodel.TemplateClosure)
	require.Len(t, closures, 1)
	assert.Equal(t, "asha@example.com", closures[0].Recipient)
	assert.Equal(t, "Access package delivered", closures[0].Data["closureComment"])

	// Closed entities reject further changes
	inProgress := statusInProgress
	_, svcErr = env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		StatusID: &inProgress,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.ConflictError, svcErr.Code)
}

func TestApplyChange_ClosureWithoutCommentsRejected(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	closed := statusClosed
	_, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		StatusID: &closed,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.ClosureCommentMissing, svcErr.Code)

	// Nothing was persisted and no history was appended
	entity, svcErr := env.service.GetRequest(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	assert.Equal(t, statusSubmitted, entity.StatusID)
	history, svcErr := env.service.GetHistory(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	assert.Equal(t, 1, history.Total)
}

func TestApplyChange_AssignmentNotifiesAssignee(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	assignee := int64(12)
	updated, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		AssignedToUserID: &assignee,
	})
	require.Nil(t, svcErr)
	require.NotNil(t, updated.AssignedToUserID)
	assert.Equal(t, assignee, *updated.AssignedToUserID)

	assignments := env.notifier.byTemplate(notifmodel.TemplateAssignment)
	require.Len(t, assignments, 1)
	assert.Equal(t, "staff2@acme.example", assignments[0].Recipient)
}

func TestApplyChange_AssignmentByNonAdminForbidden(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	assignee := int64(12)
	_, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		AssignedToUserID: &assignee,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestApplyChange_InactiveAssigneeRejected(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	assignee := int64(13)
	_, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		AssignedToUserID: &assignee,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.AssigneeInvalid, svcErr.Code)
}

func TestApplyChange_AssigneeFromOtherOrgRejected(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	assignee := int64(20)
	_, svcErr := env.service.ApplyChange(context.Background(), admin, created.RequestID, &model.UpdateRequest{
		AssignedToUserID: &assignee,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.AssigneeInvalid, svcErr.Code)
}

func TestApplyChange_EscalationNotifiesAdmins(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	escalated := statusEscalated
	_, svcErr := env.service.ApplyChange(context.Background(), staff, created.RequestID, &model.UpdateRequest{
		StatusID: &escalated,
	})
	require.Nil(t, svcErr)

	escalations := env.notifier.byTemplate(notifmodel.TemplateEscalation)
	require.Len(t, escalations, 1)
	assert.Equal(t, "admin@acme.example", escalations[0].Recipient)
}

func TestEscalateOverdue_MovesPastDueRequests(t *testing.T) {
	env := setupRequestService(t)
	created := submitRequest(t, env)

	// Force the due date into the past
	stored := env.requests.requests[created.RequestID]
	past := time.Now().UTC().AddDate(0, 0, -2)
	stored.CompletionDate = &past

	count, svcErr := env.service.EscalateOverdue(context.Background())
	require.Nil(t, svcErr)
	assert.Equal(t, 1, count)

	entity, svcErr := env.service.GetRequest(context.Background(), admin, created.RequestID)
	require.Nil(t, svcErr)
	assert.Equal(t, statusEscalated, entity.StatusID)

	// Already-escalated entities are not escalated again
	count, svcErr = env.service.EscalateOverdue(context.Background())
	require.Nil(t, svcErr)
	assert.Equal(t, 0, count)
}

func TestListRequests_ScopedToOrganization(t *testing.T) {
	env := setupRequestService(t)
	submitRequest(t, env)

	response, svcErr := env.service.ListRequests(context.Background(), admin, 0, model.SearchFilters{Limit: 30})
	require.Nil(t, svcErr)
	assert.Equal(t, 1, response.Total)

	response, svcErr = env.service.ListRequests(context.Background(), otherOrgAdmin, 0, model.SearchFilters{Limit: 30})
	require.Nil(t, svcErr)
	assert.Equal(t, 0, response.Total)

	// Listing another organization's requests is rejected outright
	_, svcErr = env.service.ListRequests(context.Background(), otherOrgAdmin, 1, model.SearchFilters{Limit: 30})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestGetRequest_NotFound(t *testing.T) {
	env := setupRequestService(t)

	_, svcErr := env.service.GetRequest(context.Background(), admin, 404)
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.RequestNotFound, svcErr.Code)
}
