package dashboard

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyark/dpdpa-portal/internal/dashboard/model"
	statusmodel "github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/stores/storetest"
)

type fakeDashboardStore struct {
	totals       model.Totals
	distribution []model.StatusCount
	escalated    []model.WorkItem
	upcoming     []model.WorkItem

	lastOrgID      int64
	lastWindowDays int
}

func (f *fakeDashboardStore) GetTotals(ctx context.Context, organizationID int64) (*model.Totals, error) {
	f.lastOrgID = organizationID
	totals := f.totals
	return &totals, nil
}

func (f *fakeDashboardStore) CountByStatus(ctx context.Context, organizationID int64) ([]model.StatusCount, error) {
	out := make([]model.StatusCount, len(f.distribution))
	copy(out, f.distribution)
	return out, nil
}

func (f *fakeDashboardStore) ListEscalated(ctx context.Context, organizationID, escalatedStatusID int64) ([]model.WorkItem, error) {
	out := make([]model.WorkItem, len(f.escalated))
	copy(out, f.escalated)
	return out, nil
}

func (f *fakeDashboardStore) ListUpcomingDue(ctx context.Context, organizationID int64, windowDays int) ([]model.WorkItem, error) {
	f.lastWindowDays = windowDays
	out := make([]model.WorkItem, len(f.upcoming))
	copy(out, f.upcoming)
	return out, nil
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
	return nil, nil
}

func setupDashboardService(t *testing.T, dashStore *fakeDashboardStore) DashboardServiceInterface {
	t.Helper()

	registry := stores.NewStoreRegistry(storetest.NewFakeDBClient())
	registry.Dashboard = dashStore
	registry.Status = &fakeStatusStore{statuses: map[int64]*statusmodel.Status{
		2: {StatusID: 2, StatusName: "Escalated", SLADays: 5, IsActive: true},
	}}

	lifecycleCfg := &config.LifecycleConfig{
		StatusMappings: config.StatusMappings{
			SubmittedStatus: "Submitted",
			EscalatedStatus: "Escalated",
			ClosedStatus:    "Closed",
			OverdueStatus:   "Escalated",
		},
		DueSoonWindowDays: 7,
	}
	return newDashboardService(registry, lifecycleCfg)
}

func TestGetDashboard_PercentagesSumFromDistribution(t *testing.T) {
	dashStore := &fakeDashboardStore{
		totals: model.Totals{TotalRequests: 6, TotalGrievances: 2},
		distribution: []model.StatusCount{
			{StatusID: 1, StatusName: "Submitted", Count: 5},
			{StatusID: 2, StatusName: "Escalated", Count: 2},
			{StatusID: 3, StatusName: "Closed", Count: 1},
		},
	}
	service := setupDashboardService(t, dashStore)

	actor := authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
	view, svcErr := service.GetDashboard(context.Background(), actor, 0)
	require.Nil(t, svcErr)

	assert.Equal(t, int64(6), view.Totals.TotalRequests)
	require.Len(t, view.StatusDistribution, 3)
	assert.InDelta(t, 62.5, view.StatusDistribution[0].Percentage, 0.01)
	assert.InDelta(t, 25.0, view.StatusDistribution[1].Percentage, 0.01)
	assert.InDelta(t, 12.5, view.StatusDistribution[2].Percentage, 0.01)

	// Non-superadmin views are always scoped to their own organization
	assert.Equal(t, int64(1), dashStore.lastOrgID)
	assert.Equal(t, 7, dashStore.lastWindowDays)
}

func TestGetDashboard_DaysRemaining(t *testing.T) {
	soon := time.Now().UTC().Add(72 * time.Hour)
	overdue := time.Now().UTC().Add(-48 * time.Hour)
	dashStore := &fakeDashboardStore{
		escalated: []model.WorkItem{
			{ID: 1, Kind: model.KindRequest, CompletionDate: &overdue},
		},
		upcoming: []model.WorkItem{
			{ID: 2, Kind: model.KindGrievance, CompletionDate: &soon},
		},
	}
	service := setupDashboardService(t, dashStore)

	actor := authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
	view, svcErr := service.GetDashboard(context.Background(), actor, 0)
	require.Nil(t, svcErr)

	require.Len(t, view.Escalated, 1)
	assert.LessOrEqual(t, view.Escalated[0].DaysRemaining, -1)
	require.Len(t, view.UpcomingDue, 1)
	assert.Equal(t, 3, view.UpcomingDue[0].DaysRemaining)
}

func TestGetDashboard_CrossOrgForbidden(t *testing.T) {
	service := setupDashboardService(t, &fakeDashboardStore{})

	actor := authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
	_, svcErr := service.GetDashboard(context.Background(), actor, 2)
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestGetDashboard_SuperAdminSpansOrganizations(t *testing.T) {
	dashStore := &fakeDashboardStore{lastOrgID: -1}
	service := setupDashboardService(t, dashStore)

	actor := authn.Actor{UserID: 1, Role: authn.RoleSuperAdmin}
	_, svcErr := service.GetDashboard(context.Background(), actor, 0)
	require.Nil(t, svcErr)
	assert.Equal(t, int64(0), dashStore.lastOrgID)
}

func TestGetUpcomingDue_ScopedAndWindowed(t *testing.T) {
	soon := time.Now().UTC().Add(24 * time.Hour)
	dashStore := &fakeDashboardStore{
		upcoming: []model.WorkItem{
			{ID: 7, Kind: model.KindRequest, CompletionDate: &soon},
		},
	}
	service := setupDashboardService(t, dashStore)

	actor := authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
	items, svcErr := service.GetUpcomingDue(context.Background(), actor, 0)
	require.Nil(t, svcErr)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].DaysRemaining)
	assert.Equal(t, 7, dashStore.lastWindowDays)

	_, svcErr = service.GetEscalated(context.Background(), actor, 2)
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestGetDashboard_EmptyDistribution(t *testing.T) {
	service := setupDashboardService(t, &fakeDashboardStore{})

	actor := authn.Actor{UserID: 10, OrganizationID: 1, Role: authn.RoleAdmin}
	view, svcErr := service.GetDashboard(context.Background(), actor, 0)
	require.Nil(t, svcErr)
	assert.Empty(t, view.StatusDistribution)
	assert.Empty(t, view.Escalated)
	assert.Empty(t, view.UpcomingDue)
}
