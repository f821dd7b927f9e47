package status

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/authn"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/codes"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
	"github.com/complyark/dpdpa-portal/internal/system/stores/storetest"
)

// fakeStatusStore is an in-memory StatusStore for service tests
type fakeStatusStore struct {
	statuses map[int64]*model.Status
	usage    map[int64]int64
	nextID   int64
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{
		statuses: map[int64]*model.Status{},
		usage:    map[int64]int64{},
		nextID:   1,
	}
}

func (f *fakeStatusStore) Create(tx dbmodel.TxInterface, status *model.Status) error {
	status.StatusID = f.nextID
	f.nextID++
	copied := *status
	f.statuses[status.StatusID] = &copied
	return nil
}

func (f *fakeStatusStore) GetByID(ctx context.Context, statusID int64) (*model.Status, error) {
	status, ok := f.statuses[statusID]
	if !ok {
		return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
	}
	copied := *status
	return &copied, nil
}

func (f *fakeStatusStore) GetByName(ctx context.Context, name string) (*model.Status, error) {
	for _, status := range f.statuses {
		if strings.EqualFold(status.StatusName, name) {
			copied := *status
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
}

func (f *fakeStatusStore) List(ctx context.Context, includeInactive bool) ([]model.Status, error) {
	var result []model.Status
	for id := int64(1); id < f.nextID; id++ {
		status, ok := f.statuses[id]
		if !ok {
			continue
		}
		if !includeInactive && !status.IsActive {
			continue
		}
		result = append(result, *status)
	}
	return result, nil
}

func (f *fakeStatusStore) Update(tx dbmodel.TxInterface, status *model.Status) error {
	copied := *status
	f.statuses[status.StatusID] = &copied
	return nil
}

func (f *fakeStatusStore) Delete(tx dbmodel.TxInterface, statusID int64) error {
	delete(f.statuses, statusID)
	return nil
}

func (f *fakeStatusStore) CountUsage(ctx context.Context, statusID int64) (int64, error) {
	return f.usage[statusID], nil
}

func setupStatusService(t *testing.T) (StatusServiceInterface, *fakeStatusStore) {
	t.Helper()
	registry := stores.NewStoreRegistry(storetest.NewFakeDBClient())
	store := newFakeStatusStore()
	registry.Status = store
	return newStatusService(registry), store
}

var adminActor = authn.Actor{UserID: 1, OrganizationID: 1, Role: authn.RoleAdmin}
var userActor = authn.Actor{UserID: 2, OrganizationID: 1, Role: authn.RoleUser}

func TestCreateStatus_Success(t *testing.T) {
	service, _ := setupStatusService(t)

	status, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Submitted",
		SLADays:    30,
	})
	require.Nil(t, svcErr)
	assert.Equal(t, int64(1), status.StatusID)
	assert.Equal(t, "Submitted", status.StatusName)
	assert.Equal(t, 30, status.SLADays)
	assert.True(t, status.IsActive)
}

func TestCreateStatus_DuplicateNameCaseInsensitive(t *testing.T) {
	service, _ := setupStatusService(t)

	_, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Submitted", SLADays: 30,
	})
	require.Nil(t, svcErr)

	_, svcErr = service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "SUBMITTED", SLADays: 10,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.StatusNameTaken, svcErr.Code)
}

func TestCreateStatus_NonAdminForbidden(t *testing.T) {
	service, _ := setupStatusService(t)

	_, svcErr := service.CreateStatus(context.Background(), userActor, &model.CreateRequest{
		StatusName: "Submitted", SLADays: 30,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.Forbidden, svcErr.Code)
}

func TestGetStatusByName_CaseInsensitive(t *testing.T) {
	service, _ := setupStatusService(t)

	created, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "In Progress", SLADays: 15,
	})
	require.Nil(t, svcErr)

	found, svcErr := service.GetStatusByName(context.Background(), "in progress")
	require.Nil(t, svcErr)
	assert.Equal(t, created.StatusID, found.StatusID)
}

func TestUpdateStatus_RenameKeepsID(t *testing.T) {
	service, _ := setupStatusService(t)

	created, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Escalated", SLADays: 5,
	})
	require.Nil(t, svcErr)

	inactive := false
	updated, svcErr := service.UpdateStatus(context.Background(), adminActor, created.StatusID, &model.UpdateRequest{
		StatusName: "Escalated - Urgent",
		SLADays:    3,
		IsActive:   &inactive,
	})
	require.Nil(t, svcErr)
	assert.Equal(t, created.StatusID, updated.StatusID)
	assert.Equal(t, "Escalated - Urgent", updated.StatusName)
	assert.Equal(t, 3, updated.SLADays)
	assert.False(t, updated.IsActive)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	service, _ := setupStatusService(t)

	_, svcErr := service.UpdateStatus(context.Background(), adminActor, 99, &model.UpdateRequest{
		StatusName: "Whatever", SLADays: 1,
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.StatusNotFound, svcErr.Code)
}

func TestDeleteStatus_BlockedWhileReferenced(t *testing.T) {
	service, store := setupStatusService(t)

	created, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Closed", SLADays: 1,
	})
	require.Nil(t, svcErr)

	store.usage[created.StatusID] = 4

	svcErr = service.DeleteStatus(context.Background(), adminActor, created.StatusID)
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.StatusInUse, svcErr.Code)

	// Once nothing references it, deletion succeeds
	store.usage[created.StatusID] = 0
	svcErr = service.DeleteStatus(context.Background(), adminActor, created.StatusID)
	require.Nil(t, svcErr)

	_, svcErr = service.GetStatus(context.Background(), created.StatusID)
	require.NotNil(t, svcErr)
	assert.Equal(t, codes.StatusNotFound, svcErr.Code)
}

func TestListStatuses_FiltersInactive(t *testing.T) {
	service, _ := setupStatusService(t)

	_, svcErr := service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Submitted", SLADays: 30,
	})
	require.Nil(t, svcErr)

	inactive := false
	_, svcErr = service.CreateStatus(context.Background(), adminActor, &model.CreateRequest{
		StatusName: "Retired", SLADays: 10, IsActive: &inactive,
	})
	require.Nil(t, svcErr)

	active, svcErr := service.ListStatuses(context.Background(), false)
	require.Nil(t, svcErr)
	assert.Equal(t, 1, active.Total)

	all, svcErr := service.ListStatuses(context.Background(), true)
	require.Nil(t, svcErr)
	assert.Equal(t, 2, all.Total)
}
