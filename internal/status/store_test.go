package status

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyark/dpdpa-portal/internal/system/database"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
)

func newMockedStore(t *testing.T) (StatusStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	client := provider.NewDBClient(&database.DB{DB: sqlxDB}, "mysql")
	return NewStatusStore(client), mock
}

func TestStore_GetByName(t *testing.T) {
	store, mock := newMockedStore(t)

	rows := sqlmock.NewRows([]string{"STATUS_ID", "STATUS_NAME", "SLA_DAYS", "IS_ACTIVE"}).
		AddRow(int64(3), "Escalated", int64(5), int64(1))
	mock.ExpectQuery(QueryGetStatusByName.Query).WithArgs("escalated").WillReturnRows(rows)

	status, err := store.GetByName(context.Background(), "escalated")
	require.NoError(t, err)
	assert.Equal(t, int64(3), status.StatusID)
	assert.Equal(t, "Escalated", status.StatusName)
	assert.Equal(t, 5, status.SLADays)
	assert.True(t, status.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetByName_NotFound(t *testing.T) {
	store, mock := newMockedStore(t)

	mock.ExpectQuery(QueryGetStatusByName.Query).
		WithArgs("Missing").
		WillReturnRows(sqlmock.NewRows([]string{"STATUS_ID", "STATUS_NAME", "SLA_DAYS", "IS_ACTIVE"}))

	_, err := store.GetByName(context.Background(), "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStore_List_ActiveOnly(t *testing.T) {
	store, mock := newMockedStore(t)

	rows := sqlmock.NewRows([]string{"STATUS_ID", "STATUS_NAME", "SLA_DAYS", "IS_ACTIVE"}).
		AddRow(int64(1), "Submitted", int64(30), int64(1)).
		AddRow(int64(4), "Closed", int64(1), int64(1))
	mock.ExpectQuery(QueryGetActiveStatuses.Query).WillReturnRows(rows)

	statuses, err := store.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "Submitted", statuses[0].StatusName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountUsage(t *testing.T) {
	store, mock := newMockedStore(t)

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(7))
	mock.ExpectQuery(QueryCountStatusUsage.Query).WithArgs(int64(2), int64(2)).WillReturnRows(rows)

	count, err := store.CountUsage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
