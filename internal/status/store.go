package status

import (
	"context"
	"fmt"

	"github.com/complyark/dpdpa-portal/internal/status/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

// DBQuery objects for all status catalog operations
var (
	QueryCreateStatus = dbmodel.DBQuery{
		ID:    "CREATE_STATUS",
		Query: "INSERT INTO DPR_STATUS (STATUS_NAME, SLA_DAYS, IS_ACTIVE) VALUES (?, ?, ?)",
	}

	QueryGetStatusByID = dbmodel.DBQuery{
		ID:    "GET_STATUS_BY_ID",
		Query: "SELECT STATUS_ID, STATUS_NAME, SLA_DAYS, IS_ACTIVE FROM DPR_STATUS WHERE STATUS_ID = ?",
	}

	QueryGetStatusByName = dbmodel.DBQuery{
		ID:    "GET_STATUS_BY_NAME",
		Query: "SELECT STATUS_ID, STATUS_NAME, SLA_DAYS, IS_ACTIVE FROM DPR_STATUS WHERE LOWER(STATUS_NAME) = LOWER(?)",
	}

	QueryGetAllStatuses = dbmodel.DBQuery{
		ID:    "GET_ALL_STATUSES",
		Query: "SELECT STATUS_ID, STATUS_NAME, SLA_DAYS, IS_ACTIVE FROM DPR_STATUS ORDER BY STATUS_ID",
	}

	QueryGetActiveStatuses = dbmodel.DBQuery{
		ID:    "GET_ACTIVE_STATUSES",
		Query: "SELECT STATUS_ID, STATUS_NAME, SLA_DAYS, IS_ACTIVE FROM DPR_STATUS WHERE IS_ACTIVE = 1 ORDER BY STATUS_ID",
	}

	QueryUpdateStatus = dbmodel.DBQuery{
		ID:    "UPDATE_STATUS",
		Query: "UPDATE DPR_STATUS SET STATUS_NAME = ?, SLA_DAYS = ?, IS_ACTIVE = ? WHERE STATUS_ID = ?",
	}

	QueryDeleteStatus = dbmodel.DBQuery{
		ID:    "DELETE_STATUS",
		Query: "DELETE FROM DPR_STATUS WHERE STATUS_ID = ?",
	}

	QueryCountStatusUsage = dbmodel.DBQuery{
		ID: "COUNT_STATUS_USAGE",
		Query: "SELECT (SELECT COUNT(*) FROM DPR_REQUEST WHERE STATUS_ID = ?) + " +
			"(SELECT COUNT(*) FROM DPR_GRIEVANCE WHERE STATUS_ID = ?) AS count",
	}
)

// StatusStore defines the interface for status catalog data operations
type StatusStore interface {
	Create(tx dbmodel.TxInterface, status *model.Status) error
	GetByID(ctx context.Context, statusID int64) (*model.Status, error)
	GetByName(ctx context.Context, name string) (*model.Status, error)
	List(ctx context.Context, includeInactive bool) ([]model.Status, error)
	Update(tx dbmodel.TxInterface, status *model.Status) error
	Delete(tx dbmodel.TxInterface, statusID int64) error
	CountUsage(ctx context.Context, statusID int64) (int64, error)
}

// store implements StatusStore
type store struct {
	dbClient provider.DBClientInterface
}

// NewStatusStore creates a new status catalog store
func NewStatusStore(dbClient provider.DBClientInterface) StatusStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new catalog status and populates its generated ID
func (s *store) Create(tx dbmodel.TxInterface, status *model.Status) error {
	result, err := tx.Exec(QueryCreateStatus.Query, status.StatusName, status.SLADays, status.IsActive)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	status.StatusID = id
	return nil
}

// GetByID retrieves a catalog status by ID
func (s *store) GetByID(ctx context.Context, statusID int64) (*model.Status, error) {
	results, err := s.dbClient.Query(QueryGetStatusByID, statusID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
	}
	return mapToStatus(results[0]), nil
}

// GetByName retrieves a catalog status by name, case-insensitively
func (s *store) GetByName(ctx context.Context, name string) (*model.Status, error) {
	results, err := s.dbClient.Query(QueryGetStatusByName, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("status %w", dbutils.ErrNotFound)
	}
	return mapToStatus(results[0]), nil
}

// List retrieves catalog statuses, optionally including inactive ones
func (s *store) List(ctx context.Context, includeInactive bool) ([]model.Status, error) {
	query := QueryGetActiveStatuses
	if includeInactive {
		query = QueryGetAllStatuses
	}
	results, err := s.dbClient.Query(query)
	if err != nil {
		return nil, err
	}

	statuses := make([]model.Status, 0, len(results))
	for _, row := range results {
		statuses = append(statuses, *mapToStatus(row))
	}
	return statuses, nil
}

// Update updates a catalog status
func (s *store) Update(tx dbmodel.TxInterface, status *model.Status) error {
	_, err := tx.Exec(QueryUpdateStatus.Query, status.StatusName, status.SLADays, status.IsActive, status.StatusID)
	return err
}

// Delete removes a catalog status
func (s *store) Delete(tx dbmodel.TxInterface, statusID int64) error {
	_, err := tx.Exec(QueryDeleteStatus.Query, statusID)
	return err
}

// CountUsage counts requests and grievances currently in the given status
func (s *store) CountUsage(ctx context.Context, statusID int64) (int64, error) {
	results, err := s.dbClient.Query(QueryCountStatusUsage, statusID, statusID)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return dbutils.ToInt64(results[0]["count"]), nil
}

// mapToStatus converts a database row map to Status
func mapToStatus(row map[string]interface{}) *model.Status {
	return &model.Status{
		StatusID:   dbutils.ToInt64(row["STATUS_ID"]),
		StatusName: dbutils.ToString(row["STATUS_NAME"]),
		SLADays:    int(dbutils.ToInt64(row["SLA_DAYS"])),
		IsActive:   dbutils.ToBool(row["IS_ACTIVE"]),
	}
}
