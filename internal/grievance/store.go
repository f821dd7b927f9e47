package grievance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/grievance/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

const grievanceColumns = "GRIEVANCE_ID, ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, PHONE, " +
	"GRIEVANCE_COMMENTS, STATUS_ID, ASSIGNED_TO_USER_ID, CREATED_AT, LAST_UPDATED_AT, COMPLETION_DATE, " +
	"COMPLETED_ON_TIME, CLOSED_DATE_TIME, CLOSURE_COMMENTS"

// DBQuery objects for grievance operations
var (
	QueryCreateGrievance = dbmodel.DBQuery{
		ID: "CREATE_GRIEVANCE",
		Query: "INSERT INTO DPR_GRIEVANCE (ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, PHONE, " +
			"GRIEVANCE_COMMENTS, STATUS_ID, ASSIGNED_TO_USER_ID, CREATED_AT, LAST_UPDATED_AT, COMPLETION_DATE) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryGetGrievanceByID = dbmodel.DBQuery{
		ID:    "GET_GRIEVANCE_BY_ID",
		Query: "SELECT " + grievanceColumns + " FROM DPR_GRIEVANCE WHERE GRIEVANCE_ID = ?",
	}

	// Row-locked read used inside lifecycle update transactions.
	QueryGetGrievanceByIDForUpdate = dbmodel.DBQuery{
		ID:    "GET_GRIEVANCE_BY_ID_FOR_UPDATE",
		Query: "SELECT " + grievanceColumns + " FROM DPR_GRIEVANCE WHERE GRIEVANCE_ID = ? FOR UPDATE",
	}

	QueryUpdateGrievanceLifecycle = dbmodel.DBQuery{
		ID: "UPDATE_GRIEVANCE_LIFECYCLE",
		Query: "UPDATE DPR_GRIEVANCE SET STATUS_ID = ?, ASSIGNED_TO_USER_ID = ?, LAST_UPDATED_AT = ?, " +
			"COMPLETION_DATE = ?, COMPLETED_ON_TIME = ?, CLOSED_DATE_TIME = ?, CLOSURE_COMMENTS = ? " +
			"WHERE GRIEVANCE_ID = ?",
	}

	QueryAppendGrievanceHistory = dbmodel.DBQuery{
		ID: "APPEND_GRIEVANCE_HISTORY",
		Query: "INSERT INTO DPR_GRIEVANCE_HISTORY (GRIEVANCE_ID, CHANGE_DATE, CHANGED_BY_USER_ID, OLD_STATUS_ID, " +
			"NEW_STATUS_ID, OLD_ASSIGNED_TO_USER_ID, NEW_ASSIGNED_TO_USER_ID, COMMENTS) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryGetGrievanceHistory = dbmodel.DBQuery{
		ID: "GET_GRIEVANCE_HISTORY",
		Query: "SELECT H.HISTORY_ID, H.GRIEVANCE_ID, H.CHANGE_DATE, H.CHANGED_BY_USER_ID, " +
			"CONCAT_WS(' ', CB.FIRST_NAME, CB.LAST_NAME) AS CHANGED_BY_NAME, " +
			"H.OLD_STATUS_ID, OS.STATUS_NAME AS OLD_STATUS_NAME, " +
			"H.NEW_STATUS_ID, NS.STATUS_NAME AS NEW_STATUS_NAME, " +
			"H.OLD_ASSIGNED_TO_USER_ID, CONCAT_WS(' ', OA.FIRST_NAME, OA.LAST_NAME) AS OLD_ASSIGNEE_NAME, " +
			"H.NEW_ASSIGNED_TO_USER_ID, CONCAT_WS(' ', NA.FIRST_NAME, NA.LAST_NAME) AS NEW_ASSIGNEE_NAME, " +
			"H.COMMENTS " +
			"FROM DPR_GRIEVANCE_HISTORY H " +
			"LEFT JOIN PORTAL_USER CB ON CB.USER_ID = H.CHANGED_BY_USER_ID " +
			"LEFT JOIN DPR_STATUS OS ON OS.STATUS_ID = H.OLD_STATUS_ID " +
			"LEFT JOIN DPR_STATUS NS ON NS.STATUS_ID = H.NEW_STATUS_ID " +
			"LEFT JOIN PORTAL_USER OA ON OA.USER_ID = H.OLD_ASSIGNED_TO_USER_ID " +
			"LEFT JOIN PORTAL_USER NA ON NA.USER_ID = H.NEW_ASSIGNED_TO_USER_ID " +
			"WHERE H.GRIEVANCE_ID = ? " +
			"ORDER BY H.CHANGE_DATE DESC, H.HISTORY_ID DESC",
	}
)

// GrievanceStore defines the interface for grievance data operations
type GrievanceStore interface {
	Create(tx dbmodel.TxInterface, grievance *model.Grievance) error
	GetByID(ctx context.Context, grievanceID int64) (*model.Grievance, error)
	GetByIDForUpdate(tx dbmodel.TxInterface, grievanceID int64) (*model.Grievance, error)
	UpdateLifecycle(tx dbmodel.TxInterface, grievance *model.Grievance) error
	AppendHistory(tx dbmodel.TxInterface, entry *model.HistoryEntry) error
	GetHistory(ctx context.Context, grievanceID int64) ([]model.HistoryEntry, error)
	Search(ctx context.Context, organizationID int64, filters model.SearchFilters) ([]model.Grievance, int, error)
	ListOpenPastDue(ctx context.Context, excludeStatusIDs []int64) ([]model.Grievance, error)
}

// store implements GrievanceStore
type store struct {
	dbClient provider.DBClientInterface
}

// NewGrievanceStore creates a new grievance store
func NewGrievanceStore(dbClient provider.DBClientInterface) GrievanceStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new grievance and populates its generated ID
func (s *store) Create(tx dbmodel.TxInterface, grievance *model.Grievance) error {
	result, err := tx.Exec(QueryCreateGrievance.Query,
		grievance.OrganizationID,
		grievance.FirstName,
		grievance.LastName,
		grievance.Email,
		grievance.Phone,
		grievance.GrievanceComments,
		grievance.StatusID,
		grievance.AssignedToUserID,
		grievance.CreatedAt,
		grievance.LastUpdatedAt,
		grievance.CompletionDate,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	grievance.GrievanceID = id
	return nil
}

// GetByID retrieves a grievance by ID
func (s *store) GetByID(ctx context.Context, grievanceID int64) (*model.Grievance, error) {
	results, err := s.dbClient.Query(QueryGetGrievanceByID, grievanceID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("grievance %w", dbutils.ErrNotFound)
	}
	return mapToGrievance(results[0]), nil
}

// GetByIDForUpdate retrieves a grievance under a row lock within the given
// transaction, serializing concurrent lifecycle updates on the same row.
func (s *store) GetByIDForUpdate(tx dbmodel.TxInterface, grievanceID int64) (*model.Grievance, error) {
	rows, err := tx.Query(QueryGetGrievanceByIDForUpdate.Query, grievanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("grievance %w", dbutils.ErrNotFound)
	}
	return scanGrievance(rows)
}

// UpdateLifecycle persists the lifecycle fields of a grievance
func (s *store) UpdateLifecycle(tx dbmodel.TxInterface, grievance *model.Grievance) error {
	_, err := tx.Exec(QueryUpdateGrievanceLifecycle.Query,
		grievance.StatusID,
		grievance.AssignedToUserID,
		grievance.LastUpdatedAt,
		grievance.CompletionDate,
		grievance.CompletedOnTime,
		grievance.ClosedDateTime,
		grievance.ClosureComments,
		grievance.GrievanceID,
	)
	return err
}

// AppendHistory appends an audit entry for a grievance
func (s *store) AppendHistory(tx dbmodel.TxInterface, entry *model.HistoryEntry) error {
	_, err := tx.Exec(QueryAppendGrievanceHistory.Query,
		entry.GrievanceID,
		entry.ChangeDate,
		entry.ChangedByUserID,
		entry.OldStatusID,
		entry.NewStatusID,
		entry.OldAssignedToUserID,
		entry.NewAssignedToUserID,
		entry.Comments,
	)
	return err
}

// GetHistory retrieves the enriched audit trail of a grievance, newest first
func (s *store) GetHistory(ctx context.Context, grievanceID int64) ([]model.HistoryEntry, error) {
	results, err := s.dbClient.Query(QueryGetGrievanceHistory, grievanceID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(results))
	for _, row := range results {
		entries = append(entries, *mapToGrievanceHistoryEntry(row))
	}
	return entries, nil
}

// Search retrieves a filtered page of an organization's grievances along
// with the total match count.
func (s *store) Search(ctx context.Context, organizationID int64, filters model.SearchFilters) ([]model.Grievance, int, error) {
	var conditions []string
	var args []interface{}

	if organizationID > 0 {
		conditions = append(conditions, "ORGANIZATION_ID = ?")
		args = append(args, organizationID)
	}
	if filters.StatusID != nil {
		conditions = append(conditions, "STATUS_ID = ?")
		args = append(args, *filters.StatusID)
	}
	if filters.AssignedToUserID != nil {
		conditions = append(conditions, "ASSIGNED_TO_USER_ID = ?")
		args = append(args, *filters.AssignedToUserID)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := dbmodel.DBQuery{
		ID:    "COUNT_GRIEVANCES",
		Query: "SELECT COUNT(*) as count FROM DPR_GRIEVANCE" + where,
	}
	countRows, err := s.dbClient.Query(countQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	total := 0
	if len(countRows) > 0 {
		total = int(dbutils.ToInt64(countRows[0]["count"]))
	}

	listQuery := dbmodel.DBQuery{
		ID: "SEARCH_GRIEVANCES",
		Query: dbutils.BuildPaginationQuery(
			"SELECT "+grievanceColumns+" FROM DPR_GRIEVANCE"+where+" ORDER BY CREATED_AT DESC, GRIEVANCE_ID DESC",
			filters.Limit, filters.Offset,
		),
	}
	results, err := s.dbClient.Query(listQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	grievances := make([]model.Grievance, 0, len(results))
	for _, row := range results {
		grievances = append(grievances, *mapToGrievance(row))
	}
	return grievances, total, nil
}

// ListOpenPastDue retrieves grievances whose due date has passed and whose
// status is none of the excluded statuses.
func (s *store) ListOpenPastDue(ctx context.Context, excludeStatusIDs []int64) ([]model.Grievance, error) {
	query := "SELECT " + grievanceColumns + " FROM DPR_GRIEVANCE " +
		"WHERE COMPLETION_DATE IS NOT NULL AND COMPLETION_DATE < NOW() AND CLOSED_DATE_TIME IS NULL"
	var args []interface{}
	if len(excludeStatusIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(excludeStatusIDs)), ", ")
		query += " AND STATUS_ID NOT IN (" + placeholders + ")"
		for _, id := range excludeStatusIDs {
			args = append(args, id)
		}
	}

	results, err := s.dbClient.Query(dbmodel.DBQuery{ID: "LIST_GRIEVANCES_PAST_DUE", Query: query}, args...)
	if err != nil {
		return nil, err
	}

	grievances := make([]model.Grievance, 0, len(results))
	for _, row := range results {
		grievances = append(grievances, *mapToGrievance(row))
	}
	return grievances, nil
}

// mapToGrievance converts a database row map to Grievance
func mapToGrievance(row map[string]interface{}) *model.Grievance {
	return &model.Grievance{
		GrievanceID:       dbutils.ToInt64(row["GRIEVANCE_ID"]),
		OrganizationID:    dbutils.ToInt64(row["ORGANIZATION_ID"]),
		FirstName:         dbutils.ToString(row["FIRST_NAME"]),
		LastName:          dbutils.ToString(row["LAST_NAME"]),
		Email:             dbutils.ToString(row["EMAIL"]),
		Phone:             dbutils.ToString(row["PHONE"]),
		GrievanceComments: dbutils.ToString(row["GRIEVANCE_COMMENTS"]),
		StatusID:          dbutils.ToInt64(row["STATUS_ID"]),
		AssignedToUserID:  dbutils.ToNullableInt64(row["ASSIGNED_TO_USER_ID"]),
		CreatedAt:         dbutils.ToTime(row["CREATED_AT"]),
		LastUpdatedAt:     dbutils.ToTime(row["LAST_UPDATED_AT"]),
		CompletionDate:    dbutils.ToNullableTime(row["COMPLETION_DATE"]),
		CompletedOnTime:   dbutils.ToNullableBool(row["COMPLETED_ON_TIME"]),
		ClosedDateTime:    dbutils.ToNullableTime(row["CLOSED_DATE_TIME"]),
		ClosureComments:   dbutils.ToNullableString(row["CLOSURE_COMMENTS"]),
	}
}

// mapToGrievanceHistoryEntry converts an enriched history row to HistoryEntry
func mapToGrievanceHistoryEntry(row map[string]interface{}) *model.HistoryEntry {
	return &model.HistoryEntry{
		HistoryID:           dbutils.ToInt64(row["HISTORY_ID"]),
		GrievanceID:         dbutils.ToInt64(row["GRIEVANCE_ID"]),
		ChangeDate:          dbutils.ToTime(row["CHANGE_DATE"]),
		ChangedByUserID:     dbutils.ToInt64(row["CHANGED_BY_USER_ID"]),
		ChangedByName:       dbutils.ToString(row["CHANGED_BY_NAME"]),
		OldStatusID:         dbutils.ToNullableInt64(row["OLD_STATUS_ID"]),
		OldStatusName:       dbutils.ToNullableString(row["OLD_STATUS_NAME"]),
		NewStatusID:         dbutils.ToNullableInt64(row["NEW_STATUS_ID"]),
		NewStatusName:       dbutils.ToNullableString(row["NEW_STATUS_NAME"]),
		OldAssignedToUserID: dbutils.ToNullableInt64(row["OLD_ASSIGNED_TO_USER_ID"]),
		OldAssigneeName:     dbutils.ToNullableString(row["OLD_ASSIGNEE_NAME"]),
		NewAssignedToUserID: dbutils.ToNullableInt64(row["NEW_ASSIGNED_TO_USER_ID"]),
		NewAssigneeName:     dbutils.ToNullableString(row["NEW_ASSIGNEE_NAME"]),
		Comments:            dbutils.ToString(row["COMMENTS"]),
	}
}

// scanGrievance scans a raw row from a locked read into a Grievance
func scanGrievance(rows *sql.Rows) (*model.Grievance, error) {
	var grievance model.Grievance
	var phone, closureComments sql.NullString
	var assignedTo sql.NullInt64
	var completionDate, closedDateTime sql.NullTime
	var completedOnTime sql.NullBool

	err := rows.Scan(
		&grievance.GrievanceID,
		&grievance.OrganizationID,
		&grievance.FirstName,
		&grievance.LastName,
		&grievance.Email,
		&phone,
		&grievance.GrievanceComments,
		&grievance.StatusID,
		&assignedTo,
		&grievance.CreatedAt,
		&grievance.LastUpdatedAt,
		&completionDate,
		&completedOnTime,
		&closedDateTime,
		&closureComments,
	)
	if err != nil {
		return nil, err
	}

	grievance.Phone = phone.String
	if assignedTo.Valid {
		grievance.AssignedToUserID = &assignedTo.Int64
	}
	if completionDate.Valid {
		grievance.CompletionDate = &completionDate.Time
	}
	if completedOnTime.Valid {
		grievance.CompletedOnTime = &completedOnTime.Bool
	}
	if closedDateTime.Valid {
		grievance.ClosedDateTime = &closedDateTime.Time
	}
	if closureComments.Valid {
		grievance.ClosureComments = &closureComments.String
	}
	return &grievance, nil
}
