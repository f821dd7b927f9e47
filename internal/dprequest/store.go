package dprequest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/complyark/dpdpa-portal/internal/dprequest/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

const requestColumns = "REQUEST_ID, ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, PHONE, REQUEST_TYPE, " +
	"REQUEST_COMMENTS, STATUS_ID, ASSIGNED_TO_USER_ID, CREATED_AT, LAST_UPDATED_AT, COMPLETION_DATE, " +
	"COMPLETED_ON_TIME, CLOSED_DATE_TIME, CLOSURE_COMMENTS"

// DBQuery objects for request operations
var (
	QueryCreateRequest = dbmodel.DBQuery{
		ID: "CREATE_REQUEST",
		Query: "INSERT INTO DPR_REQUEST (ORGANIZATION_ID, FIRST_NAME, LAST_NAME, EMAIL, PHONE, REQUEST_TYPE, " +
			"REQUEST_COMMENTS, STATUS_ID, ASSIGNED_TO_USER_ID, CREATED_AT, LAST_UPDATED_AT, COMPLETION_DATE) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryGetRequestByID = dbmodel.DBQuery{
		ID:    "GET_REQUEST_BY_ID",
		Query: "SELECT " + requestColumns + " FROM DPR_REQUEST WHERE REQUEST_ID = ?",
	}

	// Row-locked read used inside lifecycle update transactions.
	QueryGetRequestByIDForUpdate = dbmodel.DBQuery{
		ID:    "GET_REQUEST_BY_ID_FOR_UPDATE",
		Query: "SELECT " + requestColumns + " FROM DPR_REQUEST WHERE REQUEST_ID = ? FOR UPDATE",
	}

	QueryUpdateRequestLifecycle = dbmodel.DBQuery{
		ID: "UPDATE_REQUEST_LIFECYCLE",
		Query: "UPDATE DPR_REQUEST SET STATUS_ID = ?, ASSIGNED_TO_USER_ID = ?, LAST_UPDATED_AT = ?, " +
			"COMPLETION_DATE = ?, COMPLETED_ON_TIME = ?, CLOSED_DATE_TIME = ?, CLOSURE_COMMENTS = ? " +
			"WHERE REQUEST_ID = ?",
	}

	QueryAppendRequestHistory = dbmodel.DBQuery{
		ID: "APPEND_REQUEST_HISTORY",
		Query: "INSERT INTO DPR_REQUEST_HISTORY (REQUEST_ID, CHANGE_DATE, CHANGED_BY_USER_ID, OLD_STATUS_ID, " +
			"NEW_STATUS_ID, OLD_ASSIGNED_TO_USER_ID, NEW_ASSIGNED_TO_USER_ID, COMMENTS) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	}

	QueryGetRequestHistory = dbmodel.DBQuery{
		ID: "GET_REQUEST_HISTORY",
		Query: "SELECT H.HISTORY_ID, H.REQUEST_ID, H.CHANGE_DATE, H.CHANGED_BY_USER_ID, " +
			"CONCAT_WS(' ', CB.FIRST_NAME, CB.LAST_NAME) AS CHANGED_BY_NAME, " +
			"H.OLD_STATUS_ID, OS.STATUS_NAME AS OLD_STATUS_NAME, " +
			"H.NEW_STATUS_ID, NS.STATUS_NAME AS NEW_STATUS_NAME, " +
			"H.OLD_ASSIGNED_TO_USER_ID, CONCAT_WS(' ', OA.FIRST_NAME, OA.LAST_NAME) AS OLD_ASSIGNEE_NAME, " +
			"H.NEW_ASSIGNED_TO_USER_ID, CONCAT_WS(' ', NA.FIRST_NAME, NA.LAST_NAME) AS NEW_ASSIGNEE_NAME, " +
			"H.COMMENTS " +
			"FROM DPR_REQUEST_HISTORY H " +
			"LEFT JOIN PORTAL_USER CB ON CB.USER_ID = H.CHANGED_BY_USER_ID " +
			"LEFT JOIN DPR_STATUS OS ON OS.STATUS_ID = H.OLD_STATUS_ID " +
			"LEFT JOIN DPR_STATUS NS ON NS.STATUS_ID = H.NEW_STATUS_ID " +
			"LEFT JOIN PORTAL_USER OA ON OA.USER_ID = H.OLD_ASSIGNED_TO_USER_ID " +
			"LEFT JOIN PORTAL_USER NA ON NA.USER_ID = H.NEW_ASSIGNED_TO_USER_ID " +
			"WHERE H.REQUEST_ID = ? " +
			"ORDER BY H.CHANGE_DATE DESC, H.HISTORY_ID DESC",
	}
)

// RequestStore defines the interface for request data operations
type RequestStore interface {
	Create(tx dbmodel.TxInterface, request *model.DPRequest) error
	GetByID(ctx context.Context, requestID int64) (*model.DPRequest, error)
	GetByIDForUpdate(tx dbmodel.TxInterface, requestID int64) (*model.DPRequest, error)
	UpdateLifecycle(tx dbmodel.TxInterface, request *model.DPRequest) error
	AppendHistory(tx dbmodel.TxInterface, entry *model.HistoryEntry) error
	GetHistory(ctx context.Context, requestID int64) ([]model.HistoryEntry, error)
	Search(ctx context.Context, organizationID int64, filters model.SearchFilters) ([]model.DPRequest, int, error)
	ListOpenPastDue(ctx context.Context, excludeStatusIDs []int64) ([]model.DPRequest, error)
}

// store implements RequestStore
type store struct {
	dbClient provider.DBClientInterface
}

// NewRequestStore creates a new request store
func NewRequestStore(dbClient provider.DBClientInterface) RequestStore {
	return &store{
		dbClient: dbClient,
	}
}

// Create inserts a new request and populates its generated ID
func (s *store) Create(tx dbmodel.TxInterface, request *model.DPRequest) error {
	result, err := tx.Exec(QueryCreateRequest.Query,
		request.OrganizationID,
		request.FirstName,
		request.LastName,
		request.Email,
		request.Phone,
		request.RequestType,
		request.RequestComments,
		request.StatusID,
		request.AssignedToUserID,
		request.CreatedAt,
		request.LastUpdatedAt,
		request.CompletionDate,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	request.RequestID = id
	return nil
}

// GetByID retrieves a request by ID
func (s *store) GetByID(ctx context.Context, requestID int64) (*model.DPRequest, error) {
	results, err := s.dbClient.Query(QueryGetRequestByID, requestID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("request %w", dbutils.ErrNotFound)
	}
	return mapToRequest(results[0]), nil
}

// GetByIDForUpdate retrieves a request under a row lock within the given
// transaction, serializing concurrent lifecycle updates on the same row.
func (s *store) GetByIDForUpdate(tx dbmodel.TxInterface, requestID int64) (*model.DPRequest, error) {
	rows, err := tx.Query(QueryGetRequestByIDForUpdate.Query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("request %w", dbutils.ErrNotFound)
	}
	return scanRequest(rows)
}

// UpdateLifecycle persists the lifecycle fields of a request
func (s *store) UpdateLifecycle(tx dbmodel.TxInterface, request *model.DPRequest) error {
	_, err := tx.Exec(QueryUpdateRequestLifecycle.Query,
		request.StatusID,
		request.AssignedToUserID,
		request.LastUpdatedAt,
		request.CompletionDate,
		request.CompletedOnTime,
		request.ClosedDateTime,
		request.ClosureComments,
		request.RequestID,
	)
	return err
}

// AppendHistory appends an audit entry for a request
func (s *store) AppendHistory(tx dbmodel.TxInterface, entry *model.HistoryEntry) error {
	_, err := tx.Exec(QueryAppendRequestHistory.Query,
		entry.RequestID,
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

// GetHistory retrieves the enriched audit trail of a request, newest first
func (s *store) GetHistory(ctx context.Context, requestID int64) ([]model.HistoryEntry, error) {
	results, err := s.dbClient.Query(QueryGetRequestHistory, requestID)
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(results))
	for _, row := range results {
		entries = append(entries, *mapToHistoryEntry(row))
	}
	return entries, nil
}

// Search retrieves a filtered page of an organization's requests along with
// the total match count.
func (s *store) Search(ctx context.Context, organizationID int64, filters model.SearchFilters) ([]model.DPRequest, int, error) {
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
	if filters.RequestType != "" {
		conditions = append(conditions, "REQUEST_TYPE = ?")
		args = append(args, filters.RequestType)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := dbmodel.DBQuery{
		ID:    "COUNT_REQUESTS",
		Query: "SELECT COUNT(*) as count FROM DPR_REQUEST" + where,
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
		ID: "SEARCH_REQUESTS",
		Query: dbutils.BuildPaginationQuery(
			"SELECT "+requestColumns+" FROM DPR_REQUEST"+where+" ORDER BY CREATED_AT DESC, REQUEST_ID DESC",
			filters.Limit, filters.Offset,
		),
	}
	results, err := s.dbClient.Query(listQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	requests := make([]model.DPRequest, 0, len(results))
	for _, row := range results {
		requests = append(requests, *mapToRequest(row))
	}
	return requests, total, nil
}

// ListOpenPastDue retrieves requests whose due date has passed and whose
// status is none of the excluded (terminal or already-escalated) statuses.
func (s *store) ListOpenPastDue(ctx context.Context, excludeStatusIDs []int64) ([]model.DPRequest, error) {
	query := "SELECT " + requestColumns + " FROM DPR_REQUEST " +
		"WHERE COMPLETION_DATE IS NOT NULL AND COMPLETION_DATE < NOW() AND CLOSED_DATE_TIME IS NULL"
	var args []interface{}
	if len(excludeStatusIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(excludeStatusIDs)), ", ")
		query += " AND STATUS_ID NOT IN (" + placeholders + ")"
		for _, id := range excludeStatusIDs {
			args = append(args, id)
		}
	}

	results, err := s.dbClient.Query(dbmodel.DBQuery{ID: "LIST_REQUESTS_PAST_DUE", Query: query}, args...)
	if err != nil {
		return nil, err
	}

	requests := make([]model.DPRequest, 0, len(results))
	for _, row := range results {
		requests = append(requests, *mapToRequest(row))
	}
	return requests, nil
}

// mapToRequest converts a database row map to DPRequest
func mapToRequest(row map[string]interface{}) *model.DPRequest {
	return &model.DPRequest{
		RequestID:        dbutils.ToInt64(row["REQUEST_ID"]),
		OrganizationID:   dbutils.ToInt64(row["ORGANIZATION_ID"]),
		FirstName:        dbutils.ToString(row["FIRST_NAME"]),
		LastName:         dbutils.ToString(row["LAST_NAME"]),
		Email:            dbutils.ToString(row["EMAIL"]),
		Phone:            dbutils.ToString(row["PHONE"]),
		RequestType:      dbutils.ToString(row["REQUEST_TYPE"]),
		RequestComments:  dbutils.ToString(row["REQUEST_COMMENTS"]),
		StatusID:         dbutils.ToInt64(row["STATUS_ID"]),
		AssignedToUserID: dbutils.ToNullableInt64(row["ASSIGNED_TO_USER_ID"]),
		CreatedAt:        dbutils.ToTime(row["CREATED_AT"]),
		LastUpdatedAt:    dbutils.ToTime(row["LAST_UPDATED_AT"]),
		CompletionDate:   dbutils.ToNullableTime(row["COMPLETION_DATE"]),
		CompletedOnTime:  dbutils.ToNullableBool(row["COMPLETED_ON_TIME"]),
		ClosedDateTime:   dbutils.ToNullableTime(row["CLOSED_DATE_TIME"]),
		ClosureComments:  dbutils.ToNullableString(row["CLOSURE_COMMENTS"]),
	}
}

// mapToHistoryEntry converts an enriched history row to HistoryEntry
func mapToHistoryEntry(row map[string]interface{}) *model.HistoryEntry {
	entry := &model.HistoryEntry{
		HistoryID:           dbutils.ToInt64(row["HISTORY_ID"]),
		RequestID:           dbutils.ToInt64(row["REQUEST_ID"]),
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
	return entry
}

// scanRequest scans a raw row from a locked read into a DPRequest
func scanRequest(rows *sql.Rows) (*model.DPRequest, error) {
	var request model.DPRequest
	var phone, requestComments, closureComments sql.NullString
	var assignedTo sql.NullInt64
	var completionDate, closedDateTime sql.NullTime
	var completedOnTime sql.NullBool

	err := rows.Scan(
		&request.RequestID,
		&request.OrganizationID,
		&request.FirstName,
		&request.LastName,
		&request.Email,
		&phone,
		&request.RequestType,
		&requestComments,
		&request.StatusID,
		&assignedTo,
		&request.CreatedAt,
		&request.LastUpdatedAt,
		&completionDate,
		&completedOnTime,
		&closedDateTime,
		&closureComments,
	)
	if err != nil {
		return nil, err
	}

	request.Phone = phone.String
	request.RequestComments = requestComments.String
	if assignedTo.Valid {
		request.AssignedToUserID = &assignedTo.Int64
	}
	if completionDate.Valid {
		request.CompletionDate = &completionDate.Time
	}
	if completedOnTime.Valid {
		request.CompletedOnTime = &completedOnTime.Bool
	}
	if closedDateTime.Valid {
		request.ClosedDateTime = &closedDateTime.Time
	}
	if closureComments.Valid {
		request.ClosureComments = &closureComments.String
	}
	return &request, nil
}
