package dashboard

import (
	"context"

	"github.com/complyark/dpdpa-portal/internal/dashboard/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

// DashboardStore defines the interface for dashboard aggregate queries.
// An organizationID of 0 aggregates across all organizations.
type DashboardStore interface {
	GetTotals(ctx context.Context, organizationID int64) (*model.Totals, error)
	CountByStatus(ctx context.Context, organizationID int64) ([]model.StatusCount, error)
	ListEscalated(ctx context.Context, organizationID, escalatedStatusID int64) ([]model.WorkItem, error)
	ListUpcomingDue(ctx context.Context, organizationID int64, windowDays int) ([]model.WorkItem, error)
}

// store implements DashboardStore
type store struct {
	dbClient provider.DBClientInterface
}

// NewDashboardStore creates a new dashboard store
func NewDashboardStore(dbClient provider.DBClientInterface) DashboardStore {
	return &store{
		dbClient: dbClient,
	}
}

const workItemSelect = "SELECT REQUEST_ID AS ID, 'request' AS KIND, ORGANIZATION_ID, " +
	"CONCAT_WS(' ', FIRST_NAME, LAST_NAME) AS REQUESTER_NAME, STATUS_ID, ASSIGNED_TO_USER_ID, COMPLETION_DATE " +
	"FROM DPR_REQUEST"

const grievanceItemSelect = "SELECT GRIEVANCE_ID AS ID, 'grievance' AS KIND, ORGANIZATION_ID, " +
	"CONCAT_WS(' ', FIRST_NAME, LAST_NAME) AS REQUESTER_NAME, STATUS_ID, ASSIGNED_TO_USER_ID, COMPLETION_DATE " +
	"FROM DPR_GRIEVANCE"

// GetTotals aggregates request and grievance workload counters
func (s *store) GetTotals(ctx context.Context, organizationID int64) (*model.Totals, error) {
	totals := &model.Totals{}

	for _, target := range []struct {
		table    string
		total    *int64
		open     *int64
		overdue  *int64
		statName string
	}{
		{"DPR_REQUEST", &totals.TotalRequests, &totals.OpenRequests, &totals.OverdueRequests, "REQUEST_TOTALS"},
		{"DPR_GRIEVANCE", &totals.TotalGrievances, &totals.OpenGrievances, &totals.OverdueGrievances, "GRIEVANCE_TOTALS"},
	} {
		query := "SELECT COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN CLOSED_DATE_TIME IS NULL THEN 1 ELSE 0 END), 0) AS open, " +
			"COALESCE(SUM(CASE WHEN CLOSED_DATE_TIME IS NULL AND COMPLETION_DATE < NOW() THEN 1 ELSE 0 END), 0) AS overdue " +
			"FROM " + target.table
		var args []interface{}
		if organizationID > 0 {
			query += " WHERE ORGANIZATION_ID = ?"
			args = append(args, organizationID)
		}

		results, err := s.dbClient.Query(dbmodel.DBQuery{ID: target.statName, Query: query}, args...)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			*target.total = dbutils.ToInt64(results[0]["total"])
			*target.open = dbutils.ToInt64(results[0]["open"])
			*target.overdue = dbutils.ToInt64(results[0]["overdue"])
		}
	}
	return totals, nil
}

// CountByStatus groups open and closed work combined across requests and
// grievances by catalog status.
func (s *store) CountByStatus(ctx context.Context, organizationID int64) ([]model.StatusCount, error) {
	query := "SELECT T.STATUS_ID, S.STATUS_NAME, COUNT(*) AS count FROM " +
		"(SELECT STATUS_ID, ORGANIZATION_ID FROM DPR_REQUEST " +
		"UNION ALL SELECT STATUS_ID, ORGANIZATION_ID FROM DPR_GRIEVANCE) T " +
		"JOIN DPR_STATUS S ON S.STATUS_ID = T.STATUS_ID"
	var args []interface{}
	if organizationID > 0 {
		query += " WHERE T.ORGANIZATION_ID = ?"
		args = append(args, organizationID)
	}
	query += " GROUP BY T.STATUS_ID, S.STATUS_NAME ORDER BY count DESC, T.STATUS_ID"

	results, err := s.dbClient.Query(dbmodel.DBQuery{ID: "COUNT_WORK_BY_STATUS", Query: query}, args...)
	if err != nil {
		return nil, err
	}

	counts := make([]model.StatusCount, 0, len(results))
	for _, row := range results {
		counts = append(counts, model.StatusCount{
			StatusID:   dbutils.ToInt64(row["STATUS_ID"]),
			StatusName: dbutils.ToString(row["STATUS_NAME"]),
			Count:      dbutils.ToInt64(row["count"]),
		})
	}
	return counts, nil
}

// ListEscalated retrieves open escalated work, soonest due first
func (s *store) ListEscalated(ctx context.Context, organizationID, escalatedStatusID int64) ([]model.WorkItem, error) {
	half := func(selectClause string) (string, []interface{}) {
		q := selectClause + " WHERE STATUS_ID = ? AND CLOSED_DATE_TIME IS NULL"
		args := []interface{}{escalatedStatusID}
		if organizationID > 0 {
			q += " AND ORGANIZATION_ID = ?"
			args = append(args, organizationID)
		}
		return q, args
	}

	requestHalf, requestArgs := half(workItemSelect)
	grievanceHalf, grievanceArgs := half(grievanceItemSelect)
	query := requestHalf + " UNION ALL " + grievanceHalf + " ORDER BY COMPLETION_DATE, ID"
	args := append(requestArgs, grievanceArgs...)

	results, err := s.dbClient.Query(dbmodel.DBQuery{ID: "LIST_ESCALATED_WORK", Query: query}, args...)
	if err != nil {
		return nil, err
	}
	return mapToWorkItems(results), nil
}

// ListUpcomingDue retrieves open work whose due date falls within the next
// windowDays days, soonest due first.
func (s *store) ListUpcomingDue(ctx context.Context, organizationID int64, windowDays int) ([]model.WorkItem, error) {
	half := func(selectClause string) (string, []interface{}) {
		q := selectClause + " WHERE CLOSED_DATE_TIME IS NULL AND COMPLETION_DATE >= NOW() " +
			"AND COMPLETION_DATE <= DATE_ADD(NOW(), INTERVAL ? DAY)"
		args := []interface{}{windowDays}
		if organizationID > 0 {
			q += " AND ORGANIZATION_ID = ?"
			args = append(args, organizationID)
		}
		return q, args
	}

	requestHalf, requestArgs := half(workItemSelect)
	grievanceHalf, grievanceArgs := half(grievanceItemSelect)
	query := requestHalf + " UNION ALL " + grievanceHalf + " ORDER BY COMPLETION_DATE, ID"
	args := append(requestArgs, grievanceArgs...)

	results, err := s.dbClient.Query(dbmodel.DBQuery{ID: "LIST_UPCOMING_DUE_WORK", Query: query}, args...)
	if err != nil {
		return nil, err
	}
	return mapToWorkItems(results), nil
}

func mapToWorkItems(results []map[string]interface{}) []model.WorkItem {
	items := make([]model.WorkItem, 0, len(results))
	for _, row := range results {
		items = append(items, model.WorkItem{
			ID:               dbutils.ToInt64(row["ID"]),
			Kind:             dbutils.ToString(row["KIND"]),
			OrganizationID:   dbutils.ToInt64(row["ORGANIZATION_ID"]),
			RequesterName:    dbutils.ToString(row["REQUESTER_NAME"]),
			StatusID:         dbutils.ToInt64(row["STATUS_ID"]),
			AssignedToUserID: dbutils.ToNullableInt64(row["ASSIGNED_TO_USER_ID"]),
			CompletionDate:   dbutils.ToNullableTime(row["COMPLETION_DATE"]),
		})
	}
	return items
}
