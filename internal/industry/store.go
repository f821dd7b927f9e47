package industry

import (
	"context"
	"fmt"

	"github.com/complyark/dpdpa-portal/internal/industry/model"
	dbmodel "github.com/complyark/dpdpa-portal/internal/system/database/model"
	"github.com/complyark/dpdpa-portal/internal/system/database/provider"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
)

// DBQuery objects for industry operations
var (
	QueryGetAllIndustries = dbmodel.DBQuery{
		ID:    "GET_ALL_INDUSTRIES",
		Query: "SELECT INDUSTRY_ID, INDUSTRY_NAME FROM INDUSTRY ORDER BY INDUSTRY_NAME",
	}

	QueryGetIndustryByID = dbmodel.DBQuery{
		ID:    "GET_INDUSTRY_BY_ID",
		Query: "SELECT INDUSTRY_ID, INDUSTRY_NAME FROM INDUSTRY WHERE INDUSTRY_ID = ?",
	}
)

// IndustryStore defines the interface for industry data operations
type IndustryStore interface {
	List(ctx context.Context) ([]model.Industry, error)
	GetByID(ctx context.Context, industryID int64) (*model.Industry, error)
}

type store struct {
	dbClient provider.DBClientInterface
}

// NewIndustryStore creates a new industry store
func NewIndustryStore(dbClient provider.DBClientInterface) IndustryStore {
	return &store{
		dbClient: dbClient,
	}
}

// List retrieves the industry catalog
func (s *store) List(ctx context.Context) ([]model.Industry, error) {
	results, err := s.dbClient.Query(QueryGetAllIndustries)
	if err != nil {
		return nil, err
	}

	industries := make([]model.Industry, 0, len(results))
	for _, row := range results {
		industries = append(industries, *mapToIndustry(row))
	}
	return industries, nil
}

// GetByID retrieves an industry by ID
func (s *store) GetByID(ctx context.Context, industryID int64) (*model.Industry, error) {
	results, err := s.dbClient.Query(QueryGetIndustryByID, industryID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("industry %w", dbutils.ErrNotFound)
	}
	return mapToIndustry(results[0]), nil
}

func mapToIndustry(row map[string]interface{}) *model.Industry {
	return &model.Industry{
		IndustryID:   dbutils.ToInt64(row["INDUSTRY_ID"]),
		IndustryName: dbutils.ToString(row["INDUSTRY_NAME"]),
	}
}
