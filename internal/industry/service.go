package industry

import (
	"context"
	"errors"
	"fmt"

	"github.com/complyark/dpdpa-portal/internal/industry/model"
	dbutils "github.com/complyark/dpdpa-portal/internal/system/database/utils"
	"github.com/complyark/dpdpa-portal/internal/system/error/serviceerror"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// IndustryServiceInterface defines the contract for industry operations
type IndustryServiceInterface interface {
	ListIndustries(ctx context.Context) (*model.ListResponse, *serviceerror.ServiceError)
	GetIndustry(ctx context.Context, industryID int64) (*model.Industry, *serviceerror.ServiceError)
}

type industryService struct {
	stores *stores.StoreRegistry
}

func newIndustryService(registry *stores.StoreRegistry) IndustryServiceInterface {
	return &industryService{
		stores: registry,
	}
}

// ListIndustries returns the industry catalog
func (s *industryService) ListIndustries(ctx context.Context) (*model.ListResponse, *serviceerror.ServiceError) {
	store := s.stores.Industry.(IndustryStore)
	industries, err := store.List(ctx)
	if err != nil {
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to list industries: %v", err),
		)
	}
	return &model.ListResponse{Industries: industries, Total: len(industries)}, nil
}

// GetIndustry retrieves an industry by ID
func (s *industryService) GetIndustry(ctx context.Context, industryID int64) (*model.Industry, *serviceerror.ServiceError) {
	store := s.stores.Industry.(IndustryStore)
	industry, err := store.GetByID(ctx, industryID)
	if err != nil {
		if errors.Is(err, dbutils.ErrNotFound) {
			return nil, serviceerror.CustomServiceError(
				serviceerror.ResourceNotFoundError,
				fmt.Sprintf("industry not found: %d", industryID),
			)
		}
		return nil, serviceerror.CustomServiceError(
			serviceerror.DatabaseError,
			fmt.Sprintf("failed to retrieve industry: %v", err),
		)
	}
	return industry, nil
}
