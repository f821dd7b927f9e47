package industry

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the industry module and registers routes
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry) IndustryServiceInterface {
	registry.Industry = NewIndustryStore(registry.DBClient())

	service := newIndustryService(registry)
	handler := newIndustryHandler(service)

	rg.GET("/industries", handler.handleList)
	rg.GET("/industries/:industryId", handler.handleGet)

	return service
}
