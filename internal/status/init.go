package status

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the status catalog module and registers routes
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry) StatusServiceInterface {
	registry.Status = NewStatusStore(registry.DBClient())

	service := newStatusService(registry)
	handler := newStatusHandler(service)

	registerRoutes(rg, handler)

	return service
}

// registerRoutes registers all status catalog HTTP routes
func registerRoutes(rg *gin.RouterGroup, handler *statusHandler) {
	rg.GET("/request-statuses", handler.handleList)
	rg.GET("/request-statuses/:statusId", handler.handleGet)
	rg.POST("/request-statuses", handler.handleCreate)
	rg.PUT("/request-statuses/:statusId", handler.handleUpdate)
	rg.DELETE("/request-statuses/:statusId", handler.handleDelete)
}
