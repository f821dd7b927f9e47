package organization

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the organization module and registers routes
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry) OrganizationServiceInterface {
	registry.Organization = NewOrganizationStore(registry.DBClient())

	service := newOrganizationService(registry)
	handler := newOrganizationHandler(service)

	rg.POST("/organizations", handler.handleCreate)
	rg.GET("/organizations", handler.handleList)
	rg.GET("/organizations/:organizationId", handler.handleGet)
	rg.PUT("/organizations/:organizationId", handler.handleUpdate)
	rg.POST("/organizations/:organizationId/request-page-token", handler.handleRotateToken)

	return service
}
