package dprequest

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/notification"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the request module and registers both the staff and
// the public submission routes.
func Initialize(
	rg *gin.RouterGroup,
	publicRg *gin.RouterGroup,
	registry *stores.StoreRegistry,
	notificationService notification.NotificationServiceInterface,
	lifecycleCfg *config.LifecycleConfig,
) RequestServiceInterface {
	registry.Request = NewRequestStore(registry.DBClient())

	service := newRequestService(registry, notificationService, lifecycleCfg)
	handler := newRequestHandler(service)

	rg.POST("/requests", handler.handleCreate)
	rg.GET("/requests", handler.handleList)
	rg.GET("/organizations/:organizationId/requests", handler.handleListByOrganization)
	rg.GET("/requests/:requestId", handler.handleGet)
	rg.PATCH("/requests/:requestId", handler.handleUpdate)
	rg.GET("/requests/:requestId/history", handler.handleHistory)

	publicRg.POST("/request-pages/:pageToken/requests", handler.handleSubmitPublic)

	return service
}
