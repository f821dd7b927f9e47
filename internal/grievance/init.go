package grievance

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/notification"
	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the grievance module and registers both the staff and
// the public submission routes.
func Initialize(
	rg *gin.RouterGroup,
	publicRg *gin.RouterGroup,
	registry *stores.StoreRegistry,
	notificationService notification.NotificationServiceInterface,
	lifecycleCfg *config.LifecycleConfig,
) GrievanceServiceInterface {
	registry.Grievance = NewGrievanceStore(registry.DBClient())

	service := newGrievanceService(registry, notificationService, lifecycleCfg)
	handler := newGrievanceHandler(service)

	rg.POST("/grievances", handler.handleCreate)
	rg.GET("/grievances", handler.handleList)
	rg.GET("/organizations/:organizationId/grievances", handler.handleListByOrganization)
	rg.GET("/grievances/:grievanceId", handler.handleGet)
	rg.PATCH("/grievances/:grievanceId", handler.handleUpdate)
	rg.GET("/grievances/:grievanceId/history", handler.handleHistory)

	publicRg.POST("/request-pages/:pageToken/grievances", handler.handleSubmitPublic)

	return service
}
