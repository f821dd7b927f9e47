package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/config"
	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the dashboard module and registers its route.
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry, lifecycleCfg *config.LifecycleConfig) DashboardServiceInterface {
	registry.Dashboard = NewDashboardStore(registry.DBClient())

	service := newDashboardService(registry, lifecycleCfg)
	handler := newDashboardHandler(service)

	rg.GET("/dashboard", handler.handleGet)
	rg.GET("/dashboard/stats", handler.handleStats)
	rg.GET("/dashboard/status-counts", handler.handleStatusCounts)
	rg.GET("/dashboard/escalated", handler.handleEscalated)
	rg.GET("/dashboard/upcoming-due", handler.handleUpcomingDue)

	return service
}
