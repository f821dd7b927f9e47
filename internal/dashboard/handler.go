package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// dashboardHandler handles HTTP requests for the compliance dashboard
type dashboardHandler struct {
	service DashboardServiceInterface
}

func newDashboardHandler(service DashboardServiceInterface) *dashboardHandler {
	return &dashboardHandler{
		service: service,
	}
}

// dashboardScope extracts the caller and the optional organizationId query
// parameter shared by all dashboard endpoints.
func dashboardScope(c *gin.Context) (actor authn.Actor, organizationID int64, ok bool) {
	actor, ok = middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return actor, 0, false
	}

	if v := c.Query("organizationId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			utils.SendBadRequest(c, "invalid organization ID")
			return actor, 0, false
		}
		organizationID = parsed
	}
	return actor, organizationID, true
}

// handleGet handles GET /dashboard. A super administrator may pass
// organizationId to scope the view, or omit it to aggregate across all
// organizations.
func (h *dashboardHandler) handleGet(c *gin.Context) {
	actor, organizationID, ok := dashboardScope(c)
	if !ok {
		return
	}

	view, svcErr := h.service.GetDashboard(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, view)
}

// handleStats handles GET /dashboard/stats.
func (h *dashboardHandler) handleStats(c *gin.Context) {
	actor, organizationID, ok := dashboardScope(c)
	if !ok {
		return
	}

	totals, svcErr := h.service.GetTotals(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, totals)
}

// handleStatusCounts handles GET /dashboard/status-counts.
func (h *dashboardHandler) handleStatusCounts(c *gin.Context) {
	actor, organizationID, ok := dashboardScope(c)
	if !ok {
		return
	}

	distribution, svcErr := h.service.GetStatusDistribution(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"statusCounts": distribution})
}

// handleEscalated handles GET /dashboard/escalated.
func (h *dashboardHandler) handleEscalated(c *gin.Context) {
	actor, organizationID, ok := dashboardScope(c)
	if !ok {
		return
	}

	items, svcErr := h.service.GetEscalated(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"escalated": items})
}

// handleUpcomingDue handles GET /dashboard/upcoming-due.
func (h *dashboardHandler) handleUpcomingDue(c *gin.Context) {
	actor, organizationID, ok := dashboardScope(c)
	if !ok {
		return
	}

	items, svcErr := h.service.GetUpcomingDue(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcomingDue": items})
}
