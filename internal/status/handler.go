package status

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/status/model"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// statusHandler handles HTTP requests for the status catalog
type statusHandler struct {
	service StatusServiceInterface
}

// newStatusHandler creates a new status catalog handler
func newStatusHandler(service StatusServiceInterface) *statusHandler {
	return &statusHandler{
		service: service,
	}
}

// handleList handles GET /request-statuses
func (h *statusHandler) handleList(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	response, svcErr := h.service.ListStatuses(c.Request.Context(), includeInactive)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleGet handles GET /request-statuses/{statusId}
func (h *statusHandler) handleGet(c *gin.Context) {
	statusID, ok := utils.ParseIDParam(c, "statusId")
	if !ok {
		utils.SendBadRequest(c, "invalid status ID")
		return
	}

	status, svcErr := h.service.GetStatus(c.Request.Context(), statusID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, status)
}

// handleCreate handles POST /request-statuses
func (h *statusHandler) handleCreate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request model.CreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	status, svcErr := h.service.CreateStatus(c.Request.Context(), actor, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, status)
}

// handleUpdate handles PUT /request-statuses/{statusId}
func (h *statusHandler) handleUpdate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	statusID, ok := utils.ParseIDParam(c, "statusId")
	if !ok {
		utils.SendBadRequest(c, "invalid status ID")
		return
	}

	var request model.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	status, svcErr := h.service.UpdateStatus(c.Request.Context(), actor, statusID, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, status)
}

// handleDelete handles DELETE /request-statuses/{statusId}
func (h *statusHandler) handleDelete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	statusID, ok := utils.ParseIDParam(c, "statusId")
	if !ok {
		utils.SendBadRequest(c, "invalid status ID")
		return
	}

	if svcErr := h.service.DeleteStatus(c.Request.Context(), actor, statusID); svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.Status(http.StatusNoContent)
}
