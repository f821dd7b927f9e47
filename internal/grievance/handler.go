package grievance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/grievance/model"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// grievanceHandler handles HTTP requests for grievances
type grievanceHandler struct {
	service GrievanceServiceInterface
}

func newGrievanceHandler(service GrievanceServiceInterface) *grievanceHandler {
	return &grievanceHandler{
		service: service,
	}
}

// handleSubmitPublic handles POST /public/request-pages/{pageToken}/grievances.
// This endpoint is unauthenticated; the page token scopes the submission.
func (h *grievanceHandler) handleSubmitPublic(c *gin.Context) {
	pageToken := c.Param("pageToken")

	var request model.SubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	created, svcErr := h.service.SubmitPublic(c.Request.Context(), pageToken, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}

	// Public callers only learn their reference number, never internal state.
	c.JSON(http.StatusCreated, gin.H{
		"grievanceId":    created.GrievanceID,
		"completionDate": created.CompletionDate,
	})
}

// handleCreate handles POST /grievances
func (h *grievanceHandler) handleCreate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request model.SubmitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	created, svcErr := h.service.CreateGrievance(c.Request.Context(), actor, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// handleGet handles GET /grievances/{grievanceId}
func (h *grievanceHandler) handleGet(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	grievanceID, ok := utils.ParseIDParam(c, "grievanceId")
	if !ok {
		utils.SendBadRequest(c, "invalid grievance ID")
		return
	}

	entity, svcErr := h.service.GetGrievance(c.Request.Context(), actor, grievanceID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// handleList handles GET /grievances
func (h *grievanceHandler) handleList(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filters, ok := parseSearchFilters(c)
	if !ok {
		return
	}

	response, svcErr := h.service.ListGrievances(c.Request.Context(), actor, 0, filters)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleListByOrganization handles GET /organizations/{organizationId}/grievances
func (h *grievanceHandler) handleListByOrganization(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	organizationID, ok := utils.ParseIDParam(c, "organizationId")
	if !ok {
		utils.SendBadRequest(c, "invalid organization ID")
		return
	}

	filters, ok := parseSearchFilters(c)
	if !ok {
		return
	}

	response, svcErr := h.service.ListGrievances(c.Request.Context(), actor, organizationID, filters)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleUpdate handles PATCH /grievances/{grievanceId}
func (h *grievanceHandler) handleUpdate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	grievanceID, ok := utils.ParseIDParam(c, "grievanceId")
	if !ok {
		utils.SendBadRequest(c, "invalid grievance ID")
		return
	}

	var request model.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	entity, svcErr := h.service.ApplyChange(c.Request.Context(), actor, grievanceID, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// handleHistory handles GET /grievances/{grievanceId}/history
func (h *grievanceHandler) handleHistory(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	grievanceID, ok := utils.ParseIDParam(c, "grievanceId")
	if !ok {
		utils.SendBadRequest(c, "invalid grievance ID")
		return
	}

	response, svcErr := h.service.GetHistory(c.Request.Context(), actor, grievanceID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// parseSearchFilters extracts the listing filters from query parameters
func parseSearchFilters(c *gin.Context) (model.SearchFilters, bool) {
	var filters model.SearchFilters
	filters.Limit, filters.Offset = utils.ParsePagination(c)

	if v := c.Query("statusId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			utils.SendBadRequest(c, "invalid status ID filter")
			return filters, false
		}
		filters.StatusID = &parsed
	}
	if v := c.Query("assignedToUserId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			utils.SendBadRequest(c, "invalid assignee filter")
			return filters, false
		}
		filters.AssignedToUserID = &parsed
	}

	return filters, true
}
