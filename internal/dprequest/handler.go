package dprequest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/dprequest/model"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

// requestHandler handles HTTP requests for data principal requests
type requestHandler struct {
	service RequestServiceInterface
}

func newRequestHandler(service RequestServiceInterface) *requestHandler {
	return &requestHandler{
		service: service,
	}
}

// handleSubmitPublic handles POST /public/request-pages/{pageToken}/requests.
// This endpoint is unauthenticated; the page token scopes the submission.
func (h *requestHandler) handleSubmitPublic(c *gin.Context) {
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
		"requestId":      created.RequestID,
		"requestType":    created.RequestType,
		"completionDate": created.CompletionDate,
	})
}

// handleCreate handles POST /requests
func (h *requestHandler) handleCreate(c *gin.Context) {
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

	created, svcErr := h.service.CreateRequest(c.Request.Context(), actor, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// handleGet handles GET /requests/{requestId}
func (h *requestHandler) handleGet(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	requestID, ok := utils.ParseIDParam(c, "requestId")
	if !ok {
		utils.SendBadRequest(c, "invalid request ID")
		return
	}

	entity, svcErr := h.service.GetRequest(c.Request.Context(), actor, requestID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// handleList handles GET /requests
func (h *requestHandler) handleList(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	filters, ok := parseSearchFilters(c)
	if !ok {
		return
	}

	response, svcErr := h.service.ListRequests(c.Request.Context(), actor, 0, filters)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleListByOrganization handles GET /organizations/{organizationId}/requests
func (h *requestHandler) handleListByOrganization(c *gin.Context) {
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

	response, svcErr := h.service.ListRequests(c.Request.Context(), actor, organizationID, filters)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleUpdate handles PATCH /requests/{requestId}
func (h *requestHandler) handleUpdate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	requestID, ok := utils.ParseIDParam(c, "requestId")
	if !ok {
		utils.SendBadRequest(c, "invalid request ID")
		return
	}

	var request model.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	entity, svcErr := h.service.ApplyChange(c.Request.Context(), actor, requestID, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, entity)
}

// handleHistory handles GET /requests/{requestId}/history
func (h *requestHandler) handleHistory(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	requestID, ok := utils.ParseIDParam(c, "requestId")
	if !ok {
		utils.SendBadRequest(c, "invalid request ID")
		return
	}

	response, svcErr := h.service.GetHistory(c.Request.Context(), actor, requestID)
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
	filters.RequestType = c.Query("requestType")

	return filters, true
}
