package organization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/organization/model"
	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

type organizationHandler struct {
	service OrganizationServiceInterface
}

func newOrganizationHandler(service OrganizationServiceInterface) *organizationHandler {
	return &organizationHandler{
		service: service,
	}
}

// handleCreate handles POST /organizations
func (h *organizationHandler) handleCreate(c *gin.Context) {
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

	org, svcErr := h.service.CreateOrganization(c.Request.Context(), actor, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, org)
}

// handleGet handles GET /organizations/{organizationId}
func (h *organizationHandler) handleGet(c *gin.Context) {
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

	org, svcErr := h.service.GetOrganization(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, org)
}

// handleList handles GET /organizations
func (h *organizationHandler) handleList(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	response, svcErr := h.service.ListOrganizations(c.Request.Context(), actor)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleUpdate handles PUT /organizations/{organizationId}
func (h *organizationHandler) handleUpdate(c *gin.Context) {
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

	var request model.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	org, svcErr := h.service.UpdateOrganization(c.Request.Context(), actor, organizationID, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, org)
}

// handleRotateToken handles POST /organizations/{organizationId}/request-page-token
func (h *organizationHandler) handleRotateToken(c *gin.Context) {
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

	org, svcErr := h.service.RotatePageToken(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, org)
}
