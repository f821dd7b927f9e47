package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
)

type notificationHandler struct {
	service NotificationServiceInterface
}

func newNotificationHandler(service NotificationServiceInterface) *notificationHandler {
	return &notificationHandler{
		service: service,
	}
}

// handleListTemplates handles GET /email-templates
func (h *notificationHandler) handleListTemplates(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok || !actor.IsAdmin() {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	templates, svcErr := h.service.ListTemplates(c.Request.Context())
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

type updateTemplateRequest struct {
	Subject  string `json:"subject" binding:"required"`
	BodyHTML string `json:"bodyHtml" binding:"required"`
}

// handleUpdateTemplate handles PUT /email-templates/{templateName}
func (h *notificationHandler) handleUpdateTemplate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok || !actor.IsAdmin() {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	name := c.Param("templateName")
	var request updateTemplateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	template, svcErr := h.service.UpdateTemplate(c.Request.Context(), name, request.Subject, request.BodyHTML)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, template)
}
