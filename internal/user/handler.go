package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/middleware"
	"github.com/complyark/dpdpa-portal/internal/system/utils"
	"github.com/complyark/dpdpa-portal/internal/user/model"
)

type userHandler struct {
	service UserServiceInterface
}

func newUserHandler(service UserServiceInterface) *userHandler {
	return &userHandler{
		service: service,
	}
}

// handleCreate handles POST /users
func (h *userHandler) handleCreate(c *gin.Context) {
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

	user, svcErr := h.service.CreateUser(c.Request.Context(), actor, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// handleGet handles GET /users/{userId}
func (h *userHandler) handleGet(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID, ok := utils.ParseIDParam(c, "userId")
	if !ok {
		utils.SendBadRequest(c, "invalid user ID")
		return
	}

	user, svcErr := h.service.GetUser(c.Request.Context(), actor, userID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}

// handleList handles GET /users?organizationId=N. Without the parameter
// the actor's own organization is listed.
func (h *userHandler) handleList(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	organizationID := actor.OrganizationID
	if v := c.Query("organizationId"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			utils.SendBadRequest(c, "invalid organization ID")
			return
		}
		organizationID = parsed
	}

	response, svcErr := h.service.ListUsers(c.Request.Context(), actor, organizationID)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleUpdate handles PUT /users/{userId}
func (h *userHandler) handleUpdate(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	userID, ok := utils.ParseIDParam(c, "userId")
	if !ok {
		utils.SendBadRequest(c, "invalid user ID")
		return
	}

	var request model.UpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	user, svcErr := h.service.UpdateUser(c.Request.Context(), actor, userID, &request)
	if svcErr != nil {
		utils.SendServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, user)
}
