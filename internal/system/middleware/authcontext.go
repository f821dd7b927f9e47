package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/authn"
	"github.com/complyark/dpdpa-portal/internal/system/constants"
	"github.com/complyark/dpdpa-portal/internal/system/error/apierror"
)

// AuthContextMiddleware builds the caller identity from trusted gateway
// headers and stores it in the request context. Requests without a caller
// identity are rejected; public routes must not mount this middleware.
func AuthContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader(constants.UserIDHeaderName), 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.NewErrorResponse("unauthorized", "Caller identity is missing or invalid"))
			return
		}

		orgID, err := strconv.ParseInt(c.GetHeader(constants.OrgIDHeaderName), 10, 64)
		if err != nil || orgID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.NewErrorResponse("unauthorized", "Caller organization is missing or invalid"))
			return
		}

		role := c.GetHeader(constants.UserRoleHeaderName)
		switch role {
		case authn.RoleSuperAdmin, authn.RoleAdmin, authn.RoleUser:
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.NewErrorResponse("unauthorized", "Caller role is missing or invalid"))
			return
		}

		c.Set(constants.ContextKeyActor, authn.Actor{
			UserID:         userID,
			OrganizationID: orgID,
			Role:           role,
		})
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor set by AuthContextMiddleware.
func ActorFromContext(c *gin.Context) (authn.Actor, bool) {
	v, ok := c.Get(constants.ContextKeyActor)
	if !ok {
		return authn.Actor{}, false
	}
	actor, ok := v.(authn.Actor)
	return actor, ok
}
