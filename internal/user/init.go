package user

import (
	"github.com/gin-gonic/gin"

	"github.com/complyark/dpdpa-portal/internal/system/stores"
)

// Initialize sets up the staff user module and registers routes
func Initialize(rg *gin.RouterGroup, registry *stores.StoreRegistry) UserServiceInterface {
	registry.User = NewUserStore(registry.DBClient())

	service := newUserService(registry)
	handler := newUserHandler(service)

	rg.POST("/users", handler.handleCreate)
	rg.GET("/users", handler.handleList)
	rg.GET("/users/:userId", handler.handleGet)
	rg.PUT("/users/:userId", handler.handleUpdate)

	return service
}
