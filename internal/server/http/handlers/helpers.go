package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Aviraj0403/restro-back/internal/domain/model"
	"github.com/Aviraj0403/restro-back/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentRole extracts the authenticated role from context.
func CurrentRole(c *gin.Context) model.Role {
	val, ok := c.Get(middleware.UserRoleContextKey)
	if !ok {
		return model.RoleUser
	}
	role, ok := val.(model.Role)
	if !ok {
		return model.RoleUser
	}
	return role
}
