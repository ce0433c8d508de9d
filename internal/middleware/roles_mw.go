package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"jewelry_store/internal/config"
	"jewelry_store/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware lets a request through only when the token's role is one of
// allowedRoles. It must run after JWTAuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	logger := config.GetLogger()
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			deny(c, logger, http.StatusForbidden, "Role not found in token, ensure JWT middleware runs first", nil)
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			deny(c, logger, http.StatusForbidden, "Invalid role type in token", fmt.Errorf("role has type %T", roleVal))
			return
		}

		if !slices.Contains(allowedRoles, userRole) {
			deny(c, logger, http.StatusForbidden, "You do not have permission to access this resource",
				fmt.Errorf("role %q not in %v", userRole, allowedRoles))
			return
		}
		c.Next()
	}
}

// AdminMiddleware restricts a route to admins: rate writes, reports, user management.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// StaffMiddleware lets any shop account through, admins included
func StaffMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleStaff, model.RoleAdmin)
}
