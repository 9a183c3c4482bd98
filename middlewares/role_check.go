package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/policy"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

// RoleCheck aborts with 403 and message unless allow accepts the caller. Must run after AuthMiddleware.
func RoleCheck(allow func(policy.Identity) bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}
		if !allow(id) {
			utils.RespondError(c, http.StatusForbidden, errors.New(message))
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleCheck(policy.IsAdmin, "Access denied. Admin role required.")
}

func UserOnly() gin.HandlerFunc {
	return RoleCheck(policy.IsUser, "Access denied. User role required.")
}
