package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

// WebSocketAuthMiddleware reads the token from ?token= since browsers cannot set headers on upgrade.
func WebSocketAuthMiddleware(blacklist *utils.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("No token provided, authorization denied"))
			c.Abort()
			return
		}
		if !authenticate(c, token, blacklist) {
			return
		}
		c.Next()
	}
}
