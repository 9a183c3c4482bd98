package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/ambatoeat-api/policy"
	"github.com/yeremiapane/ambatoeat-api/utils"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

func AuthMiddleware(blacklist *utils.TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("No token provided, authorization denied"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if !authenticate(c, tokenString, blacklist) {
			return
		}
		c.Next()
	}
}

// authenticate verifies the token and stores the caller in the context. It aborts on failure.
func authenticate(c *gin.Context, tokenString string, blacklist *utils.TokenBlacklist) bool {
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("Token is not valid"))
		c.Abort()
		return false
	}

	if blacklist != nil {
		revoked, err := blacklist.IsRevoked(c.Request.Context(), claims)
		if err != nil {
			utils.RespondServerError(c, err)
			c.Abort()
			return false
		}
		if revoked {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Token has been revoked"))
			c.Abort()
			return false
		}
	}

	c.Set(claimsKey, claims)
	c.Set(identityKey, policy.Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
	return true
}

// GetIdentity returns the caller stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (policy.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return policy.Identity{}, false
	}
	id, ok := v.(policy.Identity)
	return id, ok
}

func GetClaims(c *gin.Context) (*utils.CustomClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.CustomClaims)
	return claims, ok
}
