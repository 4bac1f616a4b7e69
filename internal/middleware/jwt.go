package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token expiry

	"vet_clinic/internal/response" // Error envelope
	"vet_clinic/internal/utils"    // JWT and revocation helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Context keys set by JWTAuthMiddleware
const (
	KeyUserID      = "userID"
	KeyRole        = "role"
	KeyTokenID     = "tokenID"
	KeyTokenExpiry = "tokenExpiry"
)

// JWTAuthMiddleware validates bearer tokens and stores the verified identity
// in the context. revoker may be nil when no revocation list is configured.
func JWTAuthMiddleware(secret string, revoker utils.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logrus.WithError(err).Error("Failed to check token revocation")
				response.Internal(c)
				return
			}
			if revoked {
				response.Fail(c, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyTokenID, claims.ID)
		c.Set(KeyTokenExpiry, claims.ExpiresAt.Time)
		c.Next()
	}
}

// UserID returns the verified caller id
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// TokenExpiry returns the expiry of the caller's token
func TokenExpiry(c *gin.Context) time.Time {
	v, _ := c.Get(KeyTokenExpiry)
	t, _ := v.(time.Time)
	return t
}
