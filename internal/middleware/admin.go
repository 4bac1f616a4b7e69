package middleware

import (
	"context"  // Request-scoped lookups
	"errors"   // Not-found detection
	"net/http" // HTTP status codes

	"vet_clinic/internal/domain"   // User roles
	"vet_clinic/internal/response" // Error envelope
	"vet_clinic/internal/store"    // Store errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// UserGetter loads a user by id
type UserGetter interface {
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

// AdminOnlyMiddleware checks the caller's role in the store on each request,
// so a demoted or deleted admin loses access before their token expires.
func AdminOnlyMiddleware(users UserGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logrus.WithError(err).WithField("user_id", userID).Error("Failed to load caller")
				response.Internal(c)
				return
			}
			response.Fail(c, http.StatusForbidden, "Admin access required")
			return
		}
		if user.Role != domain.RoleAdmin {
			response.Fail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
