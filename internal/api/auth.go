package api

import (
	"errors"   // Not-found detection
	"net/http" // HTTP status codes
	"strings"  // Username trimming
	"time"     // Token lifetime

	"vet_clinic/internal/domain"     // Entity model
	"vet_clinic/internal/middleware" // Verified identity
	"vet_clinic/internal/response"   // Envelope helpers
	"vet_clinic/internal/store"      // Persistence
	"vet_clinic/internal/utils"      // JWT and revocation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Username string `json:"username" binding:"required,notblank"` // Username must be provided
	Password string `json:"password" binding:"required,notblank"` // Password must be provided
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	User  domain.UserView `json:"user"`
	Token string          `json:"token"`
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(s *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !bindJSON(c, &req) {
			return
		}
		username := strings.TrimSpace(req.Username)
		user, err := s.GetUserByUsername(c.Request.Context(), username)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondError(c, err, "")
			return
		}
		// unknown user and wrong password answer the same
		if user == nil || !user.CheckPassword(req.Password) {
			logrus.WithField("username", username).Warn("Failed login")
			response.Fail(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret, ttl)
		if err != nil {
			logrus.WithError(err).Error("Failed to sign token")
			response.Internal(c)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User logged in")
		response.OK(c, http.StatusOK, "Login successful", LoginResponse{User: user.View(), Token: token})
	}
}

// LogoutHandler revokes the caller's token until it would have expired
func LogoutHandler(revoker utils.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		jti := c.GetString(middleware.KeyTokenID)
		ttl := time.Until(middleware.TokenExpiry(c))
		if err := revoker.Revoke(c.Request.Context(), jti, ttl); err != nil {
			logrus.WithError(err).Error("Failed to revoke token")
			response.Internal(c)
			return
		}
		userID, _ := middleware.UserID(c)
		logrus.WithField("user_id", userID).Info("User logged out")
		response.OK(c, http.StatusOK, "Logged out", nil)
	}
}
