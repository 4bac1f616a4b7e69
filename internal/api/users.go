package api

import (
	"errors"   // Not-found detection
	"fmt"      // Role message
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"vet_clinic/internal/domain"     // Entity model
	"vet_clinic/internal/middleware" // Verified identity
	"vet_clinic/internal/response"   // Envelope helpers
	"vet_clinic/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const msgUserNotFound = "User not found"

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,notblank,max=80"`
	Email    string `json:"email" binding:"required,notblank,email,max=120"`
	Role     string `json:"role" binding:"required,notblank"`
	Password string `json:"password" binding:"required,notblank"`
}

// ChangePasswordRequest is the body of PUT /users/:id/password
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,notblank"`
}

func userView(u *domain.User) domain.UserView { return u.View() }

// ListUsersHandler lists users, optionally filtered by ?role=
func ListUsersHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.ListUsers(c.Request.Context(), strings.TrimSpace(c.Query("role")))
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Users retrieved", views(users, userView))
	}
}

// GetUserHandler fetches one user
func GetUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		user, err := s.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		response.OK(c, http.StatusOK, "User retrieved", user.View())
	}
}

// CreateUserHandler creates a staff or client account
func CreateUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if !bindJSON(c, &req) {
			return
		}
		role := strings.ToLower(strings.TrimSpace(req.Role))
		if !domain.ValidRole(role) {
			response.BadRequest(c, fmt.Sprintf("invalid role, expected one of %s, %s, %s, %s",
				domain.RoleAdmin, domain.RoleVet, domain.RoleReceptionist, domain.RoleClient))
			return
		}
		user, err := s.CreateUser(c.Request.Context(), store.NewUser{
			Username: strings.TrimSpace(req.Username),
			Email:    strings.TrimSpace(req.Email),
			Role:     role,
			Password: req.Password,
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User created")
		response.OK(c, http.StatusCreated, "User created", user.View())
	}
}

// DeleteUserHandler removes a user
func DeleteUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeleteUser(c.Request.Context(), id); err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		logrus.WithField("user_id", id).Info("User deleted")
		response.OK(c, http.StatusOK, "User deleted", nil)
	}
}

// ChangePasswordHandler lets a user change their own password and an admin
// change anyone's
func ChangePasswordHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		callerID, ok := middleware.UserID(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if callerID != id {
			caller, err := s.GetUser(c.Request.Context(), callerID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				respondError(c, err, "")
				return
			}
			if caller == nil || caller.Role != domain.RoleAdmin {
				response.Fail(c, http.StatusForbidden, "You can only change your own password")
				return
			}
		}
		var req ChangePasswordRequest
		if !bindJSON(c, &req) {
			return
		}
		if _, err := s.ChangePassword(c.Request.Context(), id, req.NewPassword); err != nil {
			respondError(c, err, msgUserNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": id, "by": callerID}).Info("Password changed")
		response.OK(c, http.StatusOK, "Password updated", nil)
	}
}
