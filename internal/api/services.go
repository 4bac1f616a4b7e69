package api

import (
	"errors"   // Joined field checks
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"vet_clinic/internal/domain"   // Entity model
	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const msgServiceNotFound = "Service not found"

// CreateServiceRequest is the body of POST /services
type CreateServiceRequest struct {
	Name          string   `json:"name" binding:"required,notblank"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"required,min=0"`
	AttentionType string   `json:"attention_type" binding:"required,notblank"`
}

// UpdateServiceRequest is the body of PUT /services/:id. Description may be
// cleared with null.
type UpdateServiceRequest struct {
	Name          domain.Optional[string]  `json:"name"`
	Description   domain.Optional[string]  `json:"description"`
	Price         domain.Optional[float64] `json:"price"`
	AttentionType domain.Optional[string]  `json:"attention_type"`
}

func (r UpdateServiceRequest) patch() (store.ServicePatch, error) {
	if err := errors.Join(
		notEmpty("name", r.Name),
		notNull("price", r.Price),
		notEmpty("attention_type", r.AttentionType),
	); err != nil {
		return store.ServicePatch{}, firstError(err)
	}
	if r.Price.HasValue() && r.Price.Value < 0 {
		return store.ServicePatch{}, validationError("field 'price' must be at least 0")
	}
	return store.ServicePatch{
		Name:          trimmed(r.Name),
		Description:   r.Description,
		Price:         r.Price,
		AttentionType: trimmed(r.AttentionType),
	}, nil
}

func serviceView(sv *domain.Service) domain.ServiceView { return sv.View() }

// ListServicesHandler lists services newest first
func ListServicesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		services, err := s.ListServices(c.Request.Context())
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Services retrieved", views(services, serviceView))
	}
}

// GetServiceHandler fetches one service
func GetServiceHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		service, err := s.GetService(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, msgServiceNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Service retrieved", service.View())
	}
}

// CreateServiceHandler adds a billable service
func CreateServiceHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateServiceRequest
		if !bindJSON(c, &req) {
			return
		}
		service, err := s.CreateService(c.Request.Context(), store.NewService{
			Name:          strings.TrimSpace(req.Name),
			Description:   blankToNil(req.Description),
			Price:         *req.Price,
			AttentionType: strings.TrimSpace(req.AttentionType),
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithField("service_id", service.ID).Info("Service created")
		response.OK(c, http.StatusCreated, "Service created", service.View())
	}
}

// UpdateServiceHandler applies a partial update
func UpdateServiceHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateServiceRequest
		if !bindJSON(c, &req) {
			return
		}
		patch, err := req.patch()
		if err != nil {
			respondError(c, err, "")
			return
		}
		service, err := s.UpdateService(c.Request.Context(), id, patch)
		if err != nil {
			respondError(c, err, msgServiceNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Service updated", service.View())
	}
}

// DeleteServiceHandler removes a service no appointment references
func DeleteServiceHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeleteService(c.Request.Context(), id); err != nil {
			respondError(c, err, msgServiceNotFound)
			return
		}
		logrus.WithField("service_id", id).Info("Service deleted")
		response.OK(c, http.StatusOK, "Service deleted", nil)
	}
}
