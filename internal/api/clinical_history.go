package api

import (
	"net/http" // HTTP status codes
	"strings"  // Input trimming

	"vet_clinic/internal/domain"     // Entity model
	"vet_clinic/internal/middleware" // Verified identity
	"vet_clinic/internal/response"   // Envelope helpers
	"vet_clinic/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const msgHistoryNotFound = "Clinical history entry not found"

// CreateClinicalHistoryRequest is the body of POST /clinical-history. The
// authoring vet is the caller.
type CreateClinicalHistoryRequest struct {
	PetID         *uint  `json:"pet_id" binding:"required"`
	Observation   string `json:"observation" binding:"required,notblank"`
	AppointmentID *uint  `json:"appointment_id"`
}

// UpdateClinicalHistoryRequest is the body of PUT /clinical-history/:id
type UpdateClinicalHistoryRequest struct {
	Observation domain.Optional[string] `json:"observation"`
}

func historyView(h *domain.ClinicalHistory) domain.ClinicalHistoryView { return h.View() }

// ListClinicalHistoryHandler lists entries, optionally filtered by
// ?appointment_id= and ?pet_id=
func ListClinicalHistoryHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		appointmentID, err := queryID(c, "appointment_id")
		if err != nil {
			respondError(c, err, "")
			return
		}
		petID, err := queryID(c, "pet_id")
		if err != nil {
			respondError(c, err, "")
			return
		}
		history, err := s.ListClinicalHistory(c.Request.Context(), store.ClinicalHistoryFilter{
			AppointmentID: appointmentID,
			PetID:         petID,
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Clinical history retrieved", views(history, historyView))
	}
}

// GetClinicalHistoryHandler fetches one entry
func GetClinicalHistoryHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		h, err := s.GetClinicalHistory(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, msgHistoryNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Clinical history retrieved", h.View())
	}
}

// CreateClinicalHistoryHandler records an observation authored by the caller
func CreateClinicalHistoryHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		vetID, ok := middleware.UserID(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req CreateClinicalHistoryRequest
		if !bindJSON(c, &req) {
			return
		}
		h, err := s.CreateClinicalHistory(c.Request.Context(), store.NewClinicalHistory{
			PetID:         *req.PetID,
			Observation:   strings.TrimSpace(req.Observation),
			AppointmentID: req.AppointmentID,
			VetID:         &vetID,
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithFields(logrus.Fields{"history_id": h.ID, "pet_id": h.PetID, "vet_id": vetID}).Info("Clinical observation added")
		response.OK(c, http.StatusCreated, "Clinical observation added", h.View())
	}
}

// UpdateClinicalHistoryHandler edits the observation text
func UpdateClinicalHistoryHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateClinicalHistoryRequest
		if !bindJSON(c, &req) {
			return
		}
		if err := notEmpty("observation", req.Observation); err != nil {
			respondError(c, err, "")
			return
		}
		var (
			h   *domain.ClinicalHistory
			err error
		)
		if req.Observation.Set {
			h, err = s.UpdateObservation(c.Request.Context(), id, strings.TrimSpace(req.Observation.Value))
		} else {
			h, err = s.GetClinicalHistory(c.Request.Context(), id)
		}
		if err != nil {
			respondError(c, err, msgHistoryNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Clinical history updated", h.View())
	}
}
