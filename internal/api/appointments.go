package api

import (
	"errors"   // Joined field checks
	"net/http" // HTTP status codes
	"time"     // Scheduled day

	"vet_clinic/internal/domain"     // Entity model
	"vet_clinic/internal/middleware" // Verified identity
	"vet_clinic/internal/response"   // Envelope helpers
	"vet_clinic/internal/store"      // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const msgAppointmentNotFound = "Appointment not found"

// CreateAppointmentRequest is the body of POST /appointments
type CreateAppointmentRequest struct {
	ClientID   *uint   `json:"client_id" binding:"required"`
	PetID      *uint   `json:"pet_id" binding:"required"`
	ServiceID  *uint   `json:"service_id" binding:"required"`
	VetID      *uint   `json:"vet_id"`
	Date       string  `json:"date" binding:"required,notblank"`
	Time       string  `json:"time" binding:"required,notblank"`
	Status     string  `json:"status"`
	DropOff    bool    `json:"drop_off"`
	PickupCode *string `json:"pickup_code" binding:"omitempty,max=20"`
}

// UpdateAppointmentRequest is the body of PUT /appointments/:id. vet_id and
// pickup_code may be cleared with null.
type UpdateAppointmentRequest struct {
	Date       domain.Optional[string] `json:"date"`
	Time       domain.Optional[string] `json:"time"`
	Status     domain.Optional[string] `json:"status"`
	VetID      domain.Optional[uint]   `json:"vet_id"`
	DropOff    domain.Optional[bool]   `json:"drop_off"`
	PickupCode domain.Optional[string] `json:"pickup_code"`
	Collected  domain.Optional[bool]   `json:"collected"`
}

func (r UpdateAppointmentRequest) patch() (store.AppointmentPatch, error) {
	if err := errors.Join(
		notEmpty("date", r.Date),
		notEmpty("time", r.Time),
		notEmpty("status", r.Status),
		notNull("drop_off", r.DropOff),
		notNull("collected", r.Collected),
	); err != nil {
		return store.AppointmentPatch{}, firstError(err)
	}
	p := store.AppointmentPatch{
		Status:     trimmed(r.Status),
		VetID:      r.VetID,
		DropOff:    r.DropOff,
		PickupCode: trimmed(r.PickupCode),
		Collected:  r.Collected,
	}
	if r.Date.HasValue() {
		d, err := parseDate(r.Date.Value)
		if err != nil {
			return store.AppointmentPatch{}, err
		}
		p.Date = domain.Some(d)
	}
	if r.Time.HasValue() {
		t, err := parseClock(r.Time.Value)
		if err != nil {
			return store.AppointmentPatch{}, err
		}
		p.Time = domain.Some(t)
	}
	if p.PickupCode.HasValue() && blankToNil(&p.PickupCode.Value) == nil {
		p.PickupCode = domain.Null[string]()
	}
	return p, nil
}

func appointmentView(a *domain.Appointment) domain.AppointmentView { return a.View() }

func listAppointments(c *gin.Context, s *store.Store, f store.AppointmentFilter) {
	appointments, err := s.ListAppointments(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "")
		return
	}
	response.OK(c, http.StatusOK, "Appointments retrieved", views(appointments, appointmentView))
}

// ListAppointmentsHandler lists every appointment
func ListAppointmentsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		listAppointments(c, s, store.AppointmentFilter{})
	}
}

// VetAppointmentsHandler lists the appointments assigned to the vet in the path
func VetAppointmentsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		listAppointments(c, s, store.AppointmentFilter{VetID: &id})
	}
}

// MyAppointmentsHandler lists the caller's appointments. The vet id comes
// from the verified token only.
func MyAppointmentsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.UserID(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		listAppointments(c, s, store.AppointmentFilter{VetID: &id})
	}
}

// GetAppointmentHandler fetches one appointment with its related records
func GetAppointmentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		appointment, err := s.GetAppointment(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, msgAppointmentNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Appointment retrieved", appointment.View())
	}
}

// CreateAppointmentHandler schedules an appointment
func CreateAppointmentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAppointmentRequest
		if !bindJSON(c, &req) {
			return
		}
		var day time.Time
		var clock string
		var err error
		if day, err = parseDate(req.Date); err != nil {
			respondError(c, err, "")
			return
		}
		if clock, err = parseClock(req.Time); err != nil {
			respondError(c, err, "")
			return
		}
		appointment, err := s.CreateAppointment(c.Request.Context(), store.NewAppointment{
			ClientID:   *req.ClientID,
			PetID:      *req.PetID,
			ServiceID:  *req.ServiceID,
			VetID:      req.VetID,
			Date:       day,
			Time:       clock,
			Status:     req.Status,
			DropOff:    req.DropOff,
			PickupCode: blankToNil(req.PickupCode),
		})
		if err != nil {
			respondError(c, err, "")
			return
		}
		logrus.WithFields(logrus.Fields{
			"appointment_id": appointment.ID,
			"pet_id":         appointment.PetID,
			"date":           appointment.Date.Format(domain.DateLayout),
		}).Info("Appointment created")
		response.OK(c, http.StatusCreated, "Appointment created", appointment.View())
	}
}

// UpdateAppointmentHandler applies a partial update. Malformed values are
// rejected before anything is written.
func UpdateAppointmentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UpdateAppointmentRequest
		if !bindJSON(c, &req) {
			return
		}
		patch, err := req.patch()
		if err != nil {
			respondError(c, err, "")
			return
		}
		appointment, err := s.UpdateAppointment(c.Request.Context(), id, patch)
		if err != nil {
			respondError(c, err, msgAppointmentNotFound)
			return
		}
		response.OK(c, http.StatusOK, "Appointment updated", appointment.View())
	}
}

// DeleteAppointmentHandler removes an appointment
func DeleteAppointmentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := s.DeleteAppointment(c.Request.Context(), id); err != nil {
			respondError(c, err, msgAppointmentNotFound)
			return
		}
		logrus.WithField("appointment_id", id).Info("Appointment deleted")
		response.OK(c, http.StatusOK, "Appointment deleted", nil)
	}
}
