package api

import (
	"net/http" // HTTP status codes

	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RegisterPaymentRequest is the body of POST /payments
type RegisterPaymentRequest struct {
	AppointmentID *uint    `json:"appointment_id" binding:"required"`
	PaymentMethod *string  `json:"payment_method" binding:"omitempty,max=50"`
	PaymentAmount *float64 `json:"payment_amount" binding:"omitempty,min=0"`
}

// ListPaymentsHandler lists paid appointments
func ListPaymentsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		paid := true
		appointments, err := s.ListAppointments(c.Request.Context(), store.AppointmentFilter{Paid: &paid})
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Payments retrieved", views(appointments, appointmentView))
	}
}

// RegisterPaymentHandler marks an appointment paid. Registering again
// replaces the method and amount and refreshes the payment date.
func RegisterPaymentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterPaymentRequest
		if !bindJSON(c, &req) {
			return
		}
		appointment, err := s.RegisterPayment(c.Request.Context(), *req.AppointmentID, blankToNil(req.PaymentMethod), req.PaymentAmount)
		if err != nil {
			respondError(c, err, msgAppointmentNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{
			"appointment_id": appointment.ID,
			"amount":         appointment.AmountOrZero(),
		}).Info("Payment registered")
		response.OK(c, http.StatusOK, "Payment registered", appointment.View())
	}
}
