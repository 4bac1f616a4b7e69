package api

import (
	"net/http" // HTTP status codes

	"vet_clinic/internal/domain"   // Entity model
	"vet_clinic/internal/response" // Envelope helpers
	"vet_clinic/internal/store"    // Persistence

	"github.com/gin-gonic/gin" // Gin web framework
)

// PaymentsReport is the payload of GET /reports/payments
type PaymentsReport struct {
	TotalPaid float64                  `json:"total_paid"`
	Payments  []domain.AppointmentView `json:"payments"`
}

// PaymentsReportHandler sums payments whose payment_date falls within
// ?start_date= and ?end_date=
func PaymentsReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := queryRange(c)
		if err != nil {
			respondError(c, err, "")
			return
		}
		report, err := s.PaymentsReport(c.Request.Context(), r)
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Payments report", PaymentsReport{
			TotalPaid: report.TotalPaid,
			Payments:  views(report.Payments, appointmentView),
		})
	}
}

// AppointmentsReportHandler lists appointments scheduled within the bounds
func AppointmentsReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := queryRange(c)
		if err != nil {
			respondError(c, err, "")
			return
		}
		appointments, err := s.AppointmentsReport(c.Request.Context(), r)
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Appointments report", views(appointments, appointmentView))
	}
}

// ClinicalHistoryReportHandler lists clinical history of ?pet_id= recorded
// within the bounds
func ClinicalHistoryReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		petID, err := queryID(c, "pet_id")
		if err != nil {
			respondError(c, err, "")
			return
		}
		r, err := queryRange(c)
		if err != nil {
			respondError(c, err, "")
			return
		}
		history, err := s.ClinicalHistoryReport(c.Request.Context(), petID, r)
		if err != nil {
			respondError(c, err, "")
			return
		}
		response.OK(c, http.StatusOK, "Clinical history report", views(history, historyView))
	}
}
