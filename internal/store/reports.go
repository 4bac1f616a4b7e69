package store

import (
	"context" // Request-scoped queries

	"vet_clinic/internal/domain" // Entity model
)

// PaymentReport is the total of the included payments and the paid
// appointments it was computed from.
type PaymentReport struct {
	TotalPaid float64
	Payments  []domain.Appointment
}

// PaymentsReport sums the amounts of paid appointments whose payment_date
// falls in r. Appointments without an amount add zero.
func (s *Store) PaymentsReport(ctx context.Context, r Range) (*PaymentReport, error) {
	q := s.appointments(ctx).Where("paid = ?", true).Order("id")
	q = r.apply(q, "payment_date")
	var paid []domain.Appointment
	if err := q.Find(&paid).Error; err != nil {
		return nil, err
	}
	report := &PaymentReport{Payments: paid}
	for i := range paid {
		report.TotalPaid += paid[i].AmountOrZero()
	}
	return report, nil
}

// AppointmentsReport lists appointments scheduled in r.
func (s *Store) AppointmentsReport(ctx context.Context, r Range) ([]domain.Appointment, error) {
	return s.ListAppointments(ctx, AppointmentFilter{Date: r})
}

// ClinicalHistoryReport lists clinical history for petID, when set,
// recorded in r.
func (s *Store) ClinicalHistoryReport(ctx context.Context, petID *uint, r Range) ([]domain.ClinicalHistory, error) {
	return s.ListClinicalHistory(ctx, ClinicalHistoryFilter{PetID: petID, Date: r})
}
