package store

import (
	"context" // Request-scoped queries
	"fmt"     // Reference error reasons
	"strings" // Status trimming
	"time"    // Calendar days

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewAppointment carries a validated appointment creation request. Date is
// a calendar day and Time is HH:MM.
type NewAppointment struct {
	ClientID   uint
	PetID      uint
	ServiceID  uint
	VetID      *uint
	Date       time.Time
	Time       string
	Status     string
	DropOff    bool
	PickupCode *string
}

// AppointmentPatch holds the updatable appointment fields. VetID and
// PickupCode may be cleared with null.
type AppointmentPatch struct {
	Date       domain.Optional[time.Time]
	Time       domain.Optional[string]
	Status     domain.Optional[string]
	VetID      domain.Optional[uint]
	DropOff    domain.Optional[bool]
	PickupCode domain.Optional[string]
	Collected  domain.Optional[bool]
}

// AppointmentFilter narrows appointment listings. Zero value lists all.
type AppointmentFilter struct {
	VetID *uint
	Paid  *bool
	Date  Range
}

func (s *Store) appointments(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Client").
		Preload("Pet").
		Preload("Vet").
		Preload("Service")
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, error) {
	q := s.appointments(ctx).Order("id")
	if f.VetID != nil {
		q = q.Where("vet_id = ?", *f.VetID)
	}
	if f.Paid != nil {
		q = q.Where("paid = ?", *f.Paid)
	}
	q = f.Date.apply(q, "date")
	var out []domain.Appointment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id uint) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := s.appointments(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// CreateAppointment checks every reference and that the pet belongs to the
// client before inserting.
func (s *Store) CreateAppointment(ctx context.Context, in NewAppointment) (*domain.Appointment, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.DefaultAppointmentStatus
	}
	a := domain.Appointment{
		ClientID:   in.ClientID,
		PetID:      in.PetID,
		ServiceID:  in.ServiceID,
		VetID:      in.VetID,
		Date:       calendarDay(in.Date),
		Time:       in.Time,
		Status:     status,
		DropOff:    in.DropOff,
		PickupCode: in.PickupCode,
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Client{}, "client_id", in.ClientID); err != nil {
			return err
		}
		if err := ensurePetOfClient(tx, in.PetID, in.ClientID); err != nil {
			return err
		}
		if err := ensureExists(tx, &domain.Service{}, "service_id", in.ServiceID); err != nil {
			return err
		}
		if in.VetID != nil {
			if err := ensureExists(tx, &domain.User{}, "vet_id", *in.VetID); err != nil {
				return err
			}
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, a.ID)
}

func (s *Store) UpdateAppointment(ctx context.Context, id uint, patch AppointmentPatch) (*domain.Appointment, error) {
	changes := map[string]any{}
	if patch.Date.HasValue() {
		changes["date"] = calendarDay(patch.Date.Value)
	}
	if patch.Time.HasValue() {
		changes["time"] = patch.Time.Value
	}
	if patch.Status.HasValue() {
		changes["status"] = strings.TrimSpace(patch.Status.Value)
	}
	if patch.VetID.Set {
		changes["vet_id"] = patch.VetID.Ptr()
	}
	if patch.DropOff.HasValue() {
		changes["drop_off"] = patch.DropOff.Value
	}
	if patch.PickupCode.Set {
		changes["pickup_code"] = patch.PickupCode.Ptr()
	}
	if patch.Collected.HasValue() {
		changes["collected"] = patch.Collected.Value
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var a domain.Appointment
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		if patch.VetID.HasValue() {
			if err := ensureExists(tx, &domain.User{}, "vet_id", patch.VetID.Value); err != nil {
				return err
			}
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&a).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, id)
}

// DeleteAppointment removes the appointment and detaches its clinical
// history entries, which stay with the pet.
func (s *Store) DeleteAppointment(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var a domain.Appointment
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.ClinicalHistory{}).Where("appointment_id = ?", id).Update("appointment_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&a).Error
	})
}

// RegisterPayment marks the appointment paid and stamps payment_date in the
// same transaction as the method and amount. Nil method or amount keep the
// previous values.
func (s *Store) RegisterPayment(ctx context.Context, id uint, method *string, amount *float64) (*domain.Appointment, error) {
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var a domain.Appointment
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		a.RegisterPayment(method, amount, s.now())
		return tx.Model(&a).Updates(map[string]any{
			"paid":           a.Paid,
			"payment_method": a.PaymentMethod,
			"payment_amount": a.PaymentAmount,
			"payment_date":   a.PaymentDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetAppointment(ctx, id)
}

func ensurePetOfClient(tx *gorm.DB, petID, clientID uint) error {
	var p domain.Pet
	if err := tx.Select("id", "client_id").First(&p, petID).Error; err != nil {
		if translate(err) == ErrNotFound {
			return &ReferenceError{Field: "pet_id", ID: petID}
		}
		return err
	}
	if p.ClientID != clientID {
		return &ReferenceError{Field: "pet_id", ID: petID, Reason: fmt.Sprintf("does not belong to client %d", clientID)}
	}
	return nil
}

// calendarDay truncates t to midnight UTC of its own calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
