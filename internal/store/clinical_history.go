package store

import (
	"context" // Request-scoped queries

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewClinicalHistory carries a validated observation. VetID comes from the
// authenticated caller.
type NewClinicalHistory struct {
	PetID         uint
	Observation   string
	AppointmentID *uint
	VetID         *uint
}

// ClinicalHistoryFilter narrows clinical history listings.
type ClinicalHistoryFilter struct {
	AppointmentID *uint
	PetID         *uint
	Date          Range
}

// clinicalHistory preloads what the view derives its names from: the pet's
// owner, the appointment's service and the authoring vet.
func (s *Store) clinicalHistory(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Pet.Client").
		Preload("Appointment.Service").
		Preload("Vet")
}

func (s *Store) ListClinicalHistory(ctx context.Context, f ClinicalHistoryFilter) ([]domain.ClinicalHistory, error) {
	q := s.clinicalHistory(ctx).Order("id")
	if f.AppointmentID != nil {
		q = q.Where("appointment_id = ?", *f.AppointmentID)
	}
	if f.PetID != nil {
		q = q.Where("pet_id = ?", *f.PetID)
	}
	q = f.Date.apply(q, "date")
	var out []domain.ClinicalHistory
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetClinicalHistory(ctx context.Context, id uint) (*domain.ClinicalHistory, error) {
	var h domain.ClinicalHistory
	if err := s.clinicalHistory(ctx).First(&h, id).Error; err != nil {
		return nil, translate(err)
	}
	return &h, nil
}

// CreateClinicalHistory requires an existing pet; a linked appointment must
// be one of that pet's appointments.
func (s *Store) CreateClinicalHistory(ctx context.Context, in NewClinicalHistory) (*domain.ClinicalHistory, error) {
	h := domain.ClinicalHistory{
		PetID:         in.PetID,
		Observation:   in.Observation,
		AppointmentID: in.AppointmentID,
		VetID:         in.VetID,
		Date:          s.now(),
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Pet{}, "pet_id", in.PetID); err != nil {
			return err
		}
		if in.AppointmentID != nil {
			var a domain.Appointment
			if err := tx.Select("id", "pet_id").First(&a, *in.AppointmentID).Error; err != nil {
				if translate(err) == ErrNotFound {
					return &ReferenceError{Field: "appointment_id", ID: *in.AppointmentID}
				}
				return err
			}
			if a.PetID != in.PetID {
				return &ReferenceError{Field: "appointment_id", ID: a.ID, Reason: "belongs to a different pet"}
			}
		}
		if in.VetID != nil {
			if err := ensureExists(tx, &domain.User{}, "vet_id", *in.VetID); err != nil {
				return err
			}
		}
		return tx.Create(&h).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetClinicalHistory(ctx, h.ID)
}

// UpdateObservation replaces the observation text only.
func (s *Store) UpdateObservation(ctx context.Context, id uint, observation string) (*domain.ClinicalHistory, error) {
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var h domain.ClinicalHistory
		if err := tx.First(&h, id).Error; err != nil {
			return err
		}
		return tx.Model(&h).Update("observation", observation).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetClinicalHistory(ctx, id)
}
