package store

import (
	"context" // Request-scoped queries

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewPet carries a validated pet creation request.
type NewPet struct {
	Name     string
	Species  string
	Breed    string
	Age      int
	ClientID uint
}

// PetPatch holds the updatable pet fields. Required fields must not be
// set to null.
type PetPatch struct {
	Name    domain.Optional[string]
	Species domain.Optional[string]
	Breed   domain.Optional[string]
	Age     domain.Optional[int]
}

func (s *Store) pets(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Client")
}

// ListPets returns every pet, or only those of clientID when it is set.
func (s *Store) ListPets(ctx context.Context, clientID *uint) ([]domain.Pet, error) {
	q := s.pets(ctx).Order("id")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var pets []domain.Pet
	if err := q.Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (s *Store) GetPet(ctx context.Context, id uint) (*domain.Pet, error) {
	var p domain.Pet
	if err := s.pets(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreatePet(ctx context.Context, in NewPet) (*domain.Pet, error) {
	p := domain.Pet{
		Name:     in.Name,
		Species:  in.Species,
		Breed:    in.Breed,
		Age:      in.Age,
		ClientID: in.ClientID,
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Client{}, "client_id", in.ClientID); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetPet(ctx, p.ID)
}

func (s *Store) UpdatePet(ctx context.Context, id uint, patch PetPatch) (*domain.Pet, error) {
	changes := map[string]any{}
	if patch.Name.HasValue() {
		changes["name"] = patch.Name.Value
	}
	if patch.Species.HasValue() {
		changes["species"] = patch.Species.Value
	}
	if patch.Breed.HasValue() {
		changes["breed"] = patch.Breed.Value
	}
	if patch.Age.HasValue() {
		changes["age"] = patch.Age.Value
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var p domain.Pet
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&p).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetPet(ctx, id)
}

// DeletePet removes the pet together with its appointments and clinical
// history.
func (s *Store) DeletePet(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var p domain.Pet
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		appointments := tx.Model(&domain.Appointment{}).Select("id").Where("pet_id = ?", id)
		if err := tx.Model(&domain.ClinicalHistory{}).
			Where("appointment_id IN (?)", appointments).
			Update("appointment_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("pet_id = ?", id).Delete(&domain.ClinicalHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pet_id = ?", id).Delete(&domain.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
