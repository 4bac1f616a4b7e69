package store

import (
	"context" // Request-scoped queries

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewClient carries a validated client creation request.
type NewClient struct {
	Name       string
	Email      *string
	Phone      *string
	Address    *string
	NationalID *string
	Notes      *string
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *Store) GetClient(ctx context.Context, id uint) (*domain.Client, error) {
	var c domain.Client
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// CreateClient stamps created_at once; it is never written again.
func (s *Store) CreateClient(ctx context.Context, in NewClient) (*domain.Client, error) {
	c := &domain.Client{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Address:    in.Address,
		NationalID: in.NationalID,
		Notes:      in.Notes,
		CreatedAt:  s.now(),
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if in.Email != nil {
			if err := ensureUnique(tx, &domain.Client{}, "email", *in.Email); err != nil {
				return err
			}
		}
		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
