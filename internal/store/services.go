package store

import (
	"context" // Request-scoped queries

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewService carries a validated service creation request.
type NewService struct {
	Name          string
	Description   *string
	Price         float64
	AttentionType string
}

// ServicePatch holds the updatable service fields. Description is the only
// one that may be cleared with null.
type ServicePatch struct {
	Name          domain.Optional[string]
	Description   domain.Optional[string]
	Price         domain.Optional[float64]
	AttentionType domain.Optional[string]
}

// ListServices returns services newest first.
func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := s.db.WithContext(ctx).Order("id DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) GetService(ctx context.Context, id uint) (*domain.Service, error) {
	var svc domain.Service
	if err := s.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, in NewService) (*domain.Service, error) {
	svc := &domain.Service{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		AttentionType: in.AttentionType,
	}
	if err := s.tx(ctx, func(tx *gorm.DB) error { return tx.Create(svc).Error }); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Store) UpdateService(ctx context.Context, id uint, patch ServicePatch) (*domain.Service, error) {
	changes := map[string]any{}
	if patch.Name.HasValue() {
		changes["name"] = patch.Name.Value
	}
	if patch.Description.Set {
		changes["description"] = patch.Description.Ptr()
	}
	if patch.Price.HasValue() {
		changes["price"] = patch.Price.Value
	}
	if patch.AttentionType.HasValue() {
		changes["attention_type"] = patch.AttentionType.Value
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		var svc domain.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&svc).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetService(ctx, id)
}

// DeleteService refuses with ErrServiceInUse while any appointment
// references the service.
func (s *Store) DeleteService(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var svc domain.Service
		if err := tx.First(&svc, id).Error; err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&domain.Appointment{}).Where("service_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrServiceInUse
		}
		return tx.Delete(&svc).Error
	})
}
