package domain

// Service Model: a billable veterinary service (consultation, surgery...)
type Service struct {
	ID            uint    `gorm:"primaryKey"`       // Primary key
	Name          string  `gorm:"size:80;not null"` // Display name
	Description   *string `gorm:"size:200"`         // Optional description
	Price         float64 `gorm:"not null"`         // List price
	AttentionType string  `gorm:"size:80;not null"` // e.g. in-clinic, at-home
}

// ServiceView is the wire form of a Service
type ServiceView struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	AttentionType string  `json:"attention_type"`
}

func (s *Service) View() ServiceView {
	return ServiceView{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Price:         s.Price,
		AttentionType: s.AttentionType,
	}
}

func serviceView(s *Service) *ServiceView {
	if s == nil {
		return nil
	}
	v := s.View()
	return &v
}
