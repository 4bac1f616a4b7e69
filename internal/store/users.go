package store

import (
	"context" // Request-scoped queries
	"fmt"     // Error wrapping

	"vet_clinic/internal/domain" // Entity model

	"gorm.io/gorm" // GORM ORM library
)

// NewUser carries a validated user creation request.
type NewUser struct {
	Username string
	Email    string
	Role     string
	Password string
}

// ListUsers returns all users, or those with role when it is not empty.
func (s *Store) ListUsers(ctx context.Context, role string) ([]domain.User, error) {
	q := s.db.WithContext(ctx).Order("id")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []domain.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// CreateUser hashes the password and inserts the user. Username and email
// must both be unused.
func (s *Store) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	u := &domain.User{Username: in.Username, Email: in.Email, Role: in.Role}
	if err := u.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &domain.User{}, "username", in.Username); err != nil {
			return err
		}
		if err := ensureUnique(tx, &domain.User{}, "email", in.Email); err != nil {
			return err
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user and unassigns it from appointments and
// clinical history.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.tx(ctx, func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Appointment{}).Where("vet_id = ?", id).Update("vet_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.ClinicalHistory{}).Where("vet_id = ?", id).Update("vet_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

// ChangePassword replaces the stored hash.
func (s *Store) ChangePassword(ctx context.Context, id uint, password string) (*domain.User, error) {
	var hashed domain.User
	if err := hashed.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	var u domain.User
	err := s.tx(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return err
		}
		u.PasswordHash = hashed.PasswordHash
		return tx.Model(&u).Update("password_hash", hashed.PasswordHash).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
