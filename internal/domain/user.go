package domain

import "golang.org/x/crypto/bcrypt" // Password hashing

// User roles
const (
	RoleAdmin        = "admin"
	RoleVet          = "vet"
	RoleReceptionist = "receptionist"
	RoleClient       = "client"
)

// ValidRole reports whether role is one of the known staff or client roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVet, RoleReceptionist, RoleClient:
		return true
	}
	return false
}

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`                    // Primary key
	Username     string `gorm:"size:80;uniqueIndex;not null"`  // Unique username
	Email        string `gorm:"size:120;uniqueIndex;not null"` // Unique email
	PasswordHash string `gorm:"size:256;not null"`             // bcrypt hash, never the plaintext
	Role         string `gorm:"size:20;not null;index"`        // admin, vet, receptionist or client
}

// SetPassword stores a salted bcrypt hash of password
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares password with the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UserView is the public projection of a User
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// View projects the user without its password hash
func (u *User) View() UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// userView returns nil for an unloaded relation
func userView(u *User) *UserView {
	if u == nil {
		return nil
	}
	v := u.View()
	return &v
}
