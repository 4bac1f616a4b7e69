package domain

import "time" // Timestamps

// Client is a pet owner.
type Client struct {
	ID         uint      `gorm:"primaryKey"`           // Primary key
	Name       string    `gorm:"size:120;not null"`    // Full name
	Email      *string   `gorm:"size:120;uniqueIndex"` // Unique when present
	Phone      *string   `gorm:"size:20"`              // Contact phone
	Address    *string   `gorm:"size:200"`             // Postal address
	NationalID *string   `gorm:"column:dni;size:30"`   // National identity document
	Notes      *string   `gorm:"type:text"`            // Free-form notes
	CreatedAt  time.Time `gorm:"not null;<-:create"`   // Write once
}

// ClientView is the wire form of a Client.
type ClientView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	Address    *string   `json:"address"`
	NationalID *string   `json:"dni"`
	CreatedAt  time.Time `json:"created_at"`
	Notes      *string   `json:"notes"`
}

func (c *Client) View() ClientView {
	return ClientView{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		NationalID: c.NationalID,
		CreatedAt:  c.CreatedAt.UTC(),
		Notes:      c.Notes,
	}
}

func clientView(c *Client) *ClientView {
	if c == nil {
		return nil
	}
	v := c.View()
	return &v
}
