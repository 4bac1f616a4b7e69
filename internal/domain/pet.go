package domain

// Pet belongs to exactly one Client.
type Pet struct {
	ID       uint    `gorm:"primaryKey"`                                     // Primary key
	Name     string  `gorm:"size:80;not null"`                               // Pet name
	Species  string  `gorm:"size:80;not null"`                               // e.g. dog, cat
	Breed    string  `gorm:"size:80;not null"`                               // Breed
	Age      int     `gorm:"not null"`                                       // Age in years
	ClientID uint    `gorm:"not null;index"`                                 // Owner
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"` // Restrict: owners with pets stay
}

// PetFields is the flat projection used when a pet is inlined in another view.
type PetFields struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	Age      int    `json:"age"`
	ClientID uint   `json:"client_id"`
}

// PetView adds the owning client to the flat fields.
type PetView struct {
	PetFields
	Client *ClientView `json:"client"`
}

func (p *Pet) Fields() PetFields {
	return PetFields{
		ID:       p.ID,
		Name:     p.Name,
		Species:  p.Species,
		Breed:    p.Breed,
		Age:      p.Age,
		ClientID: p.ClientID,
	}
}

func (p *Pet) View() PetView {
	return PetView{PetFields: p.Fields(), Client: clientView(p.Client)}
}

func petFields(p *Pet) *PetFields {
	if p == nil {
		return nil
	}
	f := p.Fields()
	return &f
}
