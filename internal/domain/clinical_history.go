package domain

import "time" // Timestamps

// ClinicalHistory is one clinical observation recorded for a pet.
type ClinicalHistory struct {
	ID            uint         `gorm:"primaryKey"`                                                      // Primary key
	PetID         uint         `gorm:"not null;index"`                                                  // Patient
	Pet           *Pet         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`                   // Removed with the pet
	Observation   string       `gorm:"type:text;not null"`                                              // Clinical notes
	AppointmentID *uint        `gorm:"index"`                                                           // Originating appointment, optional
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`                  // Unlinked when the appointment is deleted
	Date          time.Time    `gorm:"not null;index;<-:create"`                                        // Recorded at, write once
	VetID         *uint        `gorm:"index"`                                                           // Attending vet, optional
	Vet           *User        `gorm:"foreignKey:VetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // Unlinked when the vet is deleted
}

// ClinicalHistoryView inlines the flat pet and appointment and the names
// derived from them. The derived names are never stored.
type ClinicalHistoryView struct {
	ID               uint               `json:"id"`
	PetID            uint               `json:"pet_id"`
	Observation      string             `json:"observation"`
	AppointmentID    *uint              `json:"appointment_id"`
	Date             time.Time          `json:"date"`
	VetID            *uint              `json:"vet_id"`
	Pet              *PetFields         `json:"pet"`
	Appointment      *AppointmentFields `json:"appointment"`
	VeterinarianName *string            `json:"veterinarian_name"`
	OwnerName        *string            `json:"owner_name"`
	ServiceName      *string            `json:"service_name"`
}

func (h *ClinicalHistory) View() ClinicalHistoryView {
	v := ClinicalHistoryView{
		ID:            h.ID,
		PetID:         h.PetID,
		Observation:   h.Observation,
		AppointmentID: h.AppointmentID,
		Date:          h.Date.UTC(),
		VetID:         h.VetID,
		Pet:           petFields(h.Pet),
		Appointment:   appointmentFields(h.Appointment),
	}
	if h.Vet != nil {
		v.VeterinarianName = stringPtr(h.Vet.Username)
	}
	if h.Pet != nil && h.Pet.Client != nil {
		v.OwnerName = stringPtr(h.Pet.Client.Name)
	}
	if h.Appointment != nil && h.Appointment.Service != nil {
		v.ServiceName = stringPtr(h.Appointment.Service.Name)
	}
	return v
}

func stringPtr(s string) *string { return &s }
