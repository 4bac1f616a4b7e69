package domain

import "time" // Timestamps

// Wire formats for the appointment schedule
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultAppointmentStatus is assigned to new appointments
const DefaultAppointmentStatus = "Pendiente"

// Appointment links a client, one of their pets, a service and optionally a
// vet. Payment fields stay unset until a payment is registered.
type Appointment struct {
	ID            uint       `gorm:"primaryKey"`                                                      // Primary key
	ClientID      uint       `gorm:"not null;index"`                                                  // Owning client
	Client        *Client    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`                  // Restrict: clients with appointments stay
	PetID         uint       `gorm:"not null;index"`                                                  // Patient
	Pet           *Pet       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`                   // Removed with the pet
	VetID         *uint      `gorm:"index"`                                                           // Assigned vet, optional
	Vet           *User      `gorm:"foreignKey:VetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"` // Unassigned when the vet is deleted
	ServiceID     uint       `gorm:"not null;index"`                                                  // Booked service
	Service       *Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`                  // Restrict: booked services stay
	Date          time.Time  `gorm:"not null;index"`                                                  // Calendar day at 00:00 UTC
	Time          string     `gorm:"size:5;not null"`                                                 // HH:MM
	Paid          bool       `gorm:"not null;index"`                                                  // Set by a registered payment
	PaymentMethod *string    `gorm:"size:50"`                                                         // e.g. cash, card
	PaymentAmount *float64                                                                            // Amount charged
	PaymentDate   *time.Time `gorm:"index"`                                                           // When the payment was registered
	Status        string     `gorm:"size:20;not null"`                                                // Workflow status
	DropOff       bool       `gorm:"not null"`                                                        // Pet left at the clinic
	PickupCode    *string    `gorm:"size:20"`                                                         // Code handed to the owner
	Collected     bool       `gorm:"not null"`                                                        // Pet picked up
}

// AppointmentFields is the flat projection of an appointment.
type AppointmentFields struct {
	ID            uint       `json:"id"`
	ClientID      uint       `json:"client_id"`
	PetID         uint       `json:"pet_id"`
	VetID         *uint      `json:"vet_id"`
	ServiceID     uint       `json:"service_id"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Paid          bool       `json:"paid"`
	PaymentMethod *string    `json:"payment_method"`
	PaymentAmount *float64   `json:"payment_amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	Status        string     `json:"status"`
	DropOff       bool       `json:"drop_off"`
	PickupCode    *string    `json:"pickup_code"`
	Collected     bool       `json:"collected"`
}

// AppointmentView inlines the directly related records, each flat.
type AppointmentView struct {
	AppointmentFields
	Client  *ClientView  `json:"client"`
	Pet     *PetFields   `json:"pet"`
	Vet     *UserView    `json:"vet"`
	Service *ServiceView `json:"service"`
}

func (a *Appointment) Fields() AppointmentFields {
	f := AppointmentFields{
		ID:            a.ID,
		ClientID:      a.ClientID,
		PetID:         a.PetID,
		VetID:         a.VetID,
		ServiceID:     a.ServiceID,
		Date:          a.Date.UTC().Format(DateLayout),
		Time:          a.Time,
		Paid:          a.Paid,
		PaymentMethod: a.PaymentMethod,
		PaymentAmount: a.PaymentAmount,
		Status:        a.Status,
		DropOff:       a.DropOff,
		PickupCode:    a.PickupCode,
		Collected:     a.Collected,
	}
	if a.PaymentDate != nil {
		pd := a.PaymentDate.UTC()
		f.PaymentDate = &pd
	}
	return f
}

func (a *Appointment) View() AppointmentView {
	return AppointmentView{
		AppointmentFields: a.Fields(),
		Client:            clientView(a.Client),
		Pet:               petFields(a.Pet),
		Vet:               userView(a.Vet),
		Service:           serviceView(a.Service),
	}
}

// RegisterPayment marks the appointment paid at now. A nil method or amount
// keeps the previously registered value.
func (a *Appointment) RegisterPayment(method *string, amount *float64, now time.Time) {
	a.Paid = true
	if method != nil {
		a.PaymentMethod = method
	}
	if amount != nil {
		a.PaymentAmount = amount
	}
	paidAt := now.UTC()
	a.PaymentDate = &paidAt
}

// AmountOrZero is the payment amount, counting an unset amount as zero.
func (a *Appointment) AmountOrZero() float64 {
	if a.PaymentAmount == nil {
		return 0
	}
	return *a.PaymentAmount
}

func appointmentFields(a *Appointment) *AppointmentFields {
	if a == nil {
		return nil
	}
	f := a.Fields()
	return &f
}
