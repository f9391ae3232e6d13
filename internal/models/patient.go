package models

import "time"

// Patient represents a patient of the clinic.
type Patient struct {
	BaseModel
	LastName    string    `gorm:"size:100;not null" json:"nom"`
	FirstName   string    `gorm:"size:100;not null" json:"prenom"`
	DateOfBirth time.Time `json:"dateNaissance"`
	Address     string    `gorm:"size:255" json:"adresse"`
	Phone       string    `gorm:"size:30" json:"telephone"`
	Email       string    `gorm:"uniqueIndex;size:255" json:"email"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Invoices     []Invoice     `gorm:"foreignKey:PatientID" json:"-"`
}
