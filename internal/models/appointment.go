package models

import (
	"time"
)

// AppointmentStatus represents the status of a rendez-vous.
// A status enum rather than a boolean flag, additional states may be
// added later.
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment represents a scheduled rendez-vous. The window is
// [StartDate, EndDate), end exclusive. Canceled appointments keep their
// row but no longer count for conflict detection.
type Appointment struct {
	BaseModel
	StartDate time.Time         `gorm:"index:idx_appointments_dentist_window,priority:2" json:"startDate"`
	EndDate   time.Time         `json:"endDate"`
	PatientID string            `gorm:"size:36;index" json:"patientId"`
	RoomID    string            `gorm:"size:36;index" json:"salleConsultationId"`
	DentistID string            `gorm:"size:36;index:idx_appointments_dentist_window,priority:1" json:"utilisateurId"`
	Motif     string            `gorm:"size:255" json:"motif"`
	Notes     string            `gorm:"type:text" json:"notes"`
	Status    AppointmentStatus `gorm:"size:20;default:'confirmed'" json:"status"`

	// Relations
	Patient Patient          `gorm:"foreignKey:PatientID" json:"-"`
	Dentist User             `gorm:"foreignKey:DentistID" json:"-"`
	Room    ConsultationRoom `gorm:"foreignKey:RoomID" json:"-"`
}
