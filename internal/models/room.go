package models

// ConsultationRoom represents a salle de consultation.
type ConsultationRoom struct {
	BaseModel
	Number   int `gorm:"uniqueIndex;not null" json:"numero"`
	Capacity int `gorm:"not null;default:1" json:"capacite"`

	Appointments []Appointment `gorm:"foreignKey:RoomID" json:"-"`
}
