package models

import (
	"time"
)

// Machine represents a piece of clinic equipment. A machine can be
// assigned to several consultation rooms and a room can hold several
// machines.
type Machine struct {
	BaseModel
	Name            string    `gorm:"size:100" json:"nom"`
	Model           string    `gorm:"size:100" json:"modele"`
	PurchaseDate    time.Time `json:"dateAchat"`
	LastServiceDate time.Time `json:"dateDerniereRevision"`

	Rooms []ConsultationRoom `gorm:"many2many:machine_rooms" json:"salles,omitempty"`
}
