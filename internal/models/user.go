package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum for staff accounts
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDentist   Role = "DENTIST"
	RoleAssistant Role = "ASSISTANT"
)

// User represents a staff account (dentist, assistant or admin).
type User struct {
	BaseModel
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName string `gorm:"size:100" json:"prenom"`
	LastName  string `gorm:"size:100" json:"nom"`
	Phone     string `gorm:"size:30" json:"numeroTelephone,omitempty"`
	Role      Role   `gorm:"size:20;default:'ASSISTANT'" json:"role"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:DentistID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"prenom"`
	LastName  string    `json:"nom"`
	Phone     string    `json:"numeroTelephone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
