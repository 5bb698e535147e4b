package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeWorker UserType = "worker"
	UserTypeClient UserType = "client"
)

// Valid reports whether t is one of the known marketplace sides.
func (t UserType) Valid() bool {
	return t == UserTypeWorker || t == UserTypeClient
}

// Coordinates are optional; a zero value means the client did not share them.
type Coordinates struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Location struct {
	City        string      `gorm:"size:128;not null" json:"city"`
	State       string      `gorm:"size:128;not null" json:"state"`
	Country     string      `gorm:"size:128;not null" json:"country"`
	Coordinates Coordinates `gorm:"embedded;embeddedPrefix:coord_" json:"coordinates"`
}

type User struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	Name                 string    `gorm:"size:255;not null" json:"name"`
	Email                string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash         string    `gorm:"size:255;not null" json:"-"`
	Phone                string    `gorm:"size:32" json:"phone,omitempty"`
	UserType             UserType  `gorm:"size:16;not null;default:'worker'" json:"userType"`
	Location             Location  `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Expertise            string    `gorm:"size:512" json:"expertise,omitempty"`
	Experience           string    `gorm:"size:512" json:"experience,omitempty"`
	ExpectedCompensation string    `gorm:"size:64" json:"expectedCompensation,omitempty"`
	ProfileImage         *string   `gorm:"size:2048" json:"profileImage"`
	IdentityDocument     *string   `gorm:"size:2048" json:"aadharCard"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the opaque identifier. IDs are never reassigned.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
