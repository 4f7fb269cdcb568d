package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// User is a registered member of one apartment. The compound unique index
// on (flat_number, apartment_code) guarantees a flat is claimed by at most
// one user per apartment, regardless of concurrent signups.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Username      string    `gorm:"size:255;not null" json:"username"`
	PhoneNumber   string    `gorm:"size:20;not null;index" json:"phoneNumber"`
	FlatNumber    string    `gorm:"size:20;not null;uniqueIndex:idx_users_flat_apartment" json:"flatNumber"`
	Password      string    `gorm:"not null" json:"-"`
	Role          string    `gorm:"size:20;default:'resident'" json:"role"`
	ApartmentCode string    `gorm:"size:10;not null;uniqueIndex:idx_users_flat_apartment;index" json:"apartmentCode"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
