package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TechnicianAvailable = "available"
	TechnicianBusy      = "busy"
	TechnicianOffline   = "offline"
)

// TechnicianSpecialties is the closed set of accepted specialties.
var TechnicianSpecialties = []string{
	"Plumbing", "Electrical", "HVAC", "General Maintenance", "Carpentry",
}

// Technician is an apartment-scoped service-provider contact, not a login.
// Email uniqueness is per apartment and enforced by the service layer.
type Technician struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`
	Phone         string    `gorm:"size:20;not null" json:"phone"`
	Specialty     string    `gorm:"size:50;not null" json:"specialty"`
	Status        string    `gorm:"size:20;not null;default:'available'" json:"status"`
	ApartmentCode string    `gorm:"size:10;not null;index" json:"apartmentCode"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (t *Technician) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
