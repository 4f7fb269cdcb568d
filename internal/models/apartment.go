package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BankDetails holds the receiving account a resident transfers maintenance
// fees to. Every field is optional and set independently by the admin.
type BankDetails struct {
	AccountHolder string `gorm:"size:255" json:"accountHolder,omitempty"`
	AccountNumber string `gorm:"size:50" json:"accountNumber,omitempty"`
	IFSCCode      string `gorm:"size:20" json:"ifscCode,omitempty"`
	BankName      string `gorm:"size:255" json:"bankName,omitempty"`
	Branch        string `gorm:"size:255" json:"branch,omitempty"`
	UPIID         string `gorm:"size:255" json:"upiId,omitempty"`
}

// Apartment is the tenant root. Every other entity is scoped by its join
// code, which is immutable once issued and globally unique at the storage
// level.
type Apartment struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string      `gorm:"size:255;not null" json:"name"`
	ApartmentCode     string      `gorm:"size:10;not null;uniqueIndex" json:"apartmentCode"`
	MaintenanceAmount float64     `gorm:"default:0" json:"maintenanceAmount"`
	BankDetails       BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bankDetails"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

func (a *Apartment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
