package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// MaintenancePayment is a resident's claim of an off-system bank/UPI
// transfer. Amount is a snapshot of the apartment's fee at submission time
// and is never recomputed when the admin later changes the fee.
type MaintenancePayment struct {
	ID            uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"_id"`
	ApartmentCode string                     `gorm:"size:10;not null;index" json:"apartmentCode"`
	FlatNumber    string                     `gorm:"size:20;not null;index" json:"flatNumber"`
	Amount        float64                    `gorm:"not null" json:"amount"`
	TransactionID string                     `gorm:"size:255;not null" json:"transactionId"`
	Status        string                     `gorm:"size:20;not null;default:'pending'" json:"status"`
	Months        datatypes.JSONSlice[string] `json:"months"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

func (p *MaintenancePayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
