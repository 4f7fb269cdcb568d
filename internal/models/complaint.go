package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses form a closed set. Input is normalized to these
// canonical spellings; any status may transition to any other.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Complaint is a maintenance ticket raised by a resident. UserID is
// nullable: legacy records created before reporters were linked are
// repaired by a batch backfill that matches on phone number.
type Complaint struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"_id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Category       string     `gorm:"size:100;not null" json:"category"`
	Priority       string     `gorm:"size:50;not null" json:"priority"`
	PhoneNumber    string     `gorm:"size:20;not null;index" json:"phoneNumber"`
	AdditionalInfo string     `gorm:"type:text" json:"additionalInfo,omitempty"`
	Status         string     `gorm:"size:20;default:'Open';index" json:"status"`
	AssignedTo     string     `gorm:"size:255" json:"assignedTo,omitempty"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ApartmentCode  string     `gorm:"size:10;not null;index" json:"apartmentCode"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
