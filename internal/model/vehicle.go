package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle represents one visit of a physical vehicle to the facility.
// Re-entry after exit creates a new row; rows are only removed by an
// administrative reset.
type Vehicle struct {
	ID                 uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	RegistrationNumber string        `json:"registrationNumber" gorm:"size:20;not null;index"`
	Type               VehicleType   `json:"type" gorm:"type:varchar(20);not null;index"`
	OwnerName          string        `json:"ownerName,omitempty" gorm:"size:255"`
	PhoneNumber        string        `json:"phoneNumber,omitempty" gorm:"size:20"`
	Email              string        `json:"email,omitempty" gorm:"size:255"`
	EntryTime          time.Time     `json:"entryTime" gorm:"not null;index"`
	ExitTime           *time.Time    `json:"exitTime,omitempty"`
	SlotID             *uuid.UUID    `json:"slotId,omitempty" gorm:"type:char(36);index"`
	Status             VehicleStatus `json:"status" gorm:"type:varchar(20);not null;default:'parked';index"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`

	// Relations
	Slot *ParkingSlot `json:"slot,omitempty" gorm:"foreignKey:SlotID"`
}

// BeforeCreate sets the UUID and normalizes the registration number.
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.RegistrationNumber = NormalizeRegistration(v.RegistrationNumber)
	return nil
}

// NormalizeRegistration upper-cases and trims a registration plate string.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.TrimSpace(reg))
}
