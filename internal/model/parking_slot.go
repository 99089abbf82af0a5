package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParkingSlot is a physical parking space with a fixed vehicle-type affinity.
// Slot numbers grow append-only and are never reused, so expanding capacity
// never disturbs vehicles already parked.
type ParkingSlot struct {
	ID            uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Number        string      `json:"number" gorm:"size:10;not null;uniqueIndex"`
	Type          VehicleType `json:"type" gorm:"type:varchar(20);not null;index"`
	Status        SlotStatus  `json:"status" gorm:"type:varchar(20);not null;default:'available';index"`
	PositionX     int         `json:"positionX" gorm:"not null"`
	PositionY     int         `json:"positionY" gorm:"not null"`
	VehicleID     *uuid.UUID  `json:"vehicleId,omitempty" gorm:"type:char(36);index"`
	ReservedUntil *time.Time  `json:"reservedUntil,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// BeforeCreate sets the UUID before inserting the slot.
func (s *ParkingSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NumberPrefix returns the slot-label letter used for a vehicle type
// (A for two-wheelers, B for four-wheelers, C for trucks, D for buses).
func NumberPrefix(t VehicleType) string {
	switch t {
	case VehicleTypeTwoWheeler:
		return "A"
	case VehicleTypeFourWheeler:
		return "B"
	case VehicleTypeTruck:
		return "C"
	case VehicleTypeBus:
		return "D"
	}
	return "X"
}
