package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParkingRate is one row of the versioned price list. At most one row per
// vehicle type is open (effectiveUntil unset) at any instant; rate updates
// close the open row and insert a fresh one instead of mutating it.
type ParkingRate struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	VehicleType    VehicleType     `json:"vehicleType" gorm:"type:varchar(20);not null;index"`
	BaseRate       decimal.Decimal `json:"baseRate" gorm:"type:decimal(20,2);not null"`
	AdditionalRate decimal.Decimal `json:"additionalRate" gorm:"type:decimal(20,2);not null"`
	Currency       string          `json:"currency" gorm:"size:3;not null;default:'INR'"`
	EffectiveFrom  time.Time       `json:"effectiveFrom" gorm:"not null;index"`
	EffectiveUntil *time.Time      `json:"effectiveUntil,omitempty" gorm:"index"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// BeforeCreate sets the UUID before inserting the rate row.
func (r *ParkingRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
