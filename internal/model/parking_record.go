package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ParkingRecord is the immutable billing entry for one completed stay.
// Rows are created at exit time and never updated afterward, so later rate
// changes cannot alter amounts already billed.
type ParkingRecord struct {
	ID              uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	VehicleID       uuid.UUID       `json:"vehicleId" gorm:"type:char(36);not null;index"`
	SlotID          uuid.UUID       `json:"slotId" gorm:"type:char(36);not null;index"`
	EntryTime       time.Time       `json:"entryTime" gorm:"not null;index"`
	ExitTime        time.Time       `json:"exitTime" gorm:"not null"`
	DurationMinutes int64           `json:"duration" gorm:"not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(20)"`
	ReceiptID       string          `json:"receiptId" gorm:"size:30"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Relations
	Vehicle Vehicle     `json:"-" gorm:"foreignKey:VehicleID"`
	Slot    ParkingSlot `json:"-" gorm:"foreignKey:SlotID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (r *ParkingRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
