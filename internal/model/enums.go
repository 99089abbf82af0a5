package model

// VehicleType classifies a vehicle and constrains which slots it may occupy.
type VehicleType string

const (
	VehicleTypeTwoWheeler  VehicleType = "two_wheeler"
	VehicleTypeFourWheeler VehicleType = "four_wheeler"
	VehicleTypeTruck       VehicleType = "truck"
	VehicleTypeBus         VehicleType = "bus"
)

// VehicleTypes lists all vehicle types in rate/report ordering.
var VehicleTypes = []VehicleType{
	VehicleTypeTwoWheeler,
	VehicleTypeFourWheeler,
	VehicleTypeTruck,
	VehicleTypeBus,
}

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeTwoWheeler, VehicleTypeFourWheeler, VehicleTypeTruck, VehicleTypeBus:
		return true
	}
	return false
}

// VehicleStatus represents the lifecycle state of a vehicle visit.
type VehicleStatus string

const (
	VehicleStatusParked VehicleStatus = "parked"
	VehicleStatusExited VehicleStatus = "exited"
	// VehicleStatusReserved is a defined state with no workflow attached yet.
	VehicleStatusReserved VehicleStatus = "reserved"
)

// SlotStatus represents the occupancy state of a parking slot.
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "available"
	SlotStatusOccupied    SlotStatus = "occupied"
	SlotStatusReserved    SlotStatus = "reserved"
	SlotStatusMaintenance SlotStatus = "maintenance"
)

// PaymentStatus represents the settlement state of a parking record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentMethod represents how a parking fee was settled.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// UserRole represents the access level of a staff account.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStaff    UserRole = "staff"
	UserRoleCustomer UserRole = "customer"
)
