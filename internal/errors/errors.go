package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("missing or invalid input")
	// ErrDuplicateActiveVehicle is returned when the registration already has a parked entry.
	ErrDuplicateActiveVehicle = errors.New("vehicle is already parked in the facility")
	// ErrNoAvailableSlot is returned when no slot of the requested type is free.
	ErrNoAvailableSlot = errors.New("no available slots for this vehicle type")
	// ErrVehicleNotFound is returned when the vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrVehicleNotParked is returned when the vehicle is not currently parked.
	ErrVehicleNotParked = errors.New("vehicle not found or not currently parked")
	// ErrSlotNotFound is returned when a slot or the vehicle-slot linkage is missing.
	ErrSlotNotFound = errors.New("parking slot not found")
	// ErrSlotUnavailable is returned when occupying a slot that is not available.
	ErrSlotUnavailable = errors.New("parking slot is not available")
	// ErrUserNotFound is returned when a staff account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the username or email is taken.
	ErrUserAlreadyExists = errors.New("username or email already in use")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a token is expired, revoked or malformed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserInactive is returned when a deactivated account tries to log in.
	ErrUserInactive = errors.New("account is deactivated")
	// ErrForbidden is returned when the caller's role does not permit the operation.
	ErrForbidden = errors.New("insufficient permissions")
)

// ErrorResponse is the error shape of the API envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// HTTPError pairs a domain error with an HTTP status and a stable code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to the wire shape.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage failures and
// anything unrecognized collapse to a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateActiveVehicle):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_ACTIVE_VEHICLE")
	case errors.Is(err, ErrNoAvailableSlot):
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_AVAILABLE_SLOT")
	case errors.Is(err, ErrVehicleNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_FOUND")
	case errors.Is(err, ErrVehicleNotParked):
		return NewHTTPError(http.StatusNotFound, err.Error(), "VEHICLE_NOT_PARKED")
	case errors.Is(err, ErrSlotNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SLOT_NOT_FOUND")
	case errors.Is(err, ErrSlotUnavailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLOT_UNAVAILABLE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
