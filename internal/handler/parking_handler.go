package handler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"parksys/internal/model"
	"parksys/internal/service"
)

// ParkingHandler handles parking lifecycle endpoints.
type ParkingHandler struct {
	parkingService service.ParkingService
	reportService  service.ReportService
}

// NewParkingHandler creates a new parking handler.
func NewParkingHandler(parkingService service.ParkingService, reportService service.ReportService) *ParkingHandler {
	return &ParkingHandler{parkingService: parkingService, reportService: reportService}
}

// EnterRequest represents a vehicle entry request.
type EnterRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	VehicleType        string `json:"vehicleType" validate:"required,oneof=two_wheeler four_wheeler truck bus"`
	OwnerName          string `json:"ownerName"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email" validate:"omitempty,email"`
}

// ExitRequest represents a vehicle exit request.
type ExitRequest struct {
	VehicleID     string `json:"vehicleId" validate:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cash card upi wallet"`
}

// EnterResponse pairs the created vehicle with its assigned slot label.
type EnterResponse struct {
	Vehicle    *model.Vehicle `json:"vehicle"`
	SlotNumber string         `json:"slotNumber"`
}

// DailyReportRequest selects the day to summarize.
type DailyReportRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// Enter godoc
// @Summary Park a vehicle
// @Tags parking
// @Accept json
// @Produce json
// @Param request body EnterRequest true "Entry data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/enter [post]
func (h *ParkingHandler) Enter(c echo.Context) error {
	var req EnterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	vehicle, slotNumber, err := h.parkingService.EnterVehicle(c.Request().Context(), service.EntryRequest{
		RegistrationNumber: model.NormalizeRegistration(req.RegistrationNumber),
		Type:               model.VehicleType(req.VehicleType),
		OwnerName:          req.OwnerName,
		PhoneNumber:        req.PhoneNumber,
		Email:              req.Email,
	})
	if err != nil {
		return fail(c, err)
	}

	return created(c, EnterResponse{Vehicle: vehicle, SlotNumber: slotNumber},
		fmt.Sprintf("Vehicle entered successfully. Assigned slot: %s", slotNumber))
}

// Exit godoc
// @Summary Exit a parked vehicle and settle the fee
// @Tags parking
// @Accept json
// @Produce json
// @Param request body ExitRequest true "Exit data"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/exit [post]
func (h *ParkingHandler) Exit(c echo.Context) error {
	var req ExitRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return badRequest(c, "invalid vehicleId", "INVALID_UUID")
	}
	method := model.PaymentMethodCash
	if req.PaymentMethod != "" {
		method = model.PaymentMethod(req.PaymentMethod)
	}

	record, err := h.parkingService.ExitVehicle(c.Request().Context(), vehicleID, method)
	if err != nil {
		return fail(c, err)
	}

	return okMessage(c, record,
		fmt.Sprintf("Vehicle exited successfully. Amount: ₹%s", record.Amount.StringFixed(0)))
}

// ListSlots godoc
// @Summary List all parking slots
// @Tags parking
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/slots [get]
func (h *ParkingHandler) ListSlots(c echo.Context) error {
	slots, err := h.parkingService.ListSlots(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, slots)
}

// ActiveVehicles godoc
// @Summary List currently parked vehicles
// @Tags parking
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/vehicles [get]
func (h *ParkingHandler) ActiveVehicles(c echo.Context) error {
	vehicles, err := h.parkingService.ActiveVehicles(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, vehicles)
}

// AllVehicles godoc
// @Summary List all vehicles ever recorded
// @Tags parking
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/vehicles/all [get]
func (h *ParkingHandler) AllVehicles(c echo.Context) error {
	vehicles, err := h.parkingService.AllVehicles(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, vehicles)
}

// Search godoc
// @Summary Search parked vehicles by registration fragment
// @Tags parking
// @Produce json
// @Param registrationNumber query string true "Registration fragment"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/search [get]
func (h *ParkingHandler) Search(c echo.Context) error {
	fragment := model.NormalizeRegistration(c.QueryParam("registrationNumber"))
	vehicles, err := h.parkingService.SearchParked(c.Request().Context(), fragment)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, vehicles)
}

// Records godoc
// @Summary List historical parking records
// @Tags parking
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} PagedEnvelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/records [get]
func (h *ParkingHandler) Records(c echo.Context) error {
	page := intQueryParam(c, "page", 1)
	limit := intQueryParam(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	records, total, err := h.parkingService.Records(c.Request().Context(), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return paged(c, records, page, limit, total)
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags parking
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/stats [get]
func (h *ParkingHandler) Stats(c echo.Context) error {
	stats, err := h.parkingService.DashboardStats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, stats)
}

// DailyReport godoc
// @Summary Daily operations summary
// @Tags parking
// @Accept json
// @Produce json
// @Param request body DailyReportRequest false "Report day, defaults to today"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/reports/daily [post]
func (h *ParkingHandler) DailyReport(c echo.Context) error {
	var req DailyReportRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			return badRequest(c, "invalid date, expected YYYY-MM-DD", "INVALID_DATE")
		}
		date = parsed
	}

	report, err := h.reportService.DailySummary(c.Request().Context(), date)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, report)
}

// Reset godoc
// @Summary Clear parked vehicles and records and free all slots
// @Tags parking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /parking/reset [post]
func (h *ParkingHandler) Reset(c echo.Context) error {
	summary, err := h.parkingService.Reset(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, summary, "Parking system reset successfully")
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	var value int
	if _, err := fmt.Sscanf(raw, "%d", &value); err != nil {
		return fallback
	}
	return value
}
