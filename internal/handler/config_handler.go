package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"parksys/internal/model"
	"parksys/internal/service"
)

// ConfigHandler handles facility configuration endpoints.
type ConfigHandler struct {
	slotService service.SlotService
	rateService service.RateService
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(slotService service.SlotService, rateService service.RateService) *ConfigHandler {
	return &ConfigHandler{slotService: slotService, rateService: rateService}
}

// SlotTargetsRequest maps vehicle types to desired slot counts.
type SlotTargetsRequest struct {
	Slots map[string]int `json:"slots" validate:"required,min=1"`
}

// RateEntry is one vehicle type's price in a rate update.
type RateEntry struct {
	VehicleType    string `json:"vehicleType" validate:"required,oneof=two_wheeler four_wheeler truck bus"`
	BaseRate       string `json:"baseRate" validate:"required"`
	AdditionalRate string `json:"additionalRate"`
}

// UpdateRatesRequest carries a new price revision.
type UpdateRatesRequest struct {
	Rates []RateEntry `json:"rates" validate:"required,min=1,dive"`
}

// SystemConfig godoc
// @Summary Current facility layout and price list
// @Tags config
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /config/system [get]
func (h *ConfigHandler) SystemConfig(c echo.Context) error {
	cfg, err := h.slotService.SystemConfig(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, cfg)
}

// CurrentRates godoc
// @Summary Active hourly rates
// @Tags config
// @Produce json
// @Success 200 {object} Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /config/rates [get]
func (h *ConfigHandler) CurrentRates(c echo.Context) error {
	rates, err := h.rateService.CurrentRates(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, rates)
}

// AddSlots godoc
// @Summary Grow slot capacity toward per-type targets
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SlotTargetsRequest true "Target counts per vehicle type"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /config/slots [post]
func (h *ConfigHandler) AddSlots(c echo.Context) error {
	targets, err := h.bindTargets(c)
	if err != nil {
		return err
	}
	change, err := h.slotService.ExpandCapacity(c.Request().Context(), targets)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, change, "Slot capacity updated")
}

// RemoveSlots godoc
// @Summary Shrink slot capacity toward per-type targets
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SlotTargetsRequest true "Target counts per vehicle type"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /config/slots [delete]
func (h *ConfigHandler) RemoveSlots(c echo.Context) error {
	targets, err := h.bindTargets(c)
	if err != nil {
		return err
	}
	change, err := h.slotService.ShrinkCapacity(c.Request().Context(), targets)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, change, "Slot capacity updated")
}

// UpdateRates godoc
// @Summary Publish a new price revision
// @Tags config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRatesRequest true "New rates"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /config/rates [post]
func (h *ConfigHandler) UpdateRates(c echo.Context) error {
	var req UpdateRatesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	updates := make([]service.RateUpdate, 0, len(req.Rates))
	for _, entry := range req.Rates {
		baseRate, err := decimal.NewFromString(entry.BaseRate)
		if err != nil {
			return badRequest(c, "invalid baseRate for "+entry.VehicleType, "INVALID_AMOUNT")
		}
		additionalRate := decimal.Zero
		if entry.AdditionalRate != "" {
			additionalRate, err = decimal.NewFromString(entry.AdditionalRate)
			if err != nil {
				return badRequest(c, "invalid additionalRate for "+entry.VehicleType, "INVALID_AMOUNT")
			}
		}
		updates = append(updates, service.RateUpdate{
			VehicleType:    model.VehicleType(entry.VehicleType),
			BaseRate:       baseRate,
			AdditionalRate: additionalRate,
		})
	}

	rates, err := h.rateService.UpdateRates(c.Request().Context(), updates)
	if err != nil {
		return fail(c, err)
	}
	return okMessage(c, rates, "Rates updated successfully")
}

func (h *ConfigHandler) bindTargets(c echo.Context) (map[model.VehicleType]int, error) {
	var req SlotTargetsRequest
	if err := c.Bind(&req); err != nil {
		return nil, badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return nil, badRequest(c, err.Error(), "VALIDATION_ERROR")
	}
	targets := make(map[model.VehicleType]int, len(req.Slots))
	for raw, count := range req.Slots {
		targets[model.VehicleType(raw)] = count
	}
	return targets, nil
}
