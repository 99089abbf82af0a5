package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"parksys/internal/notify"
	"parksys/internal/service"
)

// NotifyHandler exposes notification template previews and delivery checks.
type NotifyHandler struct {
	notifier service.Notifier
}

// NewNotifyHandler creates a new notification handler.
func NewNotifyHandler(notifier service.Notifier) *NotifyHandler {
	return &NotifyHandler{notifier: notifier}
}

// PreviewRequest selects which template to render.
type PreviewRequest struct {
	Template string `json:"template" validate:"required,oneof=entry exit"`
}

// PreviewResponse carries a rendered template pair.
type PreviewResponse struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	SMS     string `json:"sms"`
}

// TestNotificationsRequest carries the destination for a delivery check.
type TestNotificationsRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Preview godoc
// @Summary Render a notification template with sample data
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body PreviewRequest true "Template name"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /email/preview [post]
func (h *NotifyHandler) Preview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}

	var resp PreviewResponse
	switch req.Template {
	case "entry":
		data := notify.SampleEntryData()
		resp.Subject, resp.HTML = notify.RenderEntryEmail(data)
		resp.SMS = notify.RenderEntrySMS(data)
	case "exit":
		data := notify.SampleExitData()
		resp.Subject, resp.HTML = notify.RenderExitEmail(data)
		resp.SMS = notify.RenderExitSMS(data)
	}
	return ok(c, resp)
}

// TestNotifications godoc
// @Summary Queue sample notifications to the given contacts
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body TestNotificationsRequest true "Destination contacts"
// @Success 202 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Router /parking/test-notifications [post]
func (h *NotifyHandler) TestNotifications(c echo.Context) error {
	var req TestNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error(), "VALIDATION_ERROR")
	}
	if req.Email == "" && req.PhoneNumber == "" {
		return badRequest(c, "email or phoneNumber is required", "VALIDATION_ERROR")
	}

	h.notifier.NotifyEntry(notify.SampleEntryData(), req.Email, req.PhoneNumber)
	h.notifier.NotifyExit(notify.SampleExitData(), req.Email, req.PhoneNumber)

	return c.JSON(http.StatusAccepted, Envelope{
		Success: true,
		Message: "Test notifications queued",
	})
}
