package notify

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"parksys/internal/model"
)

// EntryData carries the fields of an entry confirmation.
type EntryData struct {
	RegistrationNumber string
	VehicleType        model.VehicleType
	OwnerName          string
	SlotNumber         string
	EntryTime          time.Time
	Rate               decimal.Decimal
}

// ExitData carries the fields of an exit receipt.
type ExitData struct {
	RegistrationNumber string
	OwnerName          string
	DurationMinutes    int64
	Amount             decimal.Decimal
	PaymentMethod      model.PaymentMethod
	ReceiptID          string
}

const timeLayout = "02 Jan 2006 15:04"

// RenderEntryEmail renders the entry confirmation email.
func RenderEntryEmail(d EntryData) (subject, html string) {
	subject = "Vehicle Entry Confirmation - ParkSys"
	html = fmt.Sprintf(`<html><body>
<h2>Vehicle Entry Confirmation</h2>
<p>Hello %s,</p>
<p>Your vehicle has been parked successfully.</p>
<ul>
  <li><strong>Registration:</strong> %s</li>
  <li><strong>Vehicle Type:</strong> %s</li>
  <li><strong>Slot:</strong> %s</li>
  <li><strong>Entry Time:</strong> %s</li>
  <li><strong>Rate:</strong> ₹%s/hour</li>
</ul>
<p>ParkSys Parking Management</p>
</body></html>`,
		displayName(d.OwnerName),
		d.RegistrationNumber,
		d.VehicleType,
		d.SlotNumber,
		d.EntryTime.Format(timeLayout),
		d.Rate.StringFixed(0),
	)
	return subject, html
}

// RenderEntrySMS renders the entry confirmation SMS text.
func RenderEntrySMS(d EntryData) string {
	return fmt.Sprintf("ParkSys: Vehicle %s parked in slot %s at %s. Rate ₹%s/hour.",
		d.RegistrationNumber, d.SlotNumber, d.EntryTime.Format("15:04"), d.Rate.StringFixed(0))
}

// RenderExitEmail renders the payment receipt email.
func RenderExitEmail(d ExitData) (subject, html string) {
	subject = "Payment Receipt - ParkSys"
	html = fmt.Sprintf(`<html><body>
<h2>Payment Receipt</h2>
<p>Hello %s,</p>
<p>Thank you for using ParkSys.</p>
<table>
  <tr><td>Receipt</td><td>%s</td></tr>
  <tr><td>Registration</td><td>%s</td></tr>
  <tr><td>Duration</td><td>%s</td></tr>
  <tr><td>Payment Method</td><td>%s</td></tr>
  <tr><td><strong>Total Amount</strong></td><td><strong>₹%s</strong></td></tr>
</table>
<p>ParkSys Parking Management</p>
</body></html>`,
		displayName(d.OwnerName),
		d.ReceiptID,
		d.RegistrationNumber,
		formatDuration(d.DurationMinutes),
		d.PaymentMethod,
		d.Amount.StringFixed(0),
	)
	return subject, html
}

// RenderExitSMS renders the exit receipt SMS text.
func RenderExitSMS(d ExitData) string {
	return fmt.Sprintf("ParkSys: Vehicle %s exited. Duration %s, amount ₹%s (%s). Receipt %s.",
		d.RegistrationNumber, formatDuration(d.DurationMinutes), d.Amount.StringFixed(0),
		d.PaymentMethod, d.ReceiptID)
}

func displayName(name string) string {
	if name == "" {
		return "Customer"
	}
	return name
}

func formatDuration(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// SampleEntryData returns representative data for template previews.
func SampleEntryData() EntryData {
	return EntryData{
		RegistrationNumber: "KA01AB1234",
		VehicleType:        model.VehicleTypeTwoWheeler,
		OwnerName:          "Preview User",
		SlotNumber:         "A01",
		EntryTime:          time.Now(),
		Rate:               decimal.NewFromInt(10),
	}
}

// SampleExitData returns representative data for template previews.
func SampleExitData() ExitData {
	return ExitData{
		RegistrationNumber: "KA01AB1234",
		OwnerName:          "Preview User",
		DurationMinutes:    95,
		Amount:             decimal.NewFromInt(20),
		PaymentMethod:      model.PaymentMethodUPI,
		ReceiptID:          "RCP-1700000000000",
	}
}
