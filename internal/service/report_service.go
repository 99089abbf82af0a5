package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"parksys/internal/model"
	"parksys/internal/repository"
)

// TypeBreakdown is one vehicle category's share of a daily report.
type TypeBreakdown struct {
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyReport summarizes one calendar day of completed stays plus the
// facility's occupancy at report time.
type DailyReport struct {
	Date             string                              `json:"date"`
	TotalVehicles    int                                 `json:"totalVehicles"`
	TotalRevenue     decimal.Decimal                     `json:"totalRevenue"`
	Breakdown        map[model.VehicleType]TypeBreakdown `json:"breakdown"`
	AverageStayMin   int64                               `json:"averageStayDuration"`
	PeakHours        []string                            `json:"peakHours"`
	OccupiedSlots    int64                               `json:"occupiedSlots"`
	AvailableSlots   int64                               `json:"availableSlots"`
	OccupancyRatePct int64                               `json:"occupancyRate"`
}

// ReportService produces operational summaries.
type ReportService interface {
	DailySummary(ctx context.Context, date time.Time) (*DailyReport, error)
}

type reportService struct {
	recordRepo repository.RecordRepository
	slotRepo   repository.SlotRepository
}

// NewReportService creates a new report service.
func NewReportService(recordRepo repository.RecordRepository, slotRepo repository.SlotRepository) ReportService {
	return &reportService{recordRepo: recordRepo, slotRepo: slotRepo}
}

// DailySummary folds the day's records into totals and a per-type breakdown.
func (s *reportService) DailySummary(ctx context.Context, date time.Time) (*DailyReport, error) {
	start, end := dayBounds(date)
	records, err := s.recordRepo.FindByEntryBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	report := &DailyReport{
		Date:         start.Format("2006-01-02"),
		TotalRevenue: decimal.Zero,
		Breakdown:    make(map[model.VehicleType]TypeBreakdown, len(model.VehicleTypes)),
		PeakHours:    peakHourBands,
	}
	for _, vehicleType := range model.VehicleTypes {
		report.Breakdown[vehicleType] = TypeBreakdown{Revenue: decimal.Zero}
	}

	var totalMinutes int64
	for _, record := range records {
		report.TotalVehicles++
		report.TotalRevenue = report.TotalRevenue.Add(record.Amount)
		totalMinutes += record.DurationMinutes

		entry := report.Breakdown[record.Vehicle.Type]
		entry.Count++
		entry.Revenue = entry.Revenue.Add(record.Amount)
		report.Breakdown[record.Vehicle.Type] = entry
	}
	if report.TotalVehicles > 0 {
		report.AverageStayMin = totalMinutes / int64(report.TotalVehicles)
	}

	byStatus, err := s.slotRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}
	report.OccupiedSlots = byStatus[model.SlotStatusOccupied]
	report.AvailableSlots = byStatus[model.SlotStatusAvailable]
	total := report.OccupiedSlots + report.AvailableSlots + byStatus[model.SlotStatusReserved] + byStatus[model.SlotStatusMaintenance]
	if total > 0 {
		report.OccupancyRatePct = report.OccupiedSlots * 100 / total
	}
	return report, nil
}
