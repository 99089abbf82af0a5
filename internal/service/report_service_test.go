package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"parksys/internal/model"
)

func TestReportService_DailySummary(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	slotRepo := new(MockSlotRepository)
	svc := NewReportService(recordRepo, slotRepo)

	day := time.Date(2026, 3, 15, 13, 45, 0, 0, time.Local)

	recordRepo.On("FindByEntryBetween", mock.Anything,
		mock.MatchedBy(func(from time.Time) bool {
			return from.Year() == 2026 && from.Month() == time.March && from.Day() == 15 && from.Hour() == 0
		}),
		mock.Anything,
	).Return([]model.ParkingRecord{
		{
			Amount:          decimal.NewFromInt(10),
			DurationMinutes: 45,
			Vehicle:         model.Vehicle{Type: model.VehicleTypeTwoWheeler},
		},
		{
			Amount:          decimal.NewFromInt(40),
			DurationMinutes: 95,
			Vehicle:         model.Vehicle{Type: model.VehicleTypeFourWheeler},
		},
		{
			Amount:          decimal.NewFromInt(20),
			DurationMinutes: 40,
			Vehicle:         model.Vehicle{Type: model.VehicleTypeFourWheeler},
		},
	}, nil)
	slotRepo.On("CountByStatus", mock.Anything).Return(map[model.SlotStatus]int64{
		model.SlotStatusAvailable: 40,
		model.SlotStatusOccupied:  10,
	}, nil)

	report, err := svc.DailySummary(context.Background(), day)

	assert.NoError(t, err)
	assert.Equal(t, "2026-03-15", report.Date)
	assert.Equal(t, 3, report.TotalVehicles)
	assert.True(t, decimal.NewFromInt(70).Equal(report.TotalRevenue), "revenue = %s", report.TotalRevenue)
	assert.Equal(t, 1, report.Breakdown[model.VehicleTypeTwoWheeler].Count)
	assert.Equal(t, 2, report.Breakdown[model.VehicleTypeFourWheeler].Count)
	assert.True(t, decimal.NewFromInt(60).Equal(report.Breakdown[model.VehicleTypeFourWheeler].Revenue))
	assert.Equal(t, 0, report.Breakdown[model.VehicleTypeBus].Count)
	assert.Equal(t, int64(60), report.AverageStayMin)
	assert.Equal(t, int64(10), report.OccupiedSlots)
	assert.Equal(t, int64(20), report.OccupancyRatePct)
	assert.NotEmpty(t, report.PeakHours)

	recordRepo.AssertExpectations(t)
	slotRepo.AssertExpectations(t)
}

func TestReportService_DailySummaryEmptyDay(t *testing.T) {
	recordRepo := new(MockRecordRepository)
	slotRepo := new(MockSlotRepository)
	svc := NewReportService(recordRepo, slotRepo)

	recordRepo.On("FindByEntryBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.ParkingRecord{}, nil)
	slotRepo.On("CountByStatus", mock.Anything).Return(map[model.SlotStatus]int64{
		model.SlotStatusAvailable: 50,
	}, nil)

	report, err := svc.DailySummary(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalVehicles)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.Equal(t, int64(0), report.AverageStayMin)
	assert.Equal(t, int64(0), report.OccupancyRatePct)
}
