package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"parksys/internal/errors"
	"parksys/internal/model"
)

func TestRateService_BaseRate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		vehicleType model.VehicleType
		setupMock   func(*MockRateRepository)
		wantRate    int64
	}{
		{
			name:        "stored rate wins",
			vehicleType: model.VehicleTypeFourWheeler,
			setupMock: func(m *MockRateRepository) {
				m.On("FindCurrent", mock.Anything, model.VehicleTypeFourWheeler, now).Return(&model.ParkingRate{
					VehicleType: model.VehicleTypeFourWheeler,
					BaseRate:    decimal.NewFromInt(35),
				}, nil)
			},
			wantRate: 35,
		},
		{
			name:        "two wheeler falls back to 10",
			vehicleType: model.VehicleTypeTwoWheeler,
			setupMock: func(m *MockRateRepository) {
				m.On("FindCurrent", mock.Anything, model.VehicleTypeTwoWheeler, now).Return(nil, gorm.ErrRecordNotFound)
			},
			wantRate: 10,
		},
		{
			name:        "truck falls back to 50",
			vehicleType: model.VehicleTypeTruck,
			setupMock: func(m *MockRateRepository) {
				m.On("FindCurrent", mock.Anything, model.VehicleTypeTruck, now).Return(nil, gorm.ErrRecordNotFound)
			},
			wantRate: 50,
		},
		{
			name:        "bus falls back to 75",
			vehicleType: model.VehicleTypeBus,
			setupMock: func(m *MockRateRepository) {
				m.On("FindCurrent", mock.Anything, model.VehicleTypeBus, now).Return(nil, gorm.ErrRecordNotFound)
			},
			wantRate: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateRepo := new(MockRateRepository)
			tt.setupMock(rateRepo)

			svc := NewRateService(rateRepo)
			rate, err := svc.BaseRate(context.Background(), tt.vehicleType, now)

			assert.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.wantRate).Equal(rate), "rate = %s", rate)
			rateRepo.AssertExpectations(t)
		})
	}
}

func TestRateService_UpdateRates(t *testing.T) {
	tests := []struct {
		name          string
		updates       []RateUpdate
		setupMock     func(*MockRateRepository)
		expectedError error
	}{
		{
			name: "closes open rows and inserts new ones",
			updates: []RateUpdate{
				{VehicleType: model.VehicleTypeTwoWheeler, BaseRate: decimal.NewFromInt(15)},
				{VehicleType: model.VehicleTypeFourWheeler, BaseRate: decimal.NewFromInt(30)},
			},
			setupMock: func(m *MockRateRepository) {
				m.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.On("CloseOpen", mock.Anything, mock.Anything).Return(nil)
				m.On("CreateBatch", mock.Anything, mock.MatchedBy(func(rates []model.ParkingRate) bool {
					return len(rates) == 2 && rates[0].EffectiveUntil == nil
				})).Return(nil)
			},
		},
		{
			name:          "empty update rejected",
			updates:       nil,
			setupMock:     func(m *MockRateRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name: "non-positive rate rejected",
			updates: []RateUpdate{
				{VehicleType: model.VehicleTypeTwoWheeler, BaseRate: decimal.Zero},
			},
			setupMock:     func(m *MockRateRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name: "duplicate type rejected",
			updates: []RateUpdate{
				{VehicleType: model.VehicleTypeTruck, BaseRate: decimal.NewFromInt(60)},
				{VehicleType: model.VehicleTypeTruck, BaseRate: decimal.NewFromInt(55)},
			},
			setupMock:     func(m *MockRateRepository) {},
			expectedError: errors.ErrValidation,
		},
		{
			name: "unknown type rejected",
			updates: []RateUpdate{
				{VehicleType: model.VehicleType("bicycle"), BaseRate: decimal.NewFromInt(5)},
			},
			setupMock:     func(m *MockRateRepository) {},
			expectedError: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rateRepo := new(MockRateRepository)
			tt.setupMock(rateRepo)

			svc := NewRateService(rateRepo)
			rates, err := svc.UpdateRates(context.Background(), tt.updates)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rates)
			} else {
				assert.NoError(t, err)
				assert.Len(t, rates, len(tt.updates))
				for i, rate := range rates {
					assert.Equal(t, tt.updates[i].VehicleType, rate.VehicleType)
					assert.Equal(t, "INR", rate.Currency)
					// additionalRate defaults to the base rate when omitted
					assert.True(t, rate.AdditionalRate.Equal(tt.updates[i].BaseRate))
				}
			}
			rateRepo.AssertExpectations(t)
		})
	}
}
