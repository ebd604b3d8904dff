package service

import (
	"context"
	"testing"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type rentalFixture struct {
	rentalRepo *MockRentalRepo
	vehicles   *MockVehicleRepo
	configRepo *MockPricingConfigRepo
	svc        RentalService
}

func newRentalFixture() *rentalFixture {
	f := &rentalFixture{
		rentalRepo: new(MockRentalRepo),
		vehicles:   new(MockVehicleRepo),
		configRepo: new(MockPricingConfigRepo),
	}
	resolver := pricing.NewResolver(f.configRepo, f.vehicles)
	f.svc = NewRentalService(f.rentalRepo, f.vehicles, f.configRepo, resolver, 0)
	return f
}

func TestCreateRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Hourly booking runs through the tier stepping", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7, OdometerKm: 12000}, nil)
		f.configRepo.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeHourly).
			Return(&domain.BasePrice{Amount: 100, RateType: domain.RateTypeHourly}, nil)
		f.configRepo.On("ListActiveTiers", ctx, int64(7)).Return([]domain.PricingTier{
			{MinHours: 0, MaxHours: hoursPtr(2), Method: domain.CalculationMethodPercentage, DiscountPercent: 0},
			{MinHours: 2, MaxHours: hoursPtr(5), Method: domain.CalculationMethodPercentage, DiscountPercent: 10},
		}, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := f.svc.CreateRental(ctx, CreateRentalInput{
			CustomerID:    9,
			VehicleID:     42,
			StartDate:     start,
			EndDate:       start.Add(4 * time.Hour),
			DepositAmount: 100,
		})
		assert.NoError(t, err)
		assert.Equal(t, 380.0, rental.TotalAmount)
		assert.Equal(t, 280.0, rental.RemainingAmount)
		assert.Equal(t, 12000.0, rental.OdometerOutKm)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
	})

	t.Run("Manual unit price bypasses configuration", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7}, nil)
		f.configRepo.On("ListActiveTiers", ctx, int64(7)).Return([]domain.PricingTier{}, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := f.svc.CreateRental(ctx, CreateRentalInput{
			CustomerID:      9,
			VehicleID:       42,
			StartDate:       start,
			EndDate:         start.Add(2 * time.Hour),
			ManualUnitPrice: hoursPtr(60),
		})
		assert.NoError(t, err)
		assert.Equal(t, 60.0, rental.UnitPrice)
		assert.Equal(t, 120.0, rental.TotalAmount)
		f.configRepo.AssertNotCalled(t, "GetActiveBasePrice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Daily booking charges whole days", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7}, nil)
		f.configRepo.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeDaily).
			Return(&domain.BasePrice{Amount: 500, RateType: domain.RateTypeDaily}, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := f.svc.CreateRental(ctx, CreateRentalInput{
			CustomerID: 9,
			VehicleID:  42,
			StartDate:  start,
			EndDate:    start.Add(30 * time.Hour), // 1.25 days, charged as 2
			RateType:   domain.RateTypeDaily,
		})
		assert.NoError(t, err)
		assert.Equal(t, 1000.0, rental.TotalAmount)
	})

	t.Run("Quote prices without persisting", func(t *testing.T) {
		f := newRentalFixture()
		f.vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7}, nil)
		f.configRepo.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeHourly).
			Return(&domain.BasePrice{Amount: 100, RateType: domain.RateTypeHourly}, nil)
		f.configRepo.On("ListActiveTiers", ctx, int64(7)).Return([]domain.PricingTier{}, nil)

		quote, err := f.svc.QuoteRental(ctx, CreateRentalInput{
			VehicleID: 42,
			StartDate: start,
			EndDate:   start.Add(3 * time.Hour),
		})
		assert.NoError(t, err)
		assert.Equal(t, 300.0, quote.TotalAmount)
		assert.Equal(t, domain.RateTypeHourly, quote.RateType)
		f.rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		f := newRentalFixture()
		_, err := f.svc.CreateRental(ctx, CreateRentalInput{
			VehicleID: 42,
			StartDate: start,
			EndDate:   start,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})
}

func TestRecordReturn(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pkgID := int64(3)

	packageRental := func() *domain.Rental {
		return &domain.Rental{
			ID:             1,
			VehicleID:      42,
			VehicleModelID: 7,
			PackageID:      &pkgID,
			StartDate:      start,
			EndDate:        start.Add(48 * time.Hour),
			OdometerOutKm:  12000,
			TotalAmount:    300,
			DepositAmount:  200,
			Status:         domain.RentalStatusActive,
		}
	}

	t.Run("Overage charged for kilometers past the allowance", func(t *testing.T) {
		f := newRentalFixture()
		rental := packageRental()
		f.rentalRepo.On("GetByID", ctx, int64(1)).Return(rental, nil)
		f.configRepo.On("GetPackage", ctx, pkgID).
			Return(&domain.RentalPackage{ID: pkgID, IncludedKilometers: 200, ExtraKmRate: 2.5}, nil)

		updated := packageRental()
		updated.OverageCharge = 375
		updated.Status = domain.RentalStatusCompleted
		updated.RecomputeRemaining()
		f.rentalRepo.On("RecordReturn", ctx, int64(1), 12350.0, 375.0).Return(updated, nil)
		f.vehicles.On("UpdateOdometer", ctx, int64(42), 12350.0).Return(nil)

		got, audit, err := f.svc.RecordReturn(ctx, 1, 12350)
		assert.NoError(t, err)
		assert.Equal(t, 375.0, got.OverageCharge)
		assert.Equal(t, 475.0, got.RemainingAmount)
		assert.True(t, audit.Consistent) // nothing stored beforehand
		assert.Equal(t, 375.0, audit.Computed)
		f.vehicles.AssertExpectations(t)
	})

	t.Run("Stale stored overage is flagged, recomputed value wins", func(t *testing.T) {
		f := newRentalFixture()
		rental := packageRental()
		rental.OverageCharge = 100 // stale, disagrees with the odometer readings
		f.rentalRepo.On("GetByID", ctx, int64(1)).Return(rental, nil)
		f.configRepo.On("GetPackage", ctx, pkgID).
			Return(&domain.RentalPackage{ID: pkgID, IncludedKilometers: 200, ExtraKmRate: 2.5}, nil)

		updated := packageRental()
		updated.OverageCharge = 375
		updated.Status = domain.RentalStatusCompleted
		updated.RecomputeRemaining()
		f.rentalRepo.On("RecordReturn", ctx, int64(1), 12350.0, 375.0).Return(updated, nil)
		f.vehicles.On("UpdateOdometer", ctx, int64(42), 12350.0).Return(nil)

		got, audit, err := f.svc.RecordReturn(ctx, 1, 12350)
		assert.NoError(t, err)
		assert.False(t, audit.Consistent)
		assert.Equal(t, 100.0, audit.Stored)
		assert.Equal(t, 375.0, audit.Computed)
		assert.Equal(t, 375.0, got.OverageCharge)
	})

	t.Run("Completed rental cannot be returned again", func(t *testing.T) {
		f := newRentalFixture()
		rental := packageRental()
		rental.Status = domain.RentalStatusCompleted
		f.rentalRepo.On("GetByID", ctx, int64(1)).Return(rental, nil)

		_, _, err := f.svc.RecordReturn(ctx, 1, 12350)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	t.Run("Odometer below checkout reading is rejected", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("GetByID", ctx, int64(1)).Return(packageRental(), nil)

		_, _, err := f.svc.RecordReturn(ctx, 1, 11000)
		var inconsistency *domain.DataInconsistencyError
		assert.ErrorAs(t, err, &inconsistency)
		assert.Equal(t, 12000.0, inconsistency.Stored)
		assert.Equal(t, 11000.0, inconsistency.Computed)
		f.rentalRepo.AssertNotCalled(t, "RecordReturn",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
