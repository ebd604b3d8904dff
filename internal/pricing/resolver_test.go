package pricing

import (
	"context"
	"testing"

	"rentwheels-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBasePriceSource struct {
	mock.Mock
}

func (m *mockBasePriceSource) GetActiveBasePrice(ctx context.Context, vehicleModelID int64, rateType domain.RateType) (*domain.BasePrice, error) {
	args := m.Called(ctx, vehicleModelID, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasePrice), args.Error(1)
}

type mockVehicleSource struct {
	mock.Mock
}

func (m *mockVehicleSource) GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("Active base price wins", func(t *testing.T) {
		basePrices := new(mockBasePriceSource)
		vehicles := new(mockVehicleSource)
		basePrices.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeHourly).
			Return(&domain.BasePrice{VehicleModelID: 7, RateType: domain.RateTypeHourly, Amount: 120}, nil)

		rate, err := NewResolver(basePrices, vehicles).Resolve(ctx, 7, 42, domain.RateTypeHourly)
		assert.NoError(t, err)
		assert.Equal(t, 120.0, rate.Amount)
		assert.Equal(t, RateSourceBasePrice, rate.Source)
		vehicles.AssertNotCalled(t, "GetVehicle", mock.Anything, mock.Anything)
	})

	t.Run("Falls back to the legacy flat vehicle rate", func(t *testing.T) {
		basePrices := new(mockBasePriceSource)
		vehicles := new(mockVehicleSource)
		flat := 55.0
		basePrices.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeHourly).
			Return(nil, domain.ErrNotFound)
		vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7, FlatHourlyRate: &flat}, nil)

		rate, err := NewResolver(basePrices, vehicles).Resolve(ctx, 7, 42, domain.RateTypeHourly)
		assert.NoError(t, err)
		assert.Equal(t, 55.0, rate.Amount)
		assert.Equal(t, RateSourceVehicleFlat, rate.Source)
	})

	t.Run("Flat rate never serves daily or weekly requests", func(t *testing.T) {
		basePrices := new(mockBasePriceSource)
		vehicles := new(mockVehicleSource)
		flat := 55.0
		basePrices.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeDaily).
			Return(nil, domain.ErrNotFound)
		vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7, FlatHourlyRate: &flat}, nil)

		_, err := NewResolver(basePrices, vehicles).Resolve(ctx, 7, 42, domain.RateTypeDaily)
		assert.ErrorIs(t, err, domain.ErrNoBasePrice)
	})

	t.Run("No rate anywhere", func(t *testing.T) {
		basePrices := new(mockBasePriceSource)
		vehicles := new(mockVehicleSource)
		basePrices.On("GetActiveBasePrice", ctx, int64(7), domain.RateTypeHourly).
			Return(nil, domain.ErrNotFound)
		vehicles.On("GetVehicle", ctx, int64(42)).
			Return(&domain.Vehicle{ID: 42, ModelID: 7}, nil)

		_, err := NewResolver(basePrices, vehicles).Resolve(ctx, 7, 42, domain.RateTypeHourly)
		assert.ErrorIs(t, err, domain.ErrNoBasePrice)
	})
}
