package pricing

import (
	"context"
	"errors"
	"fmt"

	"rentwheels-backend/internal/domain"
)

// Rate sources, in resolution order.
const (
	RateSourceBasePrice   = "base_price"
	RateSourceVehicleFlat = "vehicle_flat"
	RateSourceManual      = "manual"
)

// BaseRate is a resolved rate together with where it came from.
type BaseRate struct {
	Amount   float64
	RateType domain.RateType
	Source   string
}

// BasePriceSource supplies active base price records.
type BasePriceSource interface {
	GetActiveBasePrice(ctx context.Context, vehicleModelID int64, rateType domain.RateType) (*domain.BasePrice, error)
}

// VehicleSource supplies vehicles, needed for the legacy flat-rate fallback.
type VehicleSource interface {
	GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error)
}

// Resolver resolves the applicable base rate for a vehicle. It prefers the
// active BasePrice record for (model, rate type) and falls back to the
// deprecated flat rate stored on the vehicle itself, which is how rates were
// configured before per-model pricing existed. Read-only; no side effects.
type Resolver struct {
	basePrices BasePriceSource
	vehicles   VehicleSource
}

func NewResolver(basePrices BasePriceSource, vehicles VehicleSource) *Resolver {
	return &Resolver{basePrices: basePrices, vehicles: vehicles}
}

// Resolve returns the base rate for the given model and rate type, or
// domain.ErrNoBasePrice when no rate exists anywhere. Callers translate that
// into a requires-manual-entry result rather than failing the flow.
func (r *Resolver) Resolve(ctx context.Context, vehicleModelID, vehicleID int64, rateType domain.RateType) (*BaseRate, error) {
	bp, err := r.basePrices.GetActiveBasePrice(ctx, vehicleModelID, rateType)
	if err == nil {
		return &BaseRate{Amount: bp.Amount, RateType: bp.RateType, Source: RateSourceBasePrice}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve base price for model %d: %w", vehicleModelID, err)
	}

	// Legacy fallback: flat hourly rate on the vehicle record.
	vehicle, err := r.vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoBasePrice
		}
		return nil, fmt.Errorf("resolve flat rate for vehicle %d: %w", vehicleID, err)
	}
	if rateType == domain.RateTypeHourly && vehicle.FlatHourlyRate != nil && *vehicle.FlatHourlyRate > 0 {
		return &BaseRate{Amount: *vehicle.FlatHourlyRate, RateType: domain.RateTypeHourly, Source: RateSourceVehicleFlat}, nil
	}

	return nil, domain.ErrNoBasePrice
}
