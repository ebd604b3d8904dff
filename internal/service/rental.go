package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/pricing"
	"rentwheels-backend/internal/repository"
)

type rentalService struct {
	rentalRepo       repository.RentalRepository
	vehicleRepo      repository.VehicleRepository
	configRepo       repository.PricingConfigRepository
	resolver         *pricing.Resolver
	overageTolerance float64
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	configRepo repository.PricingConfigRepository,
	resolver *pricing.Resolver,
	overageTolerance float64,
) RentalService {
	if overageTolerance <= 0 {
		overageTolerance = pricing.DefaultOverageTolerance
	}
	return &rentalService{
		rentalRepo:       rentalRepo,
		vehicleRepo:      vehicleRepo,
		configRepo:       configRepo,
		resolver:         resolver,
		overageTolerance: overageTolerance,
	}
}

func (s *rentalService) QuoteRental(ctx context.Context, input CreateRentalInput) (*domain.RentalQuote, error) {
	hours := input.EndDate.Sub(input.StartDate).Hours()
	if hours <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	vehicle, err := s.vehicleRepo.GetVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("load vehicle %d: %w", input.VehicleID, err)
	}

	unitPrice, total, rateType, err := s.priceBooking(ctx, vehicle, input, hours)
	if err != nil {
		return nil, err
	}
	return &domain.RentalQuote{
		VehicleID:   vehicle.ID,
		RateType:    rateType,
		UnitPrice:   unitPrice,
		TotalAmount: total,
		Hours:       hours,
	}, nil
}

func (s *rentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	hours := input.EndDate.Sub(input.StartDate).Hours()
	if hours <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	vehicle, err := s.vehicleRepo.GetVehicle(ctx, input.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("load vehicle %d: %w", input.VehicleID, err)
	}

	unitPrice, total, rateType, err := s.priceBooking(ctx, vehicle, input, hours)
	if err != nil {
		return nil, err
	}

	rental := &domain.Rental{
		CustomerID:     input.CustomerID,
		VehicleID:      vehicle.ID,
		VehicleModelID: vehicle.ModelID,
		PackageID:      input.PackageID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		OdometerOutKm:  vehicle.OdometerKm,
		RateType:       rateType,
		UnitPrice:      unitPrice,
		TotalAmount:    total,
		DepositAmount:  input.DepositAmount,
		PaymentStatus:  domain.PaymentStatusUnpaid,
		Status:         domain.RentalStatusActive,
	}
	rental.RecomputeRemaining()

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("create rental for vehicle %d: %w", vehicle.ID, err)
	}

	logger.Info("Rental created",
		"rental_id", rental.ID, "vehicle_id", vehicle.ID, "customer_id", input.CustomerID,
		"total_amount", rental.TotalAmount, "remaining_amount", rental.RemainingAmount)
	return rental, nil
}

// priceBooking resolves the unit price with the declared precedence rule
// (manual > package configuration > resolved rate) and computes the booking
// total. Hourly bookings run through the same tier stepping as extensions,
// starting at zero elapsed hours; daily and weekly bookings charge whole
// units, rounded up. The returned rate type is the effective one, which a
// package may override.
func (s *rentalService) priceBooking(ctx context.Context, vehicle *domain.Vehicle, input CreateRentalInput, hours float64) (unitPrice, total float64, rateType domain.RateType, err error) {
	rateType = input.RateType
	if rateType == "" {
		rateType = domain.RateTypeHourly
	}

	switch {
	case input.ManualUnitPrice != nil:
		unitPrice = pricing.RoundCurrency(*input.ManualUnitPrice)
	case input.PackageID != nil:
		pkg, pkgErr := s.configRepo.GetPackage(ctx, *input.PackageID)
		if pkgErr != nil {
			return 0, 0, rateType, fmt.Errorf("load package %d: %w", *input.PackageID, pkgErr)
		}
		unitPrice = pkg.BasePrice
		rateType = pkg.RateType
	default:
		rate, resErr := s.resolver.Resolve(ctx, vehicle.ModelID, vehicle.ID, rateType)
		if resErr != nil {
			return 0, 0, rateType, fmt.Errorf("resolve rate for vehicle %d: %w", vehicle.ID, resErr)
		}
		unitPrice = rate.Amount
	}

	if rateType == domain.RateTypeHourly {
		tiers, tierErr := s.configRepo.ListActiveTiers(ctx, vehicle.ModelID)
		if tierErr != nil {
			return 0, 0, rateType, fmt.Errorf("load tiers for model %d: %w", vehicle.ModelID, tierErr)
		}
		stepped, stepErr := pricing.ComputeSteppedPrice(unitPrice, 0, hours, tiers)
		if stepErr != nil {
			return 0, 0, rateType, stepErr
		}
		return unitPrice, stepped.Total, rateType, nil
	}

	unitHours := 24.0
	if rateType == domain.RateTypeWeekly {
		unitHours = 24 * 7
	}
	units := math.Ceil(hours / unitHours)
	return unitPrice, pricing.RoundCurrency(units * unitPrice), rateType, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *rentalService) RecordReturn(ctx context.Context, rentalID int64, odometerInKm float64) (*domain.Rental, *pricing.OverageAudit, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, nil, fmt.Errorf("load rental %d: %w", rentalID, err)
	}
	if rental.Status != domain.RentalStatusActive && rental.Status != domain.RentalStatusOverdue {
		return nil, nil, fmt.Errorf("rental %d is %s: %w", rentalID, rental.Status, domain.ErrInvalidStateTransition)
	}
	if odometerInKm < rental.OdometerOutKm {
		// A return reading below the checkout snapshot means one of the two
		// is wrong; surface both rather than guessing.
		return nil, nil, &domain.DataInconsistencyError{
			Field:    "odometer_in_km",
			Stored:   rental.OdometerOutKm,
			Computed: odometerInKm,
		}
	}

	kmDriven := odometerInKm - rental.OdometerOutKm
	var computed float64
	if rental.PackageID != nil {
		pkg, err := s.configRepo.GetPackage(ctx, *rental.PackageID)
		if err != nil {
			return nil, nil, fmt.Errorf("load package %d: %w", *rental.PackageID, err)
		}
		computed = pricing.ComputeOverage(kmDriven, pkg.IncludedKilometers, pkg.ExtraKmRate)
	}

	// Audit a previously stored overage against the recomputed value. A zero
	// stored charge means nothing was recorded yet and is not a divergence.
	// The recomputed value wins for the write; a stale stored one is
	// surfaced, never silently discarded.
	audit := pricing.OverageAudit{Computed: computed, Consistent: true}
	if rental.OverageCharge != 0 {
		audit = pricing.AuditOverage(rental.OverageCharge, computed, s.overageTolerance)
		if !audit.Consistent {
			logger.Warn("Stored overage charge disagrees with recomputed value",
				"rental_id", rentalID, "stored", audit.Stored, "computed", audit.Computed)
		}
	}

	updated, err := s.rentalRepo.RecordReturn(ctx, rentalID, odometerInKm, computed)
	if err != nil {
		return nil, nil, fmt.Errorf("record return for rental %d: %w", rentalID, err)
	}
	if err := s.vehicleRepo.UpdateOdometer(ctx, rental.VehicleID, odometerInKm); err != nil {
		logger.Error("Failed to update vehicle odometer", "vehicle_id", rental.VehicleID, "error", err)
	}

	logger.Info("Rental returned",
		"rental_id", rentalID, "km_driven", kmDriven, "overage_charge", computed,
		"remaining_amount", updated.RemainingAmount)
	return updated, &audit, nil
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
