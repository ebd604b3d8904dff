package domain

import "time"

type RateType string

const (
	RateTypeHourly RateType = "HOURLY"
	RateTypeDaily  RateType = "DAILY"
	RateTypeWeekly RateType = "WEEKLY"
)

type CalculationMethod string

const (
	CalculationMethodPercentage CalculationMethod = "PERCENTAGE"
	CalculationMethodFixed      CalculationMethod = "FIXED"
)

// BasePrice is the undiscounted per-unit rate configured for a vehicle model.
// At most one active record exists per (model, rate type); administrators
// deactivate the old record when publishing a new one.
type BasePrice struct {
	ID             int64     `json:"id"`
	VehicleModelID int64     `json:"vehicle_model_id"`
	RateType       RateType  `json:"rate_type"`
	Amount         float64   `json:"amount"`
	IsActive       bool      `json:"is_active"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}

// PricingTier is a contiguous duration range carrying either a percentage
// discount off the base rate or a fixed replacement rate. MaxHours nil means
// the tier is unbounded. Tiers for a model must not overlap and are always
// read ordered by MinHours.
type PricingTier struct {
	ID              int64             `json:"id"`
	VehicleModelID  int64             `json:"vehicle_model_id"`
	MinHours        float64           `json:"min_hours"`
	MaxHours        *float64          `json:"max_hours,omitempty"`
	Method          CalculationMethod `json:"calculation_method"`
	DiscountPercent float64           `json:"discount_percentage"`
	PriceAmount     float64           `json:"price_amount"`
	IsActive        bool              `json:"is_active"`
}

// RentalPackage is a named pricing bundle attachable to a rental: a base
// price under a rate type plus a kilometer allowance and per-km overage rate.
type RentalPackage struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	IncludedKilometers float64  `json:"included_kilometers"`
	ExtraKmRate        float64  `json:"extra_km_rate"`
	BasePrice          float64  `json:"base_price"`
	RateType           RateType `json:"rate_type"`
	IsActive           bool     `json:"is_active"`
}
