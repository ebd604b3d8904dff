package domain

import "time"

// VehicleModel groups vehicles that share pricing configuration.
type VehicleModel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Vehicle is a physical unit of a model.
//
// FlatHourlyRate is the legacy per-vehicle rate from before base prices were
// configured per model. It survives only as the resolver's fallback and is
// not editable through this backend.
type Vehicle struct {
	ID             int64     `json:"id"`
	ModelID        int64     `json:"model_id"`
	Plate          string    `json:"plate"`
	FlatHourlyRate *float64  `json:"flat_hourly_rate,omitempty"`
	OdometerKm     float64   `json:"odometer_km"`
	CreatedOn      time.Time `json:"created_on"`
	UpdatedOn      time.Time `json:"updated_on"`
}
