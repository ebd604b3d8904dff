package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// Rental is the invariant-bearing financial aggregate. TotalAmount,
// OverageCharge, TotalExtensionPrice and DepositAmount are the four source
// fields; RemainingAmount is always derived from them, never tracked
// independently.
type Rental struct {
	ID                  int64         `json:"id"`
	CustomerID          int64         `json:"customer_id"`
	VehicleID           int64         `json:"vehicle_id"`
	VehicleModelID      int64         `json:"vehicle_model_id"`
	PackageID           *int64        `json:"package_id,omitempty"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	OdometerOutKm       float64       `json:"odometer_out_km"`
	OdometerInKm        *float64      `json:"odometer_in_km,omitempty"`
	RateType            RateType      `json:"rate_type"`
	UnitPrice           float64       `json:"unit_price"`
	TotalAmount         float64       `json:"total_amount"`
	OverageCharge       float64       `json:"overage_charge"`
	TotalExtensionPrice float64       `json:"total_extension_price"`
	ExtensionCount      int32         `json:"extension_count"`
	TotalExtendedHours  float64       `json:"total_extended_hours"`
	DepositAmount       float64       `json:"deposit_amount"`
	RemainingAmount     float64       `json:"remaining_amount"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	Status              RentalStatus  `json:"status"`
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           time.Time     `json:"updated_on"`
}

// RentalQuote is a booking price computed without persisting anything.
type RentalQuote struct {
	VehicleID   int64    `json:"vehicle_id"`
	RateType    RateType `json:"rate_type"`
	UnitPrice   float64  `json:"unit_price"`
	TotalAmount float64  `json:"total_amount"`
	Hours       float64  `json:"hours"`
}

// RecomputeRemaining re-derives RemainingAmount from the four source fields.
// remaining = max(0, total + overage + extensions - deposit)
func (r *Rental) RecomputeRemaining() {
	remaining := r.TotalAmount + r.OverageCharge + r.TotalExtensionPrice - r.DepositAmount
	if remaining < 0 {
		remaining = 0
	}
	r.RemainingAmount = remaining
}

// BookedHours is the duration currently covered by the rental, in hours.
// Approved extensions are already folded into EndDate, so this is also the
// elapsed-hours input for tier stepping.
func (r *Rental) BookedHours() float64 {
	return r.EndDate.Sub(r.StartDate).Hours()
}
