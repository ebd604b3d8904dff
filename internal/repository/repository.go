package repository

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"
)

type VehicleRepository interface {
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetModel(ctx context.Context, id int64) (*domain.VehicleModel, error)
	UpdateOdometer(ctx context.Context, vehicleID int64, odometerKm float64) error
}

// PricingConfigRepository reads pricing configuration. Configuration is
// administrator-maintained and read-only to the engine.
type PricingConfigRepository interface {
	GetActiveBasePrice(ctx context.Context, vehicleModelID int64, rateType domain.RateType) (*domain.BasePrice, error)
	ListActiveTiers(ctx context.Context, vehicleModelID int64) ([]domain.PricingTier, error)
	GetPackage(ctx context.Context, id int64) (*domain.RentalPackage, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// RecordReturn atomically writes the return odometer and recomputed
	// overage charge, re-derives the remaining amount in the same statement,
	// and marks the rental completed.
	RecordReturn(ctx context.Context, rentalID int64, odometerInKm, overageCharge float64) (*domain.Rental, error)
	// MarkOverdue flips active rentals whose end date has passed to OVERDUE
	// and returns the affected rental IDs.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]int64, error)
	// ListCompletedWithPackage returns completed package rentals updated since
	// the given time, for the overage audit sweep.
	ListCompletedWithPackage(ctx context.Context, since time.Time) ([]domain.Rental, error)
}

// ExtensionRepository owns the extension lifecycle writes. The approve/apply
// pair must land in a single transaction: the extension status flip and the
// rental totals mutation either both commit or neither does.
type ExtensionRepository interface {
	Create(ctx context.Context, ext *domain.Extension) error
	// CreateApproved persists an extension directly in APPROVED status and
	// applies it to the rental in the same transaction (auto-approve path).
	CreateApproved(ctx context.Context, ext *domain.Extension, approverID int64) (*domain.Rental, error)
	GetByID(ctx context.Context, id int64) (*domain.Extension, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Extension, error)
	// ApproveAndApply transitions PENDING -> APPROVED and applies the
	// extension to the rental's totals as one atomic read-modify-write,
	// serialized per rental by the row lock. A non-pending extension yields
	// domain.ErrAlreadyApproved or domain.ErrInvalidStateTransition.
	ApproveAndApply(ctx context.Context, extensionID, approverID int64) (*domain.Extension, *domain.Rental, error)
	Reject(ctx context.Context, extensionID, approverID int64) (*domain.Extension, error)
	// ListPendingOlderThan returns extensions still pending whose request
	// predates the cutoff, oldest first.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Extension, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}
