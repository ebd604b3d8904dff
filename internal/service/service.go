package service

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/pricing"
)

// CreateRentalInput carries a booking request. ManualUnitPrice, when set,
// takes priority over any configured or resolved rate (manual > existing
// configuration > inferred).
type CreateRentalInput struct {
	CustomerID      int64
	VehicleID       int64
	PackageID       *int64
	StartDate       time.Time
	EndDate         time.Time
	RateType        domain.RateType
	DepositAmount   float64
	ManualUnitPrice *float64
}

type ExtensionService interface {
	// CalculatePrice prices an extension without persisting anything. When no
	// rate is resolvable the quote carries RequiresManualEntry instead of an
	// error, so the workflow can degrade to manual price entry.
	CalculatePrice(ctx context.Context, rentalID int64, hours float64) (*domain.ExtensionQuote, error)
	CreateRequest(ctx context.Context, req domain.ExtensionRequest) (*domain.Extension, error)
	Approve(ctx context.Context, extensionID, approverID int64) (*domain.Extension, *domain.Rental, error)
	Reject(ctx context.Context, extensionID, approverID int64) (*domain.Extension, error)
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Extension, error)
}

type RentalService interface {
	// QuoteRental prices a booking without persisting anything.
	QuoteRental(ctx context.Context, input CreateRentalInput) (*domain.RentalQuote, error)
	CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// RecordReturn computes the kilometer overage from the odometer reading,
	// audits any previously stored overage against the recomputed value, and
	// completes the rental. The audit is returned even when consistent.
	RecordReturn(ctx context.Context, rentalID int64, odometerInKm float64) (*domain.Rental, *pricing.OverageAudit, error)
}

type EmailService interface {
	SendExtensionRequestNotification(ctx context.Context, reference string, rentalID int64, hours, price float64) error
	SendExtensionDecisionNotification(ctx context.Context, reference string, rentalID int64, decision string) error
	SendPendingExtensionReminder(ctx context.Context, pendingCount int, oldestReference string) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int64, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) error
}
