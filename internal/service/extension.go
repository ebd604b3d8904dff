package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/pricing"
	"rentwheels-backend/internal/repository"
)

type extensionService struct {
	rentalRepo repository.RentalRepository
	extRepo    repository.ExtensionRepository
	configRepo repository.PricingConfigRepository
	resolver   *pricing.Resolver
	emailSvc   EmailService
	noteRepo   repository.NotificationRepository
}

func NewExtensionService(
	rentalRepo repository.RentalRepository,
	extRepo repository.ExtensionRepository,
	configRepo repository.PricingConfigRepository,
	resolver *pricing.Resolver,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) ExtensionService {
	return &extensionService{
		rentalRepo: rentalRepo,
		extRepo:    extRepo,
		configRepo: configRepo,
		resolver:   resolver,
		emailSvc:   emailSvc,
		noteRepo:   noteRepo,
	}
}

// CalculatePrice resolves the rental's base rate and steps the requested
// hours through the model's duration tiers. Pure: no writes, safe to call
// concurrently for the same rental.
//
// Tiers apply to cumulative rental duration: the walk starts at the hours
// the rental already covers, so a vehicle already past a tier boundary is
// priced in the deeper tier from the first extension hour.
func (s *extensionService) CalculatePrice(ctx context.Context, rentalID int64, hours float64) (*domain.ExtensionQuote, error) {
	if hours <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("load rental %d: %w", rentalID, err)
	}

	quote := &domain.ExtensionQuote{
		RentalID:   rentalID,
		Hours:      hours,
		NewEndDate: rental.EndDate.Add(hoursToDuration(hours)),
	}

	rateType := rental.RateType
	if rateType == "" {
		rateType = domain.RateTypeHourly
	}
	rate, err := s.resolver.Resolve(ctx, rental.VehicleModelID, rental.VehicleID, rateType)
	if errors.Is(err, domain.ErrNoBasePrice) {
		logger.Warn("No base price resolvable, extension requires manual entry",
			"rental_id", rentalID, "vehicle_model_id", rental.VehicleModelID, "hours", hours)
		quote.RequiresManualEntry = true
		quote.ErrorCode = domain.ErrorCodeNoBasePriceConfigured
		return quote, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve rate for rental %d: %w", rentalID, err)
	}

	tiers, err := s.configRepo.ListActiveTiers(ctx, rental.VehicleModelID)
	if err != nil {
		return nil, fmt.Errorf("load tiers for model %d: %w", rental.VehicleModelID, err)
	}

	// Extensions are priced per hour; daily and weekly rates are converted
	// to their hourly figure before tier stepping.
	hourlyRate := hourlyFigure(rate)
	stepped, err := pricing.ComputeSteppedPrice(hourlyRate, rental.BookedHours(), hours, tiers)
	if err != nil {
		return nil, err
	}

	quote.BaseRate = hourlyRate
	quote.RateSource = rate.Source
	quote.TotalPrice = stepped.Total
	quote.Breakdown = stepped.Lines
	quote.TotalSavings = pricing.RoundCurrency(hours*hourlyRate - stepped.Total)
	return quote, nil
}

func hourlyFigure(rate *pricing.BaseRate) float64 {
	switch rate.RateType {
	case domain.RateTypeDaily:
		return rate.Amount / 24
	case domain.RateTypeWeekly:
		return rate.Amount / (24 * 7)
	default:
		return rate.Amount
	}
}

func (s *extensionService) CreateRequest(ctx context.Context, req domain.ExtensionRequest) (*domain.Extension, error) {
	if req.Hours <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	ext := &domain.Extension{
		Reference:   uuid.NewString(),
		RentalID:    req.RentalID,
		Hours:       req.Hours,
		Status:      domain.ExtensionStatusPending,
		RequestedBy: req.RequestedBy,
	}

	// Price precedence: a manually entered price always wins over the
	// computed one. Manual prices bypass the tier engine entirely and carry
	// no tier metadata.
	if req.ManualPrice != nil {
		ext.Price = pricing.RoundCurrency(*req.ManualPrice)
		ext.PriceSource = domain.PriceSourceManual
	} else {
		quote, err := s.CalculatePrice(ctx, req.RentalID, req.Hours)
		if err != nil {
			return nil, err
		}
		if quote.RequiresManualEntry {
			return nil, domain.ErrNoBasePrice
		}
		ext.Price = quote.TotalPrice
		ext.PriceSource = domain.PriceSourceAuto
		ext.TierApplied = tierSummary(quote.Breakdown)
	}

	if req.AutoApprove {
		// Auto-approved requests persist the extension and mutate the rental
		// in one transaction; the repository guarantees both-or-neither.
		if _, err := s.extRepo.CreateApproved(ctx, ext, req.RequestedBy); err != nil {
			return nil, fmt.Errorf("auto-approve extension for rental %d (%g h): %w", req.RentalID, req.Hours, err)
		}
		logger.Info("Extension auto-approved",
			"rental_id", req.RentalID, "reference", ext.Reference, "hours", ext.Hours, "price", ext.Price)
	} else {
		if err := s.extRepo.Create(ctx, ext); err != nil {
			return nil, fmt.Errorf("create extension for rental %d (%g h): %w", req.RentalID, req.Hours, err)
		}
		logger.Info("Extension request created",
			"rental_id", req.RentalID, "reference", ext.Reference, "hours", ext.Hours, "price", ext.Price, "source", ext.PriceSource)
	}

	s.notify(ctx, req.RequestedBy, "Extension Requested",
		fmt.Sprintf("Extension %s for rental %d: %g hours at %.2f", ext.Reference, req.RentalID, ext.Hours, ext.Price),
		ext)
	if err := s.emailSvc.SendExtensionRequestNotification(ctx, ext.Reference, req.RentalID, ext.Hours, ext.Price); err != nil {
		logger.Error("Failed to send extension request email", "reference", ext.Reference, "error", err)
	}

	return ext, nil
}

func (s *extensionService) Approve(ctx context.Context, extensionID, approverID int64) (*domain.Extension, *domain.Rental, error) {
	ext, rental, err := s.extRepo.ApproveAndApply(ctx, extensionID, approverID)
	if err != nil {
		return nil, nil, fmt.Errorf("approve extension %d: %w", extensionID, err)
	}

	logger.Info("Extension approved",
		"extension_id", extensionID, "rental_id", rental.ID, "approved_by", approverID,
		"new_end_date", rental.EndDate, "remaining_amount", rental.RemainingAmount)

	s.notify(ctx, ext.RequestedBy, "Extension Approved",
		fmt.Sprintf("Extension %s was approved; rental %d now ends %s", ext.Reference, rental.ID, rental.EndDate.Format("2006-01-02 15:04")),
		ext)
	if err := s.emailSvc.SendExtensionDecisionNotification(ctx, ext.Reference, rental.ID, "approved"); err != nil {
		logger.Error("Failed to send extension approval email", "reference", ext.Reference, "error", err)
	}

	return ext, rental, nil
}

func (s *extensionService) Reject(ctx context.Context, extensionID, approverID int64) (*domain.Extension, error) {
	ext, err := s.extRepo.Reject(ctx, extensionID, approverID)
	if err != nil {
		return nil, fmt.Errorf("reject extension %d: %w", extensionID, err)
	}

	logger.Info("Extension rejected", "extension_id", extensionID, "rental_id", ext.RentalID, "rejected_by", approverID)

	s.notify(ctx, ext.RequestedBy, "Extension Rejected",
		fmt.Sprintf("Extension %s for rental %d was rejected", ext.Reference, ext.RentalID),
		ext)
	if err := s.emailSvc.SendExtensionDecisionNotification(ctx, ext.Reference, ext.RentalID, "rejected"); err != nil {
		logger.Error("Failed to send extension rejection email", "reference", ext.Reference, "error", err)
	}

	return ext, nil
}

func (s *extensionService) ListByRental(ctx context.Context, rentalID int64) ([]domain.Extension, error) {
	return s.extRepo.ListByRental(ctx, rentalID)
}

func (s *extensionService) notify(ctx context.Context, userID int64, title, message string, ext *domain.Extension) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":      "EXTENSION",
			"reference": ext.Reference,
			"rental_id": fmt.Sprintf("%d", ext.RentalID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to create notification", "user_id", userID, "reference", ext.Reference, "error", err)
	}
}

// tierSummary condenses a breakdown into the tier_applied audit field,
// e.g. "0-2h, 2-5h". Fallback segments past the last tier carry no label.
func tierSummary(lines []domain.BreakdownLine) string {
	var labels []string
	for _, line := range lines {
		if line.Tier != "" {
			labels = append(labels, line.Tier)
		}
	}
	return strings.Join(labels, ", ")
}
