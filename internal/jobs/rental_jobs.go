package jobs

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/pricing"
)

// auditLookback bounds the overage audit sweep to recently completed rentals.
const auditLookback = 30 * 24 * time.Hour

// MarkOverdueRentals marks rentals as OVERDUE if they are past their end_date
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		ids, err := jr.store.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", len(ids))
		for _, id := range ids {
			logger.Debug("Marked rental as overdue", "rental_id", id)
		}
	})
}

// AuditOverageCharges recomputes the kilometer overage for recently completed
// package rentals and flags any stored charge that drifted from the value the
// odometer readings imply. The audit only reports; it never rewrites history.
func (jr *JobRunner) AuditOverageCharges() {
	jr.runWithRecovery("AuditOverageCharges", func() {
		ctx := context.Background()
		tolerance := jr.config.Pricing.OverageTolerance

		rentals, err := jr.store.ListCompletedWithPackage(ctx, time.Now().Add(-auditLookback))
		if err != nil {
			logger.Error("Failed to list completed package rentals", "error", err)
			return
		}

		inconsistent := 0
		for i := range rentals {
			rental := &rentals[i]
			if rental.OdometerInKm == nil {
				logger.Warn("Completed rental has no return odometer", "rental_id", rental.ID)
				continue
			}

			pkg, err := jr.store.GetPackage(ctx, *rental.PackageID)
			if err != nil {
				logger.Error("Failed to load package for audit",
					"rental_id", rental.ID, "package_id", *rental.PackageID, "error", err)
				continue
			}

			kmDriven := *rental.OdometerInKm - rental.OdometerOutKm
			computed := pricing.ComputeOverage(kmDriven, pkg.IncludedKilometers, pkg.ExtraKmRate)
			audit := pricing.AuditOverage(rental.OverageCharge, computed, tolerance)
			if !audit.Consistent {
				inconsistent++
				err := &domain.DataInconsistencyError{
					Field:    "overage_charge",
					Stored:   audit.Stored,
					Computed: audit.Computed,
				}
				logger.Error("Overage charge inconsistency", "rental_id", rental.ID, "error", err)
			}

			stored := rental.RemainingAmount
			rental.RecomputeRemaining()
			if diff := stored - rental.RemainingAmount; diff > tolerance || diff < -tolerance {
				inconsistent++
				err := &domain.DataInconsistencyError{
					Field:    "remaining_amount",
					Stored:   stored,
					Computed: rental.RemainingAmount,
				}
				logger.Error("Remaining amount inconsistency", "rental_id", rental.ID, "error", err)
			}
		}

		logger.Info("Overage audit finished", "audited", len(rentals), "inconsistent", inconsistent)
	})
}

// SendPendingExtensionReminders emails the operations inbox about extension
// requests that have sat in PENDING longer than the configured age.
func (jr *JobRunner) SendPendingExtensionReminders() {
	jr.runWithRecovery("SendPendingExtensionReminders", func() {
		ctx := context.Background()
		age := time.Duration(jr.config.Scheduler.PendingReminderAgeHours) * time.Hour

		pending, err := jr.store.ListPendingOlderThan(ctx, time.Now().Add(-age))
		if err != nil {
			logger.Error("Failed to list pending extensions", "error", err)
			return
		}
		if len(pending) == 0 {
			logger.Info("No stale pending extensions")
			return
		}

		oldest := pending[0].Reference
		if err := jr.emailSvc.SendPendingExtensionReminder(ctx, len(pending), oldest); err != nil {
			logger.Error("Failed to send pending extension reminder", "error", err)
			return
		}
		logger.Info("Sent pending extension reminder", "pending", len(pending), "oldest", oldest)
	})
}
