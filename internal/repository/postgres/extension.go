package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

const extensionColumns = `id, reference, rental_id, extension_hours, extension_price, status, price_source,
	tier_applied, requested_by, approved_by, approved_at, created_on`

// applyExtensionQuery folds an approved extension into the rental's totals
// as one additive UPDATE. remaining_amount is re-derived from the source
// fields in the same statement, so a rental can never be observed with the
// end date moved but the totals not.
const applyExtensionQuery = `UPDATE rentals
	SET end_date = end_date + ($2 * interval '1 hour'),
	    total_extension_price = total_extension_price + $3,
	    extension_count = extension_count + 1,
	    total_extended_hours = total_extended_hours + $2,
	    remaining_amount = GREATEST(0, total_amount + overage_charge + total_extension_price + $3 - deposit_amount),
	    updated_on = $4
	WHERE id = $1
	RETURNING ` + rentalColumns

type extensionRepository struct {
	db *sql.DB
}

func NewExtensionRepository(db *sql.DB) repository.ExtensionRepository {
	return &extensionRepository{db: db}
}

func scanExtension(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Extension, error) {
	ext := &domain.Extension{}
	err := row.Scan(&ext.ID, &ext.Reference, &ext.RentalID, &ext.Hours, &ext.Price, &ext.Status,
		&ext.PriceSource, &ext.TierApplied, &ext.RequestedBy, &ext.ApprovedBy, &ext.ApprovedAt, &ext.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ext, nil
}

func (r *extensionRepository) Create(ctx context.Context, ext *domain.Extension) error {
	query := `INSERT INTO extensions (reference, rental_id, extension_hours, extension_price, status, price_source,
	            tier_applied, requested_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, ext.Reference, ext.RentalID, ext.Hours, ext.Price, ext.Status,
		ext.PriceSource, ext.TierApplied, ext.RequestedBy, time.Now()).Scan(&ext.ID)
}

// CreateApproved inserts the extension already approved and applies it to
// the rental, both inside one transaction: either the extension row and the
// rental mutation both land, or neither does.
func (r *extensionRepository) CreateApproved(ctx context.Context, ext *domain.Extension, approverID int64) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	insert := `INSERT INTO extensions (reference, rental_id, extension_hours, extension_price, status, price_source,
	             tier_applied, requested_by, approved_by, approved_at, created_on)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, insert, ext.Reference, ext.RentalID, ext.Hours, ext.Price,
		domain.ExtensionStatusApproved, ext.PriceSource, ext.TierApplied, ext.RequestedBy,
		approverID, now, now).Scan(&ext.ID)
	if err != nil {
		return nil, err
	}
	ext.Status = domain.ExtensionStatusApproved
	ext.ApprovedBy = &approverID
	ext.ApprovedAt = &now

	rental, err := scanRental(tx.QueryRowContext(ctx, applyExtensionQuery, ext.RentalID, ext.Hours, ext.Price, now))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *extensionRepository) GetByID(ctx context.Context, id int64) (*domain.Extension, error) {
	query := `SELECT ` + extensionColumns + ` FROM extensions WHERE id = $1`
	return scanExtension(r.db.QueryRowContext(ctx, query, id))
}

func (r *extensionRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.Extension, error) {
	query := `SELECT ` + extensionColumns + ` FROM extensions WHERE rental_id = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exts []domain.Extension
	for rows.Next() {
		ext, err := scanExtension(rows)
		if err != nil {
			return nil, err
		}
		exts = append(exts, *ext)
	}
	return exts, rows.Err()
}

// ApproveAndApply performs the PENDING -> APPROVED transition and the rental
// mutation in a single transaction. The extension row is locked first; the
// status guard runs under that lock, so two concurrent approvals of the same
// extension cannot both apply, and the rental row lock serializes concurrent
// applies from different extensions of the same rental.
func (r *extensionRepository) ApproveAndApply(ctx context.Context, extensionID, approverID int64) (*domain.Extension, *domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	lock := `SELECT ` + extensionColumns + ` FROM extensions WHERE id = $1 FOR UPDATE`
	ext, err := scanExtension(tx.QueryRowContext(ctx, lock, extensionID))
	if err != nil {
		return nil, nil, err
	}
	switch ext.Status {
	case domain.ExtensionStatusApproved:
		return nil, nil, domain.ErrAlreadyApproved
	case domain.ExtensionStatusPending:
	default:
		return nil, nil, domain.ErrInvalidStateTransition
	}

	now := time.Now()
	update := `UPDATE extensions SET status = $2, approved_by = $3, approved_at = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, update, extensionID, domain.ExtensionStatusApproved, approverID, now); err != nil {
		return nil, nil, err
	}
	ext.Status = domain.ExtensionStatusApproved
	ext.ApprovedBy = &approverID
	ext.ApprovedAt = &now

	rental, err := scanRental(tx.QueryRowContext(ctx, applyExtensionQuery, ext.RentalID, ext.Hours, ext.Price, now))
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return ext, rental, nil
}

func (r *extensionRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Extension, error) {
	query := `SELECT ` + extensionColumns + ` FROM extensions
	          WHERE status = $1 AND created_on < $2 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.ExtensionStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exts []domain.Extension
	for rows.Next() {
		ext, err := scanExtension(rows)
		if err != nil {
			return nil, err
		}
		exts = append(exts, *ext)
	}
	return exts, rows.Err()
}

func (r *extensionRepository) Reject(ctx context.Context, extensionID, approverID int64) (*domain.Extension, error) {
	now := time.Now()
	query := `UPDATE extensions SET status = $2, approved_by = $3, approved_at = $4
	          WHERE id = $1 AND status = $5
	          RETURNING ` + extensionColumns
	ext, err := scanExtension(r.db.QueryRowContext(ctx, query, extensionID,
		domain.ExtensionStatusRejected, approverID, now, domain.ExtensionStatusPending))
	if err == nil {
		return ext, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// No pending row matched: distinguish a missing extension from one that
	// already left PENDING.
	existing, getErr := r.GetByID(ctx, extensionID)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status == domain.ExtensionStatusApproved {
		return nil, domain.ErrAlreadyApproved
	}
	return nil, domain.ErrInvalidStateTransition
}
