package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

const rentalColumns = `id, customer_id, vehicle_id, vehicle_model_id, package_id, start_date, end_date,
	odometer_out_km, odometer_in_km, rate_type, unit_price, total_amount, overage_charge,
	total_extension_price, extension_count, total_extended_hours, deposit_amount, remaining_amount,
	payment_status, status, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CustomerID, &rt.VehicleID, &rt.VehicleModelID, &rt.PackageID,
		&rt.StartDate, &rt.EndDate, &rt.OdometerOutKm, &rt.OdometerInKm, &rt.RateType,
		&rt.UnitPrice, &rt.TotalAmount, &rt.OverageCharge, &rt.TotalExtensionPrice,
		&rt.ExtensionCount, &rt.TotalExtendedHours, &rt.DepositAmount, &rt.RemainingAmount,
		&rt.PaymentStatus, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (customer_id, vehicle_id, vehicle_model_id, package_id, start_date, end_date,
	            odometer_out_km, rate_type, unit_price, total_amount, overage_charge, total_extension_price,
	            extension_count, total_extended_hours, deposit_amount, remaining_amount, payment_status, status,
	            created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		rt.CustomerID, rt.VehicleID, rt.VehicleModelID, rt.PackageID, rt.StartDate, rt.EndDate,
		rt.OdometerOutKm, rt.RateType, rt.UnitPrice, rt.TotalAmount, rt.OverageCharge, rt.TotalExtensionPrice,
		rt.ExtensionCount, rt.TotalExtendedHours, rt.DepositAmount, rt.RemainingAmount, rt.PaymentStatus, rt.Status,
		now, now).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1`

	args := []interface{}{customerID}
	argIdx := 2
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

// RecordReturn writes the return odometer and recomputed overage charge and
// re-derives the remaining amount inside the same UPDATE, so the financial
// fields can never diverge.
func (r *rentalRepository) RecordReturn(ctx context.Context, rentalID int64, odometerInKm, overageCharge float64) (*domain.Rental, error) {
	query := `UPDATE rentals
	          SET odometer_in_km = $2,
	              overage_charge = $3,
	              remaining_amount = GREATEST(0, total_amount + $3 + total_extension_price - deposit_amount),
	              status = 'COMPLETED',
	              updated_on = $4
	          WHERE id = $1
	          RETURNING ` + rentalColumns
	return scanRental(r.db.QueryRowContext(ctx, query, rentalID, odometerInKm, overageCharge, time.Now()))
}

// MarkOverdue flips every active rental past its end date to OVERDUE.
func (r *rentalRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]int64, error) {
	query := `UPDATE rentals
	          SET status = 'OVERDUE', updated_on = $1
	          WHERE status = 'ACTIVE' AND end_date < $1
	          RETURNING id`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *rentalRepository) ListCompletedWithPackage(ctx context.Context, since time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status = 'COMPLETED' AND package_id IS NOT NULL AND updated_on >= $1
	          ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
