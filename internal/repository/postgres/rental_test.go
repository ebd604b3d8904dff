package postgres_test

import (
	"context"
	"testing"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var rentalTestColumns = []string{
	"id", "customer_id", "vehicle_id", "vehicle_model_id", "package_id", "start_date", "end_date",
	"odometer_out_km", "odometer_in_km", "rate_type", "unit_price", "total_amount", "overage_charge",
	"total_extension_price", "extension_count", "total_extended_hours", "deposit_amount", "remaining_amount",
	"payment_status", "status", "created_on", "updated_on",
}

func rentalRow(id int64, status string, overage, remaining float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(rentalTestColumns).
		AddRow(id, 9, 42, 7, nil, now, now.Add(48*time.Hour),
			12000.0, 12350.0, "HOURLY", 100.0, 300.0, overage,
			0.0, 0, 0.0, 200.0, remaining, "UNPAID", status, now, now)
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{
			CustomerID:     9,
			VehicleID:      42,
			VehicleModelID: 7,
			StartDate:      time.Now(),
			EndDate:        time.Now().Add(4 * time.Hour),
			RateType:       domain.RateTypeHourly,
			UnitPrice:      100,
			TotalAmount:    380,
			DepositAmount:  100,
			PaymentStatus:  domain.PaymentStatusUnpaid,
			Status:         domain.RentalStatusActive,
		}
		rental.RecomputeRemaining()

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.CustomerID, rental.VehicleID, rental.VehicleModelID, rental.PackageID,
				rental.StartDate, rental.EndDate, rental.OdometerOutKm, rental.RateType, rental.UnitPrice,
				rental.TotalAmount, rental.OverageCharge, rental.TotalExtensionPrice, rental.ExtensionCount,
				rental.TotalExtendedHours, rental.DepositAmount, rental.RemainingAmount, rental.PaymentStatus,
				rental.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rental.ID)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals WHERE id = \\$1").
			WithArgs(int64(1)).
			WillReturnRows(rentalRow(1, "ACTIVE", 0, 200))

		rental, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rental.ID)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("FROM rentals WHERE id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(rentalTestColumns))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRentalRepository_RecordReturn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Writes odometer, overage and derived remaining in one statement", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals").
			WithArgs(int64(1), 12350.0, 375.0, sqlmock.AnyArg()).
			WillReturnRows(rentalRow(1, "COMPLETED", 375, 475))

		rental, err := repo.RecordReturn(ctx, 1, 12350, 375)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
		assert.Equal(t, 375.0, rental.OverageCharge)
		assert.Equal(t, 475.0, rental.RemainingAmount)
	})
}

func TestRentalRepository_MarkOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Returns the flipped rental ids", func(t *testing.T) {
		mock.ExpectQuery("UPDATE rentals").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4).AddRow(11))

		ids, err := repo.MarkOverdue(ctx, time.Now())
		assert.NoError(t, err)
		assert.Equal(t, []int64{4, 11}, ids)
	})
}
