package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, model_id, plate, flat_hourly_rate, odometer_km, created_on, updated_on FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.ModelID, &v.Plate, &v.FlatHourlyRate, &v.OdometerKm, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) GetModel(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	m := &domain.VehicleModel{}
	query := `SELECT id, name, category FROM vehicle_models WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *vehicleRepository) UpdateOdometer(ctx context.Context, vehicleID int64, odometerKm float64) error {
	query := `UPDATE vehicles SET odometer_km = $1, updated_on = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, odometerKm, time.Now(), vehicleID)
	return err
}
