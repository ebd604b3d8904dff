package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/repository"
)

type pricingConfigRepository struct {
	db *sql.DB
}

func NewPricingConfigRepository(db *sql.DB) repository.PricingConfigRepository {
	return &pricingConfigRepository{db: db}
}

func (r *pricingConfigRepository) GetActiveBasePrice(ctx context.Context, vehicleModelID int64, rateType domain.RateType) (*domain.BasePrice, error) {
	bp := &domain.BasePrice{}
	query := `SELECT id, vehicle_model_id, rate_type, amount, is_active, created_on, updated_on
	          FROM base_prices WHERE vehicle_model_id = $1 AND rate_type = $2 AND is_active = true
	          ORDER BY updated_on DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, vehicleModelID, rateType).Scan(&bp.ID, &bp.VehicleModelID, &bp.RateType, &bp.Amount, &bp.IsActive, &bp.CreatedOn, &bp.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bp, nil
}

func (r *pricingConfigRepository) ListActiveTiers(ctx context.Context, vehicleModelID int64) ([]domain.PricingTier, error) {
	query := `SELECT id, vehicle_model_id, min_hours, max_hours, calculation_method, discount_percentage, price_amount, is_active
	          FROM pricing_tiers WHERE vehicle_model_id = $1 AND is_active = true ORDER BY min_hours ASC`
	rows, err := r.db.QueryContext(ctx, query, vehicleModelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PricingTier
	for rows.Next() {
		var t domain.PricingTier
		if err := rows.Scan(&t.ID, &t.VehicleModelID, &t.MinHours, &t.MaxHours, &t.Method, &t.DiscountPercent, &t.PriceAmount, &t.IsActive); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *pricingConfigRepository) GetPackage(ctx context.Context, id int64) (*domain.RentalPackage, error) {
	p := &domain.RentalPackage{}
	query := `SELECT id, name, included_kilometers, extra_km_rate, base_price, rate_type, is_active
	          FROM rental_packages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.IncludedKilometers, &p.ExtraKmRate, &p.BasePrice, &p.RateType, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
