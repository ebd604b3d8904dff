package postgres

import (
	"database/sql"

	"rentwheels-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.PricingConfigRepository
	repository.RentalRepository
	repository.ExtensionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		VehicleRepository:       NewVehicleRepository(db),
		PricingConfigRepository: NewPricingConfigRepository(db),
		RentalRepository:        NewRentalRepository(db),
		ExtensionRepository:     NewExtensionRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}
