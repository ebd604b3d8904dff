package service

import (
	"context"
	"time"

	"rentwheels-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) RecordReturn(ctx context.Context, rentalID int64, odometerInKm, overageCharge float64) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID, odometerInKm, overageCharge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockRentalRepo) ListCompletedWithPackage(ctx context.Context, since time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockExtensionRepo
type MockExtensionRepo struct {
	mock.Mock
}

func (m *MockExtensionRepo) Create(ctx context.Context, ext *domain.Extension) error {
	args := m.Called(ctx, ext)
	return args.Error(0)
}
func (m *MockExtensionRepo) CreateApproved(ctx context.Context, ext *domain.Extension, approverID int64) (*domain.Rental, error) {
	args := m.Called(ctx, ext, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockExtensionRepo) GetByID(ctx context.Context, id int64) (*domain.Extension, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extension), args.Error(1)
}
func (m *MockExtensionRepo) ListByRental(ctx context.Context, rentalID int64) ([]domain.Extension, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Extension), args.Error(1)
}
func (m *MockExtensionRepo) ApproveAndApply(ctx context.Context, extensionID, approverID int64) (*domain.Extension, *domain.Rental, error) {
	args := m.Called(ctx, extensionID, approverID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Extension), args.Get(1).(*domain.Rental), args.Error(2)
}
func (m *MockExtensionRepo) Reject(ctx context.Context, extensionID, approverID int64) (*domain.Extension, error) {
	args := m.Called(ctx, extensionID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Extension), args.Error(1)
}
func (m *MockExtensionRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Extension, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Extension), args.Error(1)
}

// MockPricingConfigRepo
type MockPricingConfigRepo struct {
	mock.Mock
}

func (m *MockPricingConfigRepo) GetActiveBasePrice(ctx context.Context, vehicleModelID int64, rateType domain.RateType) (*domain.BasePrice, error) {
	args := m.Called(ctx, vehicleModelID, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BasePrice), args.Error(1)
}
func (m *MockPricingConfigRepo) ListActiveTiers(ctx context.Context, vehicleModelID int64) ([]domain.PricingTier, error) {
	args := m.Called(ctx, vehicleModelID)
	return args.Get(0).([]domain.PricingTier), args.Error(1)
}
func (m *MockPricingConfigRepo) GetPackage(ctx context.Context, id int64) (*domain.RentalPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalPackage), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetModel(ctx context.Context, id int64) (*domain.VehicleModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleModel), args.Error(1)
}
func (m *MockVehicleRepo) UpdateOdometer(ctx context.Context, vehicleID int64, odometerKm float64) error {
	args := m.Called(ctx, vehicleID, odometerKm)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendExtensionRequestNotification(ctx context.Context, reference string, rentalID int64, hours, price float64) error {
	args := m.Called(ctx, reference, rentalID, hours, price)
	return args.Error(0)
}
func (m *MockEmailService) SendExtensionDecisionNotification(ctx context.Context, reference string, rentalID int64, decision string) error {
	args := m.Called(ctx, reference, rentalID, decision)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingExtensionReminder(ctx context.Context, pendingCount int, oldestReference string) error {
	args := m.Called(ctx, pendingCount, oldestReference)
	return args.Error(0)
}
