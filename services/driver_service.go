package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DriverService struct {
	DB         *gorm.DB
	DriverRepo *repository.DriverRepository
	UserRepo   *repository.UserRepository
	Log        *zap.Logger
}

func NewDriverService(db *gorm.DB, log *zap.Logger) *DriverService {
	return &DriverService{
		DB:         db,
		DriverRepo: repository.NewDriverRepository(db),
		UserRepo:   repository.NewUserRepository(db),
		Log:        log,
	}
}

type DriverProfileInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehiclePlate" binding:"required"`
}

// PUT /driver/profile. New profiles start unavailable.
func (s *DriverService) UpsertProfile(ctx context.Context, userID uint, in DriverProfileInput) (*entity.Driver, error) {
	plate := strings.ToUpper(strings.TrimSpace(in.VehiclePlate))
	if plate == "" {
		return nil, NewValidation("vehicle plate is required")
	}

	d, err := s.DriverRepo.GetByUserID(s.DB.WithContext(ctx), userID)
	if repository.IsNotFound(err) {
		u, err := s.UserRepo.FindByID(userID)
		if err != nil {
			return nil, notFoundOr(err, "user not found", "load user")
		}
		d = &entity.Driver{
			UserID:       userID,
			Name:         firstNonEmpty(in.Name, u.Name),
			Phone:        firstNonEmpty(in.Phone, u.Phone),
			VehiclePlate: plate,
		}
		if err := s.DriverRepo.Create(d); err != nil {
			return nil, fmt.Errorf("create driver: %w", err)
		}
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load driver: %w", err)
	}

	fields := map[string]any{"vehicle_plate": plate}
	if n := strings.TrimSpace(in.Name); n != "" {
		fields["name"] = n
	}
	if p := strings.TrimSpace(in.Phone); p != "" {
		fields["phone"] = p
	}
	if err := s.DriverRepo.Update(d.ID, fields); err != nil {
		return nil, fmt.Errorf("update driver: %w", err)
	}
	return s.DriverRepo.GetByID(s.DB.WithContext(ctx), d.ID)
}

// GET /driver/profile
func (s *DriverService) Profile(ctx context.Context, userID uint) (*entity.Driver, error) {
	d, err := s.DriverRepo.GetByUserID(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, notFoundOr(err, "driver profile not found", "load driver")
	}
	return d, nil
}

// PATCH /driver/availability. A driver on the road cannot take more work.
func (s *DriverService) SetAvailability(ctx context.Context, userID uint, available bool) (*entity.Driver, error) {
	d, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if available {
		busy, err := s.DriverRepo.HasActiveDelivery(d.ID)
		if err != nil {
			return nil, fmt.Errorf("check active delivery: %w", err)
		}
		if busy {
			return nil, NewInvalidState("cannot become available while delivering an order")
		}
	}
	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.DriverRepo.SetAvailable(tx, d.ID, available)
	}); err != nil {
		return nil, fmt.Errorf("set availability: %w", err)
	}
	d.IsAvailable = available
	s.Log.Info("driver availability changed", zap.Uint("driverId", d.ID), zap.Bool("available", available))
	return d, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
