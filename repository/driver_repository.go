package repository

import (
	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

type DriverRepository struct{ DB *gorm.DB }

func NewDriverRepository(db *gorm.DB) *DriverRepository { return &DriverRepository{DB: db} }

func (r *DriverRepository) GetByUserID(db *gorm.DB, userID uint) (*entity.Driver, error) {
	var d entity.Driver
	if err := db.Where("user_id = ?", userID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) GetByID(db *gorm.DB, id uint) (*entity.Driver, error) {
	var d entity.Driver
	if err := db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) Create(d *entity.Driver) error {
	return r.DB.Create(d).Error
}

func (r *DriverRepository) Update(driverID uint, fields map[string]any) error {
	return r.DB.Model(&entity.Driver{}).Where("id = ?", driverID).Updates(fields).Error
}

// ClaimAvailable flips an available driver to busy. false means someone else
// got there first or the driver was never available.
func (r *DriverRepository) ClaimAvailable(tx *gorm.DB, driverID uint) (bool, error) {
	res := tx.Model(&entity.Driver{}).
		Where("id = ? AND is_available = ?", driverID, true).
		Update("is_available", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *DriverRepository) SetAvailable(tx *gorm.DB, driverID uint, available bool) error {
	return tx.Model(&entity.Driver{}).Where("id = ?", driverID).
		Update("is_available", available).Error
}

// HasActiveDelivery reports whether the driver holds an order on the road.
func (r *DriverRepository) HasActiveDelivery(driverID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Order{}).
		Where("driver_id = ? AND status = ?", driverID, entity.OrderOutForDelivery).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
