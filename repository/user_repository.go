package repository

import (
	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

// UserRepository talks to the users and addresses tables.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GET /users/me/addresses
func (r *UserRepository) ListAddresses(userID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}

// POST /users/me/addresses
func (r *UserRepository) CreateAddress(a *entity.Address) error {
	return r.DB.Create(a).Error
}

// FindAddressForUser loads an address only when it belongs to the user.
func (r *UserRepository) FindAddressForUser(db *gorm.DB, userID, addressID uint) (*entity.Address, error) {
	var a entity.Address
	if err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
