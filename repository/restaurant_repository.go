package repository

import (
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// RestaurantFilter narrows the public listing. Empty fields are ignored.
type RestaurantFilter struct {
	Q       string
	Area    string
	Cuisine string
}

// GET /restaurants
func (r *RestaurantRepository) List(f RestaurantFilter) ([]entity.Restaurant, error) {
	db := r.DB.Model(&entity.Restaurant{})
	if q := strings.TrimSpace(f.Q); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if a := strings.TrimSpace(f.Area); a != "" {
		db = db.Where("LOWER(area) LIKE ?", "%"+strings.ToLower(a)+"%")
	}
	if c := strings.TrimSpace(f.Cuisine); c != "" {
		db = db.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(c)+"%")
	}
	var rests []entity.Restaurant
	err := db.Order("name ASC").Find(&rests).Error
	return rests, err
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// FindByIDWithDishes loads the restaurant and its available dishes by category.
func (r *RestaurantRepository) FindByIDWithDishes(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.
		Preload("Dishes", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("category ASC, name ASC")
		}).
		First(&rest, id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

// POST /owner/restaurants
func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

// IsOwner reports whether the restaurant exists and belongs to userID.
func (r *RestaurantRepository) IsOwner(restaurantID, userID uint) (exists, owns bool, err error) {
	var row struct{ OwnerID uint }
	res := r.DB.Model(&entity.Restaurant{}).
		Select("owner_id").
		Where("id = ?", restaurantID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, false, nil
	}
	return true, row.OwnerID == userID, nil
}

func (r *RestaurantRepository) ListByOwner(ownerID uint) ([]entity.Restaurant, error) {
	var rests []entity.Restaurant
	err := r.DB.Where("owner_id = ?", ownerID).Order("name ASC").Find(&rests).Error
	return rests, err
}
