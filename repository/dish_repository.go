package repository

import (
	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

type DishRepository struct{ DB *gorm.DB }

func NewDishRepository(db *gorm.DB) *DishRepository { return &DishRepository{DB: db} }

// DishWithRestaurant is a dish plus the name of the restaurant serving it.
type DishWithRestaurant struct {
	entity.Dish
	RestaurantName string `json:"restaurantName"`
}

// GetWithRestaurant loads a dish (soft-deleted dishes count as missing).
func (r *DishRepository) GetWithRestaurant(db *gorm.DB, dishID uint) (*DishWithRestaurant, error) {
	var d entity.Dish
	if err := db.Preload("Restaurant").First(&d, dishID).Error; err != nil {
		return nil, err
	}
	return &DishWithRestaurant{Dish: d, RestaurantName: d.Restaurant.Name}, nil
}

// FindByIDs loads the given dishes in one query, keyed by id. Missing ids are
// simply absent from the map.
func (r *DishRepository) FindByIDs(db *gorm.DB, ids []uint) (map[uint]entity.Dish, error) {
	out := make(map[uint]entity.Dish, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.Dish
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, d := range rows {
		out[d.ID] = d
	}
	return out, nil
}

// GET /restaurants/:id/dishes
func (r *DishRepository) ListAvailable(restaurantID uint) ([]entity.Dish, error) {
	var rows []entity.Dish
	err := r.DB.Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("category ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DishRepository) Get(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// POST /owner/restaurants/:id/dishes
func (r *DishRepository) Create(d *entity.Dish) error {
	return r.DB.Create(d).Error
}

// PATCH /owner/dishes/:id
func (r *DishRepository) Update(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.Dish{}).Where("id = ?", id).Updates(fields).Error
}
