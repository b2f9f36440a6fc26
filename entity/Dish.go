package entity

import (
	"gorm.io/gorm"
)

type Dish struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Category    string `gorm:"index" json:"category"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null;check:price >= 0" json:"price"`
	IsVeg       bool   `json:"isVeg"`
	IsAvailable bool   `gorm:"not null" json:"isAvailable"`
	ImageURL    string `json:"imageUrl"`

	// set at creation, never updated
	RestaurantID uint       `gorm:"index;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
