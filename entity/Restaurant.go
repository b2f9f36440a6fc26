package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name     string  `gorm:"not null" json:"name"`
	Area     string  `json:"area"`
	Cuisine  string  `json:"cuisine"`
	Rating   float64 `json:"rating"`
	IsOpen   bool    `gorm:"not null" json:"isOpen"`
	ImageURL string  `json:"imageUrl"`

	// 0 for restaurants seeded without an owner
	OwnerID uint `gorm:"index" json:"ownerId"`

	Dishes []Dish  `json:"-"`
	Orders []Order `json:"-"`
}
