package entity

import (
	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null" json:"userId"`
	User         User   `json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehiclePlate"`
	IsAvailable  bool   `gorm:"not null" json:"isAvailable"`

	Orders []Order `json:"-"`
}
