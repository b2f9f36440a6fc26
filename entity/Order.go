package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Tax         int64 `json:"tax"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"itemCount"`

	Status              OrderStatus `gorm:"size:32;index;not null" json:"status"`
	SpecialInstructions string      `json:"specialInstructions"`
	EtaMinutes          int         `json:"etaMinutes"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// address snapshot at checkout time; the address row may change later
	AddressID   *uint  `json:"addressId,omitempty"`
	AddressSnap string `json:"addressSnap"`

	DriverID *uint   `gorm:"index" json:"driverId,omitempty"`
	Driver   *Driver `json:"-"`

	OrderItems []OrderItem `json:"-"`
	Payments   []Payment   `json:"-"`
}
