package entity

import (
	"gorm.io/gorm"
)

// OrderItem is an immutable snapshot of a cart line at checkout.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`

	DishID uint `json:"dishId"`
	Dish   Dish `json:"-"`

	Name                string `json:"name"`
	UnitPrice           int64  `json:"unitPrice"`
	Quantity            int    `json:"quantity"`
	LineTotal           int64  `json:"lineTotal"`
	SpecialInstructions string `json:"specialInstructions"`
}
