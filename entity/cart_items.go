package entity

import (
	"time"
)

// CartItem rows are hard-deleted. (cart_id, dish_id) is deliberately not
// unique; the cart service collapses duplicates when it writes.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CartID uint `gorm:"index:idx_cart_items_cart_dish;not null" json:"cartId"`
	Cart   Cart `json:"-"`

	DishID uint `gorm:"index:idx_cart_items_cart_dish;not null" json:"dishId"`
	Dish   Dish `json:"-"`

	Quantity            int    `gorm:"not null" json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}
