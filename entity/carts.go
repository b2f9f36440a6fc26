package entity

import (
	"time"
)

// Cart is created lazily and only ever emptied, never deleted.
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	Items []CartItem `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
