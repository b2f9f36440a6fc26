package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentRequiresMethod = "requires_payment_method"
	PaymentSucceeded      = "succeeded"
)

type Payment struct {
	gorm.Model
	IntentID string     `gorm:"uniqueIndex;size:64" json:"intentId"`
	Amount   int64      `json:"amount"`
	Currency string     `gorm:"size:8" json:"currency"`
	Status   string     `gorm:"size:32" json:"status"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`

	OrderID uint  `gorm:"index" json:"orderId"`
	Order   Order `json:"-"`
}
