package repository

import (
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(p *entity.Payment) error {
	return r.DB.Create(p).Error
}

// GetForUser loads a payment by intent id, restricted to the user's orders.
func (r *PaymentRepository) GetForUser(intentID string, userID uint) (*entity.Payment, error) {
	var p entity.Payment
	err := r.DB.
		Joins("JOIN orders o ON o.id = payments.order_id").
		Where("payments.intent_id = ? AND o.user_id = ?", intentID, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkSucceeded moves the payment out of requires_payment_method.
func (r *PaymentRepository) MarkSucceeded(tx *gorm.DB, paymentID uint, paidAt time.Time) (bool, error) {
	res := tx.Model(&entity.Payment{}).
		Where("id = ? AND status = ?", paymentID, entity.PaymentRequiresMethod).
		Updates(map[string]any{
			"status":  entity.PaymentSucceeded,
			"paid_at": paidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
