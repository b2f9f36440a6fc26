package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const paymentCurrency = "inr"

// PaymentService is a stand-in for a payment gateway. Intents are recorded
// locally and confirmation always succeeds.
type PaymentService struct {
	DB        *gorm.DB
	Repo      *repository.PaymentRepository
	OrderRepo *repository.OrderRepository
	Log       *zap.Logger
}

func NewPaymentService(db *gorm.DB, log *zap.Logger) *PaymentService {
	return &PaymentService{
		DB:        db,
		Repo:      repository.NewPaymentRepository(db),
		OrderRepo: repository.NewOrderRepository(db),
		Log:       log,
	}
}

type PaymentIntent struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
	Total        int64  `json:"total"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// POST /payments/intent
func (s *PaymentService) Intent(ctx context.Context, userID, orderID uint) (*PaymentIntent, error) {
	o, err := s.OrderRepo.WithContext(ctx).GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgOrderNotFound, "load order")
	}
	if o.Status == entity.OrderCancelled {
		return nil, NewInvalidState("order is cancelled")
	}

	id := "pi_stub_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	p := &entity.Payment{
		IntentID: id,
		Amount:   o.Total,
		Currency: paymentCurrency,
		Status:   entity.PaymentRequiresMethod,
		OrderID:  o.ID,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return &PaymentIntent{
		IntentID:     id,
		ClientSecret: id + "_secret",
		Total:        p.Amount,
		Currency:     p.Currency,
		Status:       p.Status,
	}, nil
}

// POST /payments/confirm. Confirming twice is harmless.
func (s *PaymentService) Confirm(ctx context.Context, userID uint, intentID string) (*entity.Payment, error) {
	p, err := s.Repo.GetForUser(intentID, userID)
	if err != nil {
		return nil, notFoundOr(err, "payment not found", "load payment")
	}
	if p.Status == entity.PaymentSucceeded {
		return p, nil
	}

	now := time.Now()
	ok, err := s.Repo.MarkSucceeded(s.DB.WithContext(ctx), p.ID, now)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if !ok {
		// a concurrent confirm won; return what it stored
		return s.Repo.GetForUser(intentID, userID)
	}
	p.Status = entity.PaymentSucceeded
	p.PaidAt = &now
	s.Log.Info("payment confirmed", zap.Uint("orderId", p.OrderID), zap.String("intentId", p.IntentID))
	return p, nil
}
