package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/cache"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const idempotencyPending = "pending"

type OrderService struct {
	DB         *gorm.DB
	Repo       *repository.OrderRepository
	CartRepo   *repository.CartRepository
	DishRepo   *repository.DishRepository
	UserRepo   *repository.UserRepository
	DriverRepo *repository.DriverRepository
	RestRepo   *repository.RestaurantRepository

	Pricing        Pricing
	Cache          cache.Cache
	IdempotencyTTL time.Duration
	Events         events.Publisher
	Log            *zap.Logger

	// minutes until delivery for a new order
	Eta func() int
}

func NewOrderService(db *gorm.DB, pricing Pricing, c cache.Cache, pub events.Publisher, log *zap.Logger) *OrderService {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &OrderService{
		DB:             db,
		Repo:           repository.NewOrderRepository(db),
		CartRepo:       repository.NewCartRepository(db),
		DishRepo:       repository.NewDishRepository(db),
		UserRepo:       repository.NewUserRepository(db),
		DriverRepo:     repository.NewDriverRepository(db),
		RestRepo:       repository.NewRestaurantRepository(db),
		Pricing:        pricing,
		Cache:          c,
		IdempotencyTTL: 24 * time.Hour,
		Events:         pub,
		Log:            log,
		Eta:            func() int { return 30 + rand.IntN(20) },
	}
}

// ----- DTOs -----

type CreateOrderInput struct {
	AddressID           *uint  `json:"addressId"`
	SpecialInstructions string `json:"specialInstructions"`
	IdempotencyKey      string `json:"-"`
}

type RestaurantSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OrderDetail struct {
	Order      *entity.Order      `json:"order"`
	Restaurant RestaurantSummary  `json:"restaurant"`
	Items      []entity.OrderItem `json:"items"`
}

// ----- Create -----

// CreateOrderFromCart turns the user's cart into a PENDING order and empties
// the cart in the same transaction. With an idempotency key a repeated
// request returns the order the first one created.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID uint, in CreateOrderInput) (*OrderDetail, error) {
	if in.IdempotencyKey == "" || s.Cache == nil {
		return s.createFromCart(ctx, userID, in)
	}

	key := s.Cache.Key("order", strconv.FormatUint(uint64(userID), 10), in.IdempotencyKey)
	reserved, err := s.Cache.SetNX(ctx, key, idempotencyPending, s.IdempotencyTTL)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !reserved {
		return s.replay(ctx, userID, key)
	}

	detail, err := s.createFromCart(ctx, userID, in)
	if err != nil {
		if delErr := s.Cache.Del(ctx, key); delErr != nil {
			s.Log.Warn("release idempotency key failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	if err := s.Cache.Set(ctx, key, strconv.FormatUint(uint64(detail.Order.ID), 10), s.IdempotencyTTL); err != nil {
		s.Log.Warn("store idempotency result failed", zap.String("key", key), zap.Error(err))
	}
	return detail, nil
}

func (s *OrderService) replay(ctx context.Context, userID uint, key string) (*OrderDetail, error) {
	v, err := s.Cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read idempotency key: %w", err)
	}
	if v == "" || v == idempotencyPending {
		return nil, NewInvalidState(ErrMsgInProgress)
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("idempotency key %s holds %q", key, v)
	}
	return s.DetailForUser(ctx, userID, uint(id))
}

func (s *OrderService) createFromCart(ctx context.Context, userID uint, in CreateOrderInput) (*OrderDetail, error) {
	cart, err := s.CartRepo.FindCart(s.DB.WithContext(ctx), userID)
	if repository.IsNotFound(err) {
		return nil, NewInvalidState(ErrMsgCartEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	var out *OrderDetail
	err = repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		if err := s.CartRepo.LockCart(tx, cart.ID); err != nil {
			return err
		}
		lines, err := s.CartRepo.LoadLines(tx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return NewInvalidState(ErrMsgCartEmpty)
		}

		ids := make([]uint, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.DishID)
		}
		dishes, err := s.DishRepo.FindByIDs(tx, ids)
		if err != nil {
			return err
		}

		var restID uint
		priced := make([]Line, 0, len(lines))
		for _, l := range lines {
			d, ok := dishes[l.DishID]
			if !ok {
				return NewNotFoundf("dish %d no longer exists", l.DishID)
			}
			if !d.IsAvailable {
				return NewInvalidStatef("%s is no longer available", d.Name)
			}
			if restID == 0 {
				restID = d.RestaurantID
			} else if d.RestaurantID != restID {
				return NewInvalidState("cart contains dishes from more than one restaurant")
			}
			priced = append(priced, Line{UnitPrice: d.Price, Quantity: l.Quantity})
		}

		var addrSnap string
		if in.AddressID != nil {
			addr, err := s.UserRepo.FindAddressForUser(tx, userID, *in.AddressID)
			if err != nil {
				return notFoundOr(err, ErrMsgAddressNotFound, "load address")
			}
			addrSnap = addr.Snapshot()
		}

		totals := s.Pricing.Compute(priced)
		order := &entity.Order{
			Subtotal:            totals.Subtotal,
			DeliveryFee:         totals.DeliveryFee,
			Tax:                 totals.Tax,
			Total:               totals.Total,
			ItemCount:           totals.ItemCount,
			Status:              entity.OrderPending,
			SpecialInstructions: in.SpecialInstructions,
			EtaMinutes:          s.Eta(),
			UserID:              userID,
			RestaurantID:        restID,
			AddressID:           in.AddressID,
			AddressSnap:         addrSnap,
		}
		if err := s.Repo.CreateOrder(tx, order); err != nil {
			return err
		}

		items := make([]entity.OrderItem, 0, len(lines))
		for _, l := range lines {
			d := dishes[l.DishID]
			items = append(items, entity.OrderItem{
				OrderID:             order.ID,
				DishID:              d.ID,
				Name:                d.Name,
				UnitPrice:           d.Price,
				Quantity:            l.Quantity,
				LineTotal:           d.Price * int64(l.Quantity),
				SpecialInstructions: l.SpecialInstructions,
			})
		}
		if err := s.Repo.CreateOrderItems(tx, items); err != nil {
			return err
		}
		if _, err := s.CartRepo.ClearItems(tx, cart.ID); err != nil {
			return err
		}

		out = &OrderDetail{
			Order:      order,
			Restaurant: RestaurantSummary{ID: restID, Name: lines[0].RestaurantName},
			Items:      items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("order created",
		zap.Uint("orderId", out.Order.ID),
		zap.Uint("userId", userID),
		zap.Uint("restaurantId", out.Order.RestaurantID),
		zap.Int64("total", out.Order.Total))
	s.publish(ctx, events.OrderCreated, out.Order)
	return out, nil
}

// ----- Queries -----

// GET /orders/mine
func (s *OrderService) ListMine(ctx context.Context, userID uint) ([]repository.OrderSummary, error) {
	return s.Repo.WithContext(ctx).ListOrdersForUser(userID, 50)
}

// GET /orders/:id
func (s *OrderService) DetailForUser(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.WithContext(ctx).GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgOrderNotFound, "load order")
	}
	return s.detail(ctx, o)
}

func (s *OrderService) detail(ctx context.Context, o *entity.Order) (*OrderDetail, error) {
	db := s.DB.WithContext(ctx)
	items, err := s.Repo.GetOrderItems(db, o.ID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	out := &OrderDetail{Order: o, Items: items, Restaurant: RestaurantSummary{ID: o.RestaurantID}}
	if rest, err := s.RestRepo.FindByID(o.RestaurantID); err == nil {
		out.Restaurant.Name = rest.Name
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	return out, nil
}

type RestaurantOrders struct {
	Items []repository.OwnerOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

// GET /owner/restaurants/:id/orders
func (s *OrderService) ListForRestaurant(ctx context.Context, actor Actor, restaurantID uint, status string, page, limit int) (*RestaurantOrders, error) {
	st := entity.OrderStatus(status)
	if status != "" && !st.Valid() {
		return nil, NewValidationf("unknown order status %q", status)
	}
	if err := s.checkOwner(actor, restaurantID); err != nil {
		return nil, err
	}
	rows, total, err := s.Repo.WithContext(ctx).ListOrdersForRestaurant(restaurantID, st, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list restaurant orders: %w", err)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	return &RestaurantOrders{Items: rows, Total: total, Page: page, Limit: limit}, nil
}

// GET /driver/orders/available
func (s *OrderService) ListReadyForPickup(ctx context.Context, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.WithContext(ctx).ListReadyForPickup(limit)
}

// ----- helpers -----

func (s *OrderService) checkOwner(actor Actor, restaurantID uint) error {
	exists, owns, err := s.RestRepo.IsOwner(restaurantID, actor.UserID)
	if err != nil {
		return fmt.Errorf("check restaurant owner: %w", err)
	}
	if !exists {
		return NewNotFound(ErrMsgRestaurantMissing)
	}
	if !owns && !actor.IsAdmin() {
		return NewForbidden("you do not own this restaurant")
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, key string, o *entity.Order) {
	ev := events.OrderEvent{
		OrderID:      o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		DriverID:     o.DriverID,
		Status:       string(o.Status),
		Total:        o.Total,
		At:           time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, key, ev); err != nil {
		s.Log.Warn("publish order event failed",
			zap.String("routingKey", key),
			zap.Uint("orderId", o.ID),
			zap.Error(err))
	}
}
