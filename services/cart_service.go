package services

import (
	"context"
	"fmt"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	DishRepo *repository.DishRepository
	Pricing  Pricing
	Log      *zap.Logger
}

func NewCartService(db *gorm.DB, pricing Pricing, log *zap.Logger) *CartService {
	return &CartService{
		DB:       db,
		CartRepo: repository.NewCartRepository(db),
		DishRepo: repository.NewDishRepository(db),
		Pricing:  pricing,
		Log:      log,
	}
}

type CartItemView struct {
	repository.CartLine
	LineTotal int64 `json:"lineTotal"`
}

// CartView is what every cart read or write hands back to the client.
type CartView struct {
	CartID         uint           `json:"cartId"`
	UserID         uint           `json:"userId"`
	RestaurantID   *uint          `json:"restaurantId"`
	RestaurantName string         `json:"restaurantName,omitempty"`
	Items          []CartItemView `json:"items"`
	Summary        Totals         `json:"summary"`

	// set by SetItemQuantity when items of another restaurant were dropped
	CartCleared         bool  `json:"cartCleared"`
	ClearedRestaurantID *uint `json:"clearedRestaurantId,omitempty"`
}

// ItemUpdate is the outcome of UpdateItem: either the updated line or a
// removal.
type ItemUpdate struct {
	Removed bool          `json:"removed"`
	Item    *CartItemView `json:"item,omitempty"`
}

func (s *CartService) view(cart *entity.Cart, lines []repository.CartLine) *CartView {
	v := &CartView{
		CartID: cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartItemView, 0, len(lines)),
	}
	priced := make([]Line, 0, len(lines))
	for _, l := range lines {
		v.Items = append(v.Items, CartItemView{CartLine: l, LineTotal: l.Price * int64(l.Quantity)})
		priced = append(priced, Line{UnitPrice: l.Price, Quantity: l.Quantity})
	}
	if len(lines) > 0 {
		rid := lines[0].RestaurantID
		v.RestaurantID = &rid
		v.RestaurantName = lines[0].RestaurantName
	}
	v.Summary = s.Pricing.Compute(priced)
	return v
}

func (s *CartService) load(ctx context.Context, cart *entity.Cart) (*CartView, error) {
	lines, err := s.CartRepo.LoadLines(s.DB.WithContext(ctx), cart.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart lines: %w", err)
	}
	return s.view(cart, lines), nil
}

// GET /cart
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.CartRepo.EnsureCart(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}
	return s.load(ctx, cart)
}

// GET /cart/summary. Does not create a cart; a user without one gets zeros.
func (s *CartService) GetCartSummary(ctx context.Context, userID uint) (*CartView, error) {
	cart, err := s.CartRepo.FindCart(s.DB.WithContext(ctx), userID)
	if repository.IsNotFound(err) {
		return s.view(&entity.Cart{UserID: userID}, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return s.load(ctx, cart)
}

// SetItemQuantity makes quantity the dish's final quantity in the cart.
// Items of another restaurant are dropped first. Duplicate rows for the dish
// collapse onto the oldest one. A nil instructions keeps what is stored.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, dishID uint, quantity int, instructions *string) (*CartView, error) {
	if quantity <= 0 {
		return nil, NewValidation(ErrMsgQuantityPositive)
	}
	db := s.DB.WithContext(ctx)

	dish, err := s.DishRepo.GetWithRestaurant(db, dishID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgDishNotFound, "load dish")
	}
	if !dish.IsAvailable {
		return nil, NewInvalidState(ErrMsgDishUnavailable)
	}

	cart, err := s.CartRepo.EnsureCart(db, userID)
	if err != nil {
		return nil, fmt.Errorf("ensure cart: %w", err)
	}

	var clearedFrom uint
	err = repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		clearedFrom = 0
		if err := s.CartRepo.LockCart(tx, cart.ID); err != nil {
			return err
		}

		current, err := s.CartRepo.CurrentRestaurantID(tx, cart.ID)
		if err != nil {
			return err
		}
		if current != 0 && current != dish.RestaurantID {
			if _, err := s.CartRepo.ClearItems(tx, cart.ID); err != nil {
				return err
			}
			clearedFrom = current
		}

		rows, err := s.CartRepo.ItemsForDish(tx, cart.ID, dishID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			it := &entity.CartItem{CartID: cart.ID, DishID: dishID, Quantity: quantity}
			if instructions != nil {
				it.SpecialInstructions = *instructions
			}
			return s.CartRepo.CreateItem(tx, it)
		}

		keep := rows[0]
		dups := make([]uint, 0, len(rows)-1)
		for _, r := range rows[1:] {
			dups = append(dups, r.ID)
		}
		if err := s.CartRepo.DeleteItems(tx, dups); err != nil {
			return err
		}
		note := keep.SpecialInstructions
		if instructions != nil {
			note = *instructions
		}
		return s.CartRepo.UpdateItem(tx, keep.ID, quantity, note)
	})
	if err != nil {
		return nil, fmt.Errorf("set cart item: %w", err)
	}

	if clearedFrom != 0 {
		s.Log.Info("cart cleared for restaurant switch",
			zap.Uint("userId", userID),
			zap.Uint("fromRestaurantId", clearedFrom),
			zap.Uint("toRestaurantId", dish.RestaurantID))
	}

	v, err := s.load(ctx, cart)
	if err != nil {
		return nil, err
	}
	if clearedFrom != 0 {
		v.CartCleared = true
		v.ClearedRestaurantID = &clearedFrom
	}
	return v, nil
}

// PATCH /cart/items/:id. Quantity 0 removes the item.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int, instructions *string) (*ItemUpdate, error) {
	if quantity < 0 {
		return nil, NewValidation(ErrMsgQuantityNegative)
	}
	cart, err := s.CartRepo.FindCart(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgCartItemNotFound, "find cart")
	}

	out := &ItemUpdate{}
	err = repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		if err := s.CartRepo.LockCart(tx, cart.ID); err != nil {
			return err
		}
		it, err := s.CartRepo.FindItem(tx, cart.ID, itemID)
		if err != nil {
			return notFoundOr(err, ErrMsgCartItemNotFound, "find cart item")
		}
		if quantity == 0 {
			out.Removed = true
			_, err := s.CartRepo.DeleteItem(tx, cart.ID, it.ID)
			return err
		}
		out.Removed = false
		note := it.SpecialInstructions
		if instructions != nil {
			note = *instructions
		}
		return s.CartRepo.UpdateItem(tx, it.ID, quantity, note)
	})
	if err != nil {
		return nil, err
	}
	if out.Removed {
		return out, nil
	}

	line, err := s.CartRepo.LoadLine(s.DB.WithContext(ctx), cart.ID, itemID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgCartItemNotFound, "reload cart item")
	}
	out.Item = &CartItemView{CartLine: *line, LineTotal: line.Price * int64(line.Quantity)}
	return out, nil
}

// DELETE /cart/items/:id
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	cart, err := s.CartRepo.FindCart(s.DB.WithContext(ctx), userID)
	if err != nil {
		return notFoundOr(err, ErrMsgCartItemNotFound, "find cart")
	}
	return repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		if err := s.CartRepo.LockCart(tx, cart.ID); err != nil {
			return err
		}
		ok, err := s.CartRepo.DeleteItem(tx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if !ok {
			return NewNotFound(ErrMsgCartItemNotFound)
		}
		return nil
	})
}

// DELETE /cart/items
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.CartRepo.FindCart(s.DB.WithContext(ctx), userID)
	if err != nil {
		return notFoundOr(err, ErrMsgCartNotFound, "find cart")
	}
	return repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		if err := s.CartRepo.LockCart(tx, cart.ID); err != nil {
			return err
		}
		_, err := s.CartRepo.ClearItems(tx, cart.ID)
		return err
	})
}
