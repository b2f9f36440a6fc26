package repository

import (
	"errors"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// CartLine is one cart item joined with its dish and restaurant.
type CartLine struct {
	ID                  uint      `json:"id"`
	DishID              uint      `json:"dishId"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions string    `json:"specialInstructions"`
	CreatedAt           time.Time `json:"createdAt"`

	DishName       string `json:"dishName"`
	Price          int64  `json:"price"`
	IsAvailable    bool   `json:"isAvailable"`
	ImageURL       string `json:"imageUrl"`
	RestaurantID   uint   `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
}

// FindCart returns the user's cart or gorm.ErrRecordNotFound.
func (r *CartRepository) FindCart(db *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := db.Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// EnsureCart creates the cart when missing. Concurrent callers end up with the
// same row thanks to the unique user_id index.
func (r *CartRepository) EnsureCart(db *gorm.DB, userID uint) (*entity.Cart, error) {
	c := entity.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&c).Error; err != nil {
		return nil, err
	}
	return r.FindCart(db, userID)
}

// LockCart takes a row lock on the cart for the rest of tx.
func (r *CartRepository) LockCart(tx *gorm.DB, cartID uint) error {
	var c entity.Cart
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", cartID).
		First(&c).Error
}

// GET /cart
func (r *CartRepository) LoadLines(db *gorm.DB, cartID uint) ([]CartLine, error) {
	var out []CartLine
	err := db.Table("cart_items AS ci").
		Select(`ci.id, ci.dish_id, ci.quantity, ci.special_instructions, ci.created_at,
			d.name AS dish_name, d.price, d.is_available, d.image_url,
			d.restaurant_id, rs.name AS restaurant_name`).
		Joins("JOIN dishes d ON d.id = ci.dish_id").
		Joins("JOIN restaurants rs ON rs.id = d.restaurant_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.created_at ASC, ci.id ASC").
		Scan(&out).Error
	return out, err
}

// LoadLine returns one line of the cart, or gorm.ErrRecordNotFound.
func (r *CartRepository) LoadLine(db *gorm.DB, cartID, itemID uint) (*CartLine, error) {
	var out []CartLine
	err := db.Table("cart_items AS ci").
		Select(`ci.id, ci.dish_id, ci.quantity, ci.special_instructions, ci.created_at,
			d.name AS dish_name, d.price, d.is_available, d.image_url,
			d.restaurant_id, rs.name AS restaurant_name`).
		Joins("JOIN dishes d ON d.id = ci.dish_id").
		Joins("JOIN restaurants rs ON rs.id = d.restaurant_id").
		Where("ci.cart_id = ? AND ci.id = ?", cartID, itemID).
		Limit(1).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &out[0], nil
}

// CurrentRestaurantID is the restaurant of any item in the cart, 0 when empty.
func (r *CartRepository) CurrentRestaurantID(db *gorm.DB, cartID uint) (uint, error) {
	var row struct{ RestaurantID uint }
	err := db.Table("cart_items AS ci").
		Select("d.restaurant_id").
		Joins("JOIN dishes d ON d.id = ci.dish_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.id ASC").
		Limit(1).
		Scan(&row).Error
	return row.RestaurantID, err
}

// ItemsForDish returns every row for the dish, oldest first.
func (r *CartRepository) ItemsForDish(tx *gorm.DB, cartID, dishID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("cart_id = ? AND dish_id = ?", cartID, dishID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *CartRepository) CreateItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Create(it).Error
}

func (r *CartRepository) UpdateItem(tx *gorm.DB, itemID uint, qty int, instructions string) error {
	return tx.Model(&entity.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{
			"quantity":             qty,
			"special_instructions": instructions,
			"updated_at":           time.Now(),
		}).Error
}

func (r *CartRepository) DeleteItems(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&entity.CartItem{}).Error
}

// DeleteItem removes an item only when it belongs to the cart.
func (r *CartRepository) DeleteItem(tx *gorm.DB, cartID, itemID uint) (bool, error) {
	res := tx.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&entity.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindItem loads an item of the cart, or gorm.ErrRecordNotFound.
func (r *CartRepository) FindItem(db *gorm.DB, cartID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ClearItems empties the cart and reports how many rows went away.
func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) (int64, error) {
	res := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
