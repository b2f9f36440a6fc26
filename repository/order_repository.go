package repository

import (
	"context"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// POST /orders
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(db *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := db.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID             uint               `json:"id"`
	RestaurantID   uint               `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	Total          int64              `json:"total"`
	ItemCount      int                `json:"itemCount"`
	Status         entity.OrderStatus `json:"status"`
	EtaMinutes     int                `json:"etaMinutes"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// GET /orders/mine
func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Table("orders AS o").
		Select("o.id, o.restaurant_id, rs.name AS restaurant_name, o.total, o.item_count, o.status, o.eta_minutes, o.created_at").
		Joins("JOIN restaurants rs ON rs.id = o.restaurant_id").
		Where("o.user_id = ? AND o.deleted_at IS NULL", userID).
		Order("o.id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// GET /orders/:id
func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OwnerOrderSummary struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	Total        int64              `json:"total"`
	ItemCount    int                `json:"itemCount"`
	Status       entity.OrderStatus `json:"status"`
	DriverID     *uint              `json:"driverId,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// GET /owner/restaurants/:id/orders
func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status entity.OrderStatus, page, limit int) ([]OwnerOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Table("orders AS o").Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		dbCount = dbCount.Where("o.status = ?", status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := make([]OwnerOrderSummary, 0, limit)
	db := r.DB.Table("orders AS o").
		Select("o.id, o.user_id, u.name AS customer_name, o.total, o.item_count, o.status, o.driver_id, o.created_at").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GET /driver/orders/available
func (r *OrderRepository) ListReadyForPickup(limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []OrderSummary
	err := r.DB.Table("orders AS o").
		Select("o.id, o.restaurant_id, rs.name AS restaurant_name, o.total, o.item_count, o.status, o.eta_minutes, o.created_at").
		Joins("JOIN restaurants rs ON rs.id = o.restaurant_id").
		Where("o.status = ? AND o.driver_id IS NULL AND o.deleted_at IS NULL", entity.OrderReadyForPickup).
		Order("o.id ASC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// UpdateStatusFromTo moves the order only when it is still in from.
func (r *OrderRepository) UpdateStatusFromTo(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AssignDriverGuard puts a READY_FOR_PICKUP order on the road with driverID.
func (r *OrderRepository) AssignDriverGuard(tx *gorm.DB, orderID, driverID uint) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, entity.OrderReadyForPickup).
		Updates(map[string]any{
			"status":    entity.OrderOutForDelivery,
			"driver_id": driverID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItems(tx *gorm.DB, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *OrderRepository) GetOrderItems(db *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// WithContext returns a copy bound to ctx for read queries.
func (r *OrderRepository) WithContext(ctx context.Context) *OrderRepository {
	return &OrderRepository{DB: r.DB.WithContext(ctx)}
}
