package entity

type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderFlow = map[OrderStatus]OrderStatus{
	OrderPending:        OrderPreparing,
	OrderPreparing:      OrderReadyForPickup,
	OrderReadyForPickup: OrderOutForDelivery,
	OrderOutForDelivery: OrderDelivered,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReadyForPickup,
		OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether an order may move from one status to another.
// Orders advance one step at a time; any non-terminal order may be cancelled.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() || from.Terminal() {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderFlow[from] == to
}
