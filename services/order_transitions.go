package services

import (
	"context"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// move applies one guarded status change. A driver holding the order is
// released when it is delivered or cancelled on the road.
func (s *OrderService) move(ctx context.Context, o *entity.Order, to entity.OrderStatus) (*entity.Order, error) {
	from := o.Status
	if !entity.CanTransition(from, to) {
		return nil, NewInvalidStatef("cannot move order from %s to %s", from, to)
	}
	releaseDriver := from == entity.OrderOutForDelivery && o.DriverID != nil

	err := repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		ok, err := s.Repo.UpdateStatusFromTo(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if !ok {
			return NewInvalidState("order status changed, reload and retry")
		}
		if releaseDriver {
			return s.DriverRepo.SetAvailable(tx, *o.DriverID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = to
	s.Log.Info("order status changed",
		zap.Uint("orderId", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	s.publish(ctx, events.OrderStatusChanged, o)
	return o, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(s.DB.WithContext(ctx), orderID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgOrderNotFound, "load order")
	}
	return o, nil
}

// AssignDriver puts a READY_FOR_PICKUP order on the road. Order and driver
// change together or not at all.
func (s *OrderService) AssignDriver(ctx context.Context, orderID, driverID uint) (*entity.Order, error) {
	db := s.DB.WithContext(ctx)
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	d, err := s.DriverRepo.GetByID(db, driverID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgDriverNotFound, "load driver")
	}
	if o.Status != entity.OrderReadyForPickup {
		return nil, NewInvalidStatef("order is %s, not %s", o.Status, entity.OrderReadyForPickup)
	}
	if !d.IsAvailable {
		return nil, NewInvalidState("driver is not available")
	}

	err = repository.WithRetry(ctx, s.DB, func(tx *gorm.DB) error {
		ok, err := s.Repo.AssignDriverGuard(tx, o.ID, d.ID)
		if err != nil {
			return err
		}
		if !ok {
			return NewInvalidState("order is no longer ready for pickup")
		}
		ok, err = s.DriverRepo.ClaimAvailable(tx, d.ID)
		if err != nil {
			return err
		}
		if !ok {
			return NewInvalidState("driver is no longer available")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.Status = entity.OrderOutForDelivery
	o.DriverID = &d.ID
	s.Log.Info("driver assigned", zap.Uint("orderId", o.ID), zap.Uint("driverId", d.ID))
	s.publish(ctx, events.OrderStatusChanged, o)
	return o, nil
}

// ----- Owner actions -----

var ownerTargets = map[entity.OrderStatus]bool{
	entity.OrderPreparing:      true,
	entity.OrderReadyForPickup: true,
	entity.OrderCancelled:      true,
}

// PATCH /owner/orders/:id/status
func (s *OrderService) OwnerAdvance(ctx context.Context, actor Actor, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !ownerTargets[to] {
		return nil, NewValidationf("restaurants cannot set status %q", to)
	}
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(actor, o.RestaurantID); err != nil {
		return nil, err
	}
	return s.move(ctx, o, to)
}

// POST /owner/orders/:id/assign
func (s *OrderService) OwnerAssignDriver(ctx context.Context, actor Actor, orderID, driverID uint) (*entity.Order, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(actor, o.RestaurantID); err != nil {
		return nil, err
	}
	return s.AssignDriver(ctx, orderID, driverID)
}

// ----- Driver actions -----

func (s *OrderService) driverFor(ctx context.Context, userID uint) (*entity.Driver, error) {
	d, err := s.DriverRepo.GetByUserID(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, notFoundOr(err, "driver profile not found", "load driver")
	}
	return d, nil
}

// POST /driver/orders/:id/accept
func (s *OrderService) DriverAccept(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	d, err := s.driverFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.AssignDriver(ctx, orderID, d.ID)
}

// POST /driver/orders/:id/deliver
func (s *OrderService) DriverDeliver(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	d, err := s.driverFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.DriverID == nil || *o.DriverID != d.ID {
		return nil, NewForbidden("order is not assigned to you")
	}
	return s.move(ctx, o, entity.OrderDelivered)
}

// ----- Customer actions -----

// POST /orders/:id/cancel. Customers may cancel only before the kitchen starts.
func (s *OrderService) CustomerCancel(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.WithContext(ctx).GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, ErrMsgOrderNotFound, "load order")
	}
	if o.Status != entity.OrderPending {
		return nil, NewInvalidStatef("order is %s and can no longer be cancelled", o.Status)
	}
	return s.move(ctx, o, entity.OrderCancelled)
}
