package services

import (
	"context"
	"testing"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderWorld struct {
	*fixture
	owner    *entity.User
	customer *entity.User
	rest     *entity.Restaurant
	order    *entity.Order
}

// newOrderWorld places one PENDING order at a restaurant with an owner.
func newOrderWorld(t *testing.T) *orderWorld {
	f := newFixture(t)
	ctx := context.Background()
	w := &orderWorld{fixture: f}
	w.owner = f.user("owner@zoomo.test", entity.RoleOwner)
	w.customer = f.user("c@zoomo.test", entity.RoleCustomer)
	w.rest = f.restaurant("I Love Pizza", w.owner.ID)
	d := f.dish(w.rest, "Margherita Pizza", 299, true)

	_, err := f.carts.SetItemQuantity(ctx, w.customer.ID, d.ID, 1, nil)
	require.NoError(t, err)
	out, err := f.orders.CreateOrderFromCart(ctx, w.customer.ID, CreateOrderInput{})
	require.NoError(t, err)
	w.order = out.Order
	return w
}

func (w *orderWorld) ownerActor() Actor {
	return Actor{UserID: w.owner.ID, Role: entity.RoleOwner}
}

func TestAssignDriverRequiresReadyForPickup(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	drv := w.driver(w.user("d@zoomo.test", entity.RoleDriver), true)

	for _, st := range []entity.OrderStatus{entity.OrderPending, entity.OrderPreparing, entity.OrderDelivered, entity.OrderCancelled} {
		w.setStatus(w.order.ID, st)
		_, err := w.orders.AssignDriver(ctx, w.order.ID, drv.ID)
		assert.True(t, IsKind(err, KindInvalidState), "%s: %v", st, err)
		assert.True(t, w.reloadDriver(drv.ID).IsAvailable, "%s: driver untouched", st)
		assert.Nil(t, w.reloadOrder(w.order.ID).DriverID)
	}
}

func TestAssignDriver(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	busy := w.driver(w.user("busy@zoomo.test", entity.RoleDriver), false)
	free := w.driver(w.user("free@zoomo.test", entity.RoleDriver), true)
	w.setStatus(w.order.ID, entity.OrderReadyForPickup)

	_, err := w.orders.AssignDriver(ctx, 9999, free.ID)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)
	_, err = w.orders.AssignDriver(ctx, w.order.ID, 9999)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)

	_, err = w.orders.AssignDriver(ctx, w.order.ID, busy.ID)
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)
	assert.Equal(t, entity.OrderReadyForPickup, w.reloadOrder(w.order.ID).Status)

	o, err := w.orders.AssignDriver(ctx, w.order.ID, free.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderOutForDelivery, o.Status)

	got := w.reloadOrder(w.order.ID)
	assert.Equal(t, entity.OrderOutForDelivery, got.Status)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, free.ID, *got.DriverID)
	assert.False(t, w.reloadDriver(free.ID).IsAvailable)

	// already on the road
	_, err = w.orders.AssignDriver(ctx, w.order.ID, free.ID)
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)
}

func TestOwnerAdvance(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	stranger := w.user("stranger@zoomo.test", entity.RoleOwner)

	_, err := w.orders.OwnerAdvance(ctx, Actor{UserID: stranger.ID, Role: entity.RoleOwner}, w.order.ID, entity.OrderPreparing)
	assert.True(t, IsKind(err, KindForbidden), "got %v", err)

	_, err = w.orders.OwnerAdvance(ctx, w.ownerActor(), w.order.ID, entity.OrderDelivered)
	assert.True(t, IsKind(err, KindValidation), "owners do not deliver: %v", err)

	_, err = w.orders.OwnerAdvance(ctx, w.ownerActor(), w.order.ID, entity.OrderReadyForPickup)
	assert.True(t, IsKind(err, KindInvalidState), "no skipping: %v", err)

	o, err := w.orders.OwnerAdvance(ctx, w.ownerActor(), w.order.ID, entity.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPreparing, o.Status)

	admin := w.user("admin@zoomo.test", entity.RoleAdmin)
	o, err = w.orders.OwnerAdvance(ctx, Actor{UserID: admin.ID, Role: entity.RoleAdmin}, w.order.ID, entity.OrderReadyForPickup)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReadyForPickup, o.Status)

	assert.Equal(t, []string{events.OrderCreated, events.OrderStatusChanged, events.OrderStatusChanged}, w.events.Keys())
}

func TestDriverFlow(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	du := w.user("d@zoomo.test", entity.RoleDriver)
	other := w.user("d2@zoomo.test", entity.RoleDriver)
	drv := w.driver(du, true)
	w.driver(other, true)
	w.setStatus(w.order.ID, entity.OrderReadyForPickup)

	o, err := w.orders.DriverAccept(ctx, du.ID, w.order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderOutForDelivery, o.Status)

	_, err = w.drivers.SetAvailability(ctx, du.ID, true)
	assert.True(t, IsKind(err, KindInvalidState), "busy driver: %v", err)

	_, err = w.orders.DriverDeliver(ctx, other.ID, w.order.ID)
	assert.True(t, IsKind(err, KindForbidden), "got %v", err)

	o, err = w.orders.DriverDeliver(ctx, du.ID, w.order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, o.Status)
	assert.True(t, w.reloadDriver(drv.ID).IsAvailable, "delivered frees the driver")

	_, err = w.orders.DriverDeliver(ctx, du.ID, w.order.ID)
	assert.True(t, IsKind(err, KindInvalidState), "terminal: %v", err)
}

func TestCancelOnTheRoadReleasesDriver(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()
	drv := w.driver(w.user("d@zoomo.test", entity.RoleDriver), true)
	w.setStatus(w.order.ID, entity.OrderReadyForPickup)

	_, err := w.orders.OwnerAssignDriver(ctx, w.ownerActor(), w.order.ID, drv.ID)
	require.NoError(t, err)
	require.False(t, w.reloadDriver(drv.ID).IsAvailable)

	o, err := w.orders.OwnerAdvance(ctx, w.ownerActor(), w.order.ID, entity.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.True(t, w.reloadDriver(drv.ID).IsAvailable)
}

func TestCustomerCancel(t *testing.T) {
	w := newOrderWorld(t)
	ctx := context.Background()

	_, err := w.orders.CustomerCancel(ctx, w.owner.ID, w.order.ID)
	assert.True(t, IsKind(err, KindNotFound), "not their order: %v", err)

	w.setStatus(w.order.ID, entity.OrderPreparing)
	_, err = w.orders.CustomerCancel(ctx, w.customer.ID, w.order.ID)
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)

	w.setStatus(w.order.ID, entity.OrderPending)
	o, err := w.orders.CustomerCancel(ctx, w.customer.ID, w.order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)
	assert.Equal(t, entity.OrderCancelled, w.reloadOrder(w.order.ID).Status)
}
