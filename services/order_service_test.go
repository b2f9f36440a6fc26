package services

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderFromEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)

	// no cart row at all
	_, err := f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)

	// cart row without items
	_, err = f.carts.GetOrCreateCart(ctx, u.ID)
	require.NoError(t, err)
	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)

	assert.Equal(t, int64(0), f.countRows(&entity.Order{}))
	assert.Empty(t, f.events.Keys())
}

func TestCreateOrderFromCartMatchesSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("I Love Pizza", 0)
	marg := f.dish(r1, "Margherita Pizza", 299, true)
	pep := f.dish(r1, "Pepperoni Pizza", 349, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, marg.ID, 2, ptr("well done"))
	require.NoError(t, err)
	_, err = f.carts.SetItemQuantity(ctx, u.ID, pep.ID, 1, nil)
	require.NoError(t, err)
	before, err := f.carts.GetCartSummary(ctx, u.ID)
	require.NoError(t, err)

	out, err := f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{SpecialInstructions: "ring twice"})
	require.NoError(t, err)

	o := out.Order
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, before.Summary.ItemCount, o.ItemCount)
	assert.Equal(t, before.Summary.Total, o.Total)
	assert.Equal(t, before.Summary.Subtotal, o.Subtotal)
	assert.Equal(t, before.Summary.Tax, o.Tax)
	assert.Equal(t, int64(49), o.DeliveryFee)
	assert.Equal(t, r1.ID, o.RestaurantID)
	assert.Equal(t, "ring twice", o.SpecialInstructions)
	assert.Equal(t, 35, o.EtaMinutes)
	assert.Equal(t, RestaurantSummary{ID: r1.ID, Name: "I Love Pizza"}, out.Restaurant)

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Margherita Pizza", out.Items[0].Name)
	assert.Equal(t, int64(299), out.Items[0].UnitPrice)
	assert.Equal(t, int64(598), out.Items[0].LineTotal)
	assert.Equal(t, "well done", out.Items[0].SpecialInstructions)

	assert.Equal(t, int64(0), f.countRows(&entity.CartItem{}), "cart is emptied")
	assert.Equal(t, int64(2), f.countRows(&entity.OrderItem{}))
	assert.Equal(t, []string{events.OrderCreated}, f.events.Keys())

	detail, err := f.orders.DetailForUser(ctx, u.ID, o.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 2)
	assert.Equal(t, "I Love Pizza", detail.Restaurant.Name)
}

func TestCreateOrderUsesCurrentPricesAndSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("Coffee Express", 0)
	d := f.dish(r1, "Lava Cake", 179, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&entity.Dish{}).Where("id = ?", d.ID).Update("price", 199).Error)

	out, err := f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(199), out.Items[0].UnitPrice)
	assert.Equal(t, int64(199), out.Order.Subtotal)

	// later menu changes do not touch the order
	require.NoError(t, f.db.Model(&entity.Dish{}).Where("id = ?", d.ID).Update("price", 999).Error)
	detail, err := f.orders.DetailForUser(ctx, u.ID, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(199), detail.Items[0].UnitPrice)
	assert.Equal(t, out.Order.Total, detail.Order.Total)
}

func TestCreateOrderRejectsUnavailableDish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("Taste of Punjab", 0)
	d := f.dish(r1, "Butter Chicken", 399, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&entity.Dish{}).Where("id = ?", d.ID).Update("is_available", false).Error)

	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)
	assert.Equal(t, int64(0), f.countRows(&entity.Order{}))
	assert.Equal(t, int64(1), f.countRows(&entity.CartItem{}), "cart left intact")
}

func TestCreateOrderRejectsDeletedDish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("Taste of Punjab", 0)
	d := f.dish(r1, "Paneer Tikka", 249, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 1, nil)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&entity.Dish{}, d.ID).Error)

	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)
	assert.Equal(t, int64(0), f.countRows(&entity.Order{}))
}

func TestCreateOrderAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	other := f.user("b@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("Moonlight Cafe", 0)
	d := f.dish(r1, "Grilled Cheese Sandwich", 149, true)

	mine := &entity.Address{UserID: u.ID, Line1: "12 Moonlight Street", City: "Jourian", PostalCode: "181101"}
	theirs := &entity.Address{UserID: other.ID, Line1: "1 Food Street"}
	require.NoError(t, f.db.Create(mine).Error)
	require.NoError(t, f.db.Create(theirs).Error)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 1, nil)
	require.NoError(t, err)

	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{AddressID: &theirs.ID})
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)
	assert.Equal(t, int64(1), f.countRows(&entity.CartItem{}))

	out, err := f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{AddressID: &mine.ID})
	require.NoError(t, err)
	assert.Equal(t, "12 Moonlight Street, Jourian, 181101", out.Order.AddressSnap)
	require.NotNil(t, out.Order.AddressID)
	assert.Equal(t, mine.ID, *out.Order.AddressID)
}

func TestCreateOrderIdempotencyKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("Sharma Fast Food", 0)
	d := f.dish(r1, "Peri Peri Fries", 99, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 2, nil)
	require.NoError(t, err)

	in := CreateOrderInput{IdempotencyKey: "k-1"}
	first, err := f.orders.CreateOrderFromCart(ctx, u.ID, in)
	require.NoError(t, err)
	again, err := f.orders.CreateOrderFromCart(ctx, u.ID, in)
	require.NoError(t, err)

	assert.Equal(t, first.Order.ID, again.Order.ID)
	assert.Equal(t, int64(1), f.countRows(&entity.Order{}))
	assert.Equal(t, []string{events.OrderCreated}, f.events.Keys())

	// a request still holding the key
	require.NoError(t, f.idem.Set(ctx, f.idem.Key("order", strconv.FormatUint(uint64(u.ID), 10), "busy"), idempotencyPending, 0))
	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{IdempotencyKey: "busy"})
	assert.True(t, IsKind(err, KindInvalidState), "got %v", err)

	// a failed attempt releases its key
	_, err = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{IdempotencyKey: "k-2"})
	assert.True(t, IsKind(err, KindInvalidState), "cart is empty now: %v", err)
	v, err := f.idem.Get(ctx, f.idem.Key("order", strconv.FormatUint(uint64(u.ID), 10), "k-2"))
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestListQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user("owner@zoomo.test", entity.RoleOwner)
	stranger := f.user("stranger@zoomo.test", entity.RoleOwner)
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	r1 := f.restaurant("I Love Pizza", owner.ID)
	d := f.dish(r1, "Margherita Pizza", 299, true)

	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 1, nil)
	require.NoError(t, err)
	out, err := f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
	require.NoError(t, err)

	mine, err := f.orders.ListMine(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "I Love Pizza", mine[0].RestaurantName)
	assert.Equal(t, entity.OrderPending, mine[0].Status)

	page, err := f.orders.ListForRestaurant(ctx, Actor{UserID: owner.ID, Role: entity.RoleOwner}, r1.ID, "PENDING", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "a@zoomo.test", page.Items[0].CustomerName)

	_, err = f.orders.ListForRestaurant(ctx, Actor{UserID: stranger.ID, Role: entity.RoleOwner}, r1.ID, "", 1, 20)
	assert.True(t, IsKind(err, KindForbidden), "got %v", err)

	_, err = f.orders.ListForRestaurant(ctx, Actor{UserID: owner.ID, Role: entity.RoleOwner}, r1.ID, "COOKING", 1, 20)
	assert.True(t, IsKind(err, KindValidation), "got %v", err)

	_, err = f.orders.DetailForUser(ctx, stranger.ID, out.Order.ID)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)

	ready, err := f.orders.ListReadyForPickup(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, ready)
	f.setStatus(out.Order.ID, entity.OrderReadyForPickup)
	ready, err = f.orders.ListReadyForPickup(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, ready, 1)
}

func TestCreateOrderFromCartConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	d := f.dish(f.restaurant("I Love Pizza", 0), "Margherita Pizza", 299, true)
	_, err := f.carts.SetItemQuantity(ctx, u.ID, d.ID, 2, nil)
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.orders.CreateOrderFromCart(ctx, u.ID, CreateOrderInput{})
		}(i)
	}
	wg.Wait()

	placed := 0
	for _, err := range errs {
		if err == nil {
			placed++
			continue
		}
		assert.True(t, IsKind(err, KindInvalidState), "losers see an empty cart: %v", err)
	}
	assert.Equal(t, 1, placed)
	assert.Equal(t, int64(1), f.countRows(&entity.Order{}))
	assert.Equal(t, int64(1), f.countRows(&entity.OrderItem{}))
	assert.Equal(t, int64(0), f.countRows(&entity.CartItem{}))
}
