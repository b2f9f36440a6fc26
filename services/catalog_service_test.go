package services

import (
	"testing"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantListAndDetail(t *testing.T) {
	f := newFixture(t)
	svc := NewRestaurantService(repository.NewRestaurantRepository(f.db))

	pizza, err := svc.Create(1, RestaurantInput{Name: " I Love Pizza ", Area: "Main Market", Cuisine: "Italian", Rating: 4.5})
	require.NoError(t, err)
	assert.Equal(t, "I Love Pizza", pizza.Name)
	assert.True(t, pizza.IsOpen)
	_, err = svc.Create(1, RestaurantInput{Name: "Sweet Tooth", Area: "Old Town", Cuisine: "Pizza"})
	require.NoError(t, err)

	_, err = svc.Create(1, RestaurantInput{Name: "  "})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)
	_, err = svc.Create(1, RestaurantInput{Name: "Too Good", Rating: 5.5})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)

	names := func(rs []entity.Restaurant) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		filter repository.RestaurantFilter
		want   []string
	}{
		{"all by name", repository.RestaurantFilter{}, []string{"I Love Pizza", "Sweet Tooth"}},
		{"q matches name only", repository.RestaurantFilter{Q: "PIZZA"}, []string{"I Love Pizza"}},
		{"cuisine", repository.RestaurantFilter{Cuisine: "pizza"}, []string{"Sweet Tooth"}},
		{"area", repository.RestaurantFilter{Area: "market"}, []string{"I Love Pizza"}},
		{"no match", repository.RestaurantFilter{Q: "sushi"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	f.dish(pizza, "Pepperoni Pizza", 349, true)
	f.dish(pizza, "Margherita Pizza", 299, true)
	f.dish(pizza, "Chicken Tandoori Pizza", 449, false)

	d, err := svc.Detail(pizza.ID)
	require.NoError(t, err)
	require.Len(t, d.Dishes, 2, "unavailable dishes are hidden")
	assert.Equal(t, "Margherita Pizza", d.Dishes[0].Name)

	_, err = svc.Detail(9999)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)

	mine, err := svc.ListMine(1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestDishOwnerOperations(t *testing.T) {
	f := newFixture(t)
	restRepo := repository.NewRestaurantRepository(f.db)
	svc := NewDishService(repository.NewDishRepository(f.db), restRepo)

	owner := f.user("owner@zoomo.test", entity.RoleOwner)
	stranger := f.user("stranger@zoomo.test", entity.RoleOwner)
	admin := f.user("admin@zoomo.test", entity.RoleAdmin)
	rest := f.restaurant("I Love Pizza", owner.ID)

	asOwner := Actor{UserID: owner.ID, Role: entity.RoleOwner}
	asStranger := Actor{UserID: stranger.ID, Role: entity.RoleOwner}
	asAdmin := Actor{UserID: admin.ID, Role: entity.RoleAdmin}

	_, err := svc.Create(asStranger, rest.ID, DishInput{Name: "Garlic Bread", Price: 99})
	assert.True(t, IsKind(err, KindForbidden), "got %v", err)
	_, err = svc.Create(asOwner, 9999, DishInput{Name: "Garlic Bread", Price: 99})
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)
	_, err = svc.Create(asOwner, rest.ID, DishInput{Name: "Garlic Bread", Price: -1})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)

	d, err := svc.Create(asOwner, rest.ID, DishInput{Name: " Garlic Bread ", Category: "Sides", Price: 99})
	require.NoError(t, err)
	assert.Equal(t, "Garlic Bread", d.Name)
	assert.True(t, d.IsAvailable)

	_, err = svc.Create(asAdmin, rest.ID, DishInput{Name: "Cheese Dip", Price: 49})
	require.NoError(t, err, "admins manage any restaurant")

	_, err = svc.Update(asStranger, d.ID, DishPatch{Price: ptr(int64(120))})
	assert.True(t, IsKind(err, KindForbidden), "got %v", err)
	_, err = svc.Update(asOwner, d.ID, DishPatch{Price: ptr(int64(-5))})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)
	_, err = svc.Update(asOwner, d.ID, DishPatch{Name: ptr("  ")})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)
	_, err = svc.Update(asOwner, 9999, DishPatch{})
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)

	upd, err := svc.Update(asAdmin, d.ID, DishPatch{Price: ptr(int64(120)), IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(120), upd.Price)
	assert.False(t, upd.IsAvailable)

	list, err := svc.ListByRestaurant(rest.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cheese Dip", list[0].Name)

	_, err = svc.ListByRestaurant(9999)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)
}

func TestUserProfileAndAddresses(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(repository.NewUserRepository(f.db))
	u := f.user("a@zoomo.test", entity.RoleCustomer)
	other := f.user("b@zoomo.test", entity.RoleCustomer)

	got, err := svc.UpdateMe(u.ID, UpdateMeInput{Name: ptr(" Asha "), Phone: ptr("98450")})
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "98450", got.Phone)

	_, err = svc.Me(9999)
	assert.True(t, IsKind(err, KindNotFound), "got %v", err)

	_, err = svc.AddAddress(u.ID, AddressInput{Line1: "   "})
	assert.True(t, IsKind(err, KindValidation), "got %v", err)

	home, err := svc.AddAddress(u.ID, AddressInput{Label: "Home", Line1: " 12 Main Market ", City: "Jourian"})
	require.NoError(t, err)
	assert.Equal(t, "12 Main Market", home.Line1)
	_, err = svc.AddAddress(u.ID, AddressInput{Label: "Work", Line1: "4 Mall Road"})
	require.NoError(t, err)
	_, err = svc.AddAddress(other.ID, AddressInput{Line1: "9 Lake View"})
	require.NoError(t, err)

	addrs, err := svc.ListAddresses(u.ID)
	require.NoError(t, err)
	require.Len(t, addrs, 2, "only the caller's addresses")
	assert.Equal(t, "Home", addrs[0].Label)
	assert.Equal(t, "Work", addrs[1].Label)
}
