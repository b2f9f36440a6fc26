package services

import (
	"path/filepath"
	"testing"

	"github.com/Shenoy-shank05/zoomoeats/configs"
	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/cache"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "zoomo.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type fixture struct {
	t       testing.TB
	db      *gorm.DB
	carts   *CartService
	orders  *OrderService
	drivers *DriverService
	events  *events.Recorder
	idem    cache.Cache
	pricing Pricing
}

func newFixture(t testing.TB) *fixture {
	db := newTestDB(t)
	log := zaptest.NewLogger(t)
	rec := &events.Recorder{}
	idem := cache.NewMemory("test")
	p := DefaultPricing()
	orders := NewOrderService(db, p, idem, rec, log)
	orders.Eta = func() int { return 35 }
	return &fixture{
		t:       t,
		db:      db,
		carts:   NewCartService(db, p, log),
		orders:  orders,
		drivers: NewDriverService(db, log),
		events:  rec,
		idem:    idem,
		pricing: p,
	}
}

func (f *fixture) user(email, role string) *entity.User {
	u := &entity.User{Email: email, Password: "x", Name: email, Role: role}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

func (f *fixture) restaurant(name string, ownerID uint) *entity.Restaurant {
	r := &entity.Restaurant{Name: name, IsOpen: true, OwnerID: ownerID}
	require.NoError(f.t, f.db.Create(r).Error)
	return r
}

func (f *fixture) dish(rest *entity.Restaurant, name string, price int64, available bool) *entity.Dish {
	d := &entity.Dish{Name: name, Price: price, IsAvailable: available, RestaurantID: rest.ID}
	require.NoError(f.t, f.db.Create(d).Error)
	return d
}

func (f *fixture) driver(u *entity.User, available bool) *entity.Driver {
	d := &entity.Driver{UserID: u.ID, Name: u.Name, VehiclePlate: "KA01AB1234", IsAvailable: available}
	require.NoError(f.t, f.db.Create(d).Error)
	return d
}

func (f *fixture) reloadDriver(id uint) entity.Driver {
	var d entity.Driver
	require.NoError(f.t, f.db.First(&d, id).Error)
	return d
}

func (f *fixture) reloadOrder(id uint) entity.Order {
	var o entity.Order
	require.NoError(f.t, f.db.First(&o, id).Error)
	return o
}

func (f *fixture) countRows(model any) int64 {
	var n int64
	require.NoError(f.t, f.db.Model(model).Count(&n).Error)
	return n
}

// setStatus forces an order into a status for transition tests.
func (f *fixture) setStatus(orderID uint, st entity.OrderStatus) {
	require.NoError(f.t, f.db.Model(&entity.Order{}).Where("id = ?", orderID).Update("status", st).Error)
}

func ptr[T any](v T) *T { return &v }
