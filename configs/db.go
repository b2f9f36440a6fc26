package configs

import (
	"fmt"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/entity"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the database selected by cfg.DBDriver.
func ConnectionDB(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		// busy timeout lets concurrent writers wait instead of failing fast
		dialector = sqlite.Open(cfg.DBSource + "?_busy_timeout=5000&_foreign_keys=on")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxOpenConns(20)
	}

	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// SetupDatabase migrates the schema.
func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.Dish{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Driver{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Payment{},
	)
}
