package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shenoy-shank05/zoomoeats/configs"
	"github.com/Shenoy-shank05/zoomoeats/pkg/cache"
	"github.com/Shenoy-shank05/zoomoeats/pkg/events"
	"github.com/Shenoy-shank05/zoomoeats/repository"
	"github.com/Shenoy-shank05/zoomoeats/routes"
	"github.com/Shenoy-shank05/zoomoeats/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := configs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *configs.Config, logger *zap.Logger) error {
	db, err := configs.ConnectionDB(cfg, logger)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	adminID, err := configs.SeedAdmin(db, cfg, logger)
	if err != nil {
		return err
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db, adminID, logger); err != nil {
			return err
		}
	}

	var idem cache.Cache
	if cfg.RedisAddr != "" {
		idem = cache.NewRedis(cfg.RedisAddr, "zoomo")
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := cache.Ping(ctx, idem)
		cancel()
		if err != nil {
			return fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
	} else {
		logger.Info("REDIS_ADDR not set, idempotency keys kept in memory")
		idem = cache.NewMemory("zoomo")
	}

	var pub events.Publisher = events.NopPublisher{}
	if cfg.RabbitURI != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.RabbitURI, cfg.OrdersExchange)
		if err != nil {
			return err
		}
		pub = amqpPub
	}
	defer pub.Close()

	pricing := services.Pricing{DeliveryFee: cfg.DeliveryFee, TaxRate: cfg.TaxRate}
	orders := services.NewOrderService(db, pricing, idem, pub, logger)
	orders.IdempotencyTTL = cfg.IdempotencyTTL

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Log:       logger,
		JWTSecret: cfg.JWTSecret,
		Auth:      services.NewAuthService(repository.NewUserRepository(db), cfg.JWTSecret, cfg.JWTTTL),
		Carts:     services.NewCartService(db, pricing, logger),
		Orders:    orders,
		Drivers:   services.NewDriverService(db, logger),
		Payments:  services.NewPaymentService(db, logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
