package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ampereshop/storeapi/internal/api"
	"github.com/ampereshop/storeapi/internal/cache"
	"github.com/ampereshop/storeapi/internal/cart"
	"github.com/ampereshop/storeapi/internal/checkout"
	"github.com/ampereshop/storeapi/internal/config"
	"github.com/ampereshop/storeapi/internal/payment"
	"github.com/ampereshop/storeapi/internal/repository/mongodb"
	"github.com/ampereshop/storeapi/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting storeapi",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	// Connect to Postgres (orders, idempotency keys)
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, logger)

	// Connect to Mongo (catalog, users, quotations, cart snapshots)
	ctx := context.Background()
	mongoDB, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("failed to connect to mongo", zap.Error(err))
	}
	mongodb.Attach(ctx, repos, mongoDB, logger)

	// Redis cart cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cartCache := cache.NewRedisCache(redisClient)

	// Wire up the cart-to-order pipeline
	carts := cart.NewManager(repos.CartSnapshot, cartCache, logger)
	gateway := payment.NewClient(cfg.Gateway, logger)
	checkoutSvc := checkout.NewService(repos, carts, gateway, cfg.Pricing.TaxRate, cfg.Pricing.ShippingFee, logger)

	router := api.NewRouter(cfg, repos, carts, checkoutSvc, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("failed to close redis client", zap.Error(err))
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		logger.Warn("failed to disconnect mongo client", zap.Error(err))
	}

	logger.Info("server stopped")
}
