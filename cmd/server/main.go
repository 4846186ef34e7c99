package main

import (
	"context"      // Context for Redis ping and shutdown
	"errors"       // Error inspection
	"math/rand/v2" // Discount picker
	"net/http"     // HTTP server
	"os"           // Process signals
	"os/signal"    // Signal notification
	"syscall"      // SIGTERM
	"time"         // Timeouts

	"reservation_system/internal/api"        // Custom package for API handlers
	"reservation_system/internal/config"     // Custom package for configuration
	"reservation_system/internal/db"         // Database connection
	"reservation_system/internal/domain"     // Discount randomizer
	"reservation_system/internal/repository" // GORM stores
	"reservation_system/internal/service"    // Business operations
	"reservation_system/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)

	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	cache := setupCache(cfg) // Redis-backed cache, or a no-op when Redis is not configured

	users := repository.NewUserStore(gdb)
	restaurants := repository.NewRestaurantStore(gdb)
	reservations := repository.NewReservationStore(gdb)
	rnd := domain.NewLockedRandomizer(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) // Shared by every request
	services := api.Services{
		Users: service.NewUserService(users, cache, service.UserOptions{
			JWTSecret: cfg.JWTSecret,
			JWTTTL:    cfg.JWTTTL,
			CacheTTL:  cfg.CacheTTL,
		}),
		Restaurants:  service.NewRestaurantService(restaurants, cache, cfg.CacheTTL),
		Reservations: service.NewReservationService(reservations, restaurants, users, rnd, time.Now),
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(services) // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	logrus.Info("Server stopped")
}

// setupLogger configures the global logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// setupCache connects to Redis when REDIS_ADDR is set
func setupCache(cfg *config.Config) utils.Cache {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, caching disabled")
		return utils.NoopCache{}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return utils.NewRedisCache(redisClient)
}
