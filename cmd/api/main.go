// Package main is the entry point for the store-locator-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/config"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/infra/mailer"
	"store-locator-service/internal/infra/postgres"
	"store-locator-service/internal/infra/postgres/migrations"
	rediscache "store-locator-service/internal/infra/redis"
	"store-locator-service/internal/logger"
	"store-locator-service/internal/transport/httpserver"
	"store-locator-service/internal/validator"
	"store-locator-service/pkg/bloom"
	"store-locator-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting store-locator-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repositories
	userRepo := postgres.NewUserRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// The cache backs user locations and reset tokens as well as search
	// results; cache.enabled only toggles search-result caching.
	cache := rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)

	var searchCache domain.Cache
	if cfg.Cache.Enabled {
		searchCache = cache
		log.Info("search cache enabled",
			zap.Duration("search_ttl", cfg.Cache.SearchTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("search cache disabled")
	}

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create and initialize email membership filter
	emailFilter := bloom.New(
		redisClient,
		cfg.Bloom.Key,
		cfg.Bloom.Capacity,
		cfg.Bloom.FalsePositiveRate,
		log.Logger,
	)
	if err := emailFilter.Init(ctx); err != nil {
		log.Fatal("failed to initialize email filter", zap.Error(err))
	}

	// Create mailer
	var mail domain.Mailer
	if cfg.Mailer.Enabled {
		mail = mailer.NewSMTP(mailer.Config{
			Host:     cfg.Mailer.Host,
			Port:     cfg.Mailer.Port,
			Username: cfg.Mailer.Username,
			Password: cfg.Mailer.Password,
			From:     cfg.Mailer.From,
		}, log.Logger)
	} else {
		mail = mailer.NewLog(log.Logger)
	}

	// Create services
	lockOpts := locker.Options{
		TTL:        cfg.Lock.TTL,
		Retries:    cfg.Lock.RetryTimes,
		RetryDelay: cfg.Lock.RetryDelay,
	}

	userSvc := service.NewUserService(userRepo, emailFilter, log.Logger)
	authSvc := service.NewAuthService(userRepo, cache, mail, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.ResetTokenTTL, log.Logger)
	locationSvc := service.NewLocationService(locationRepo, cache, distLocker, cfg.Cache.LocationTTL, lockOpts, log.Logger)
	storeSvc := service.NewStoreService(storeRepo, locationSvc, searchCache, cfg.Cache.SearchTTL, log.Logger)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, storeRepo, log.Logger)

	// Seed the email filter from the durable store so membership checks are
	// accurate from the first request after a restart.
	if err := userSvc.WarmEmailFilter(ctx); err != nil {
		log.Fatal("failed to warm email filter", zap.Error(err))
	}

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		httpserver.Services{
			Users:     userSvc,
			Auth:      authSvc,
			Stores:    storeSvc,
			Locations: locationSvc,
			Favorites: favoriteSvc,
		},
		db,
		redisClient,
		v,
		log.Logger,
	)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
