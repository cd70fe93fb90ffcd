package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"literasi-backend/internal/cache"
	"literasi-backend/internal/config"
	"literasi-backend/internal/database"
	"literasi-backend/internal/docstore"
	"literasi-backend/internal/events"
	"literasi-backend/internal/handlers"
	"literasi-backend/internal/logger"
	"literasi-backend/internal/repository"
	"literasi-backend/internal/router"
	"literasi-backend/internal/services"
	"literasi-backend/internal/websocket"
	"literasi-backend/internal/worker"
)

const (
	startupTimeout    = 15 * time.Second
	rewardWorkerCount = 2
	rewardQueueSize   = 256
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("starting literasi backend", "env", cfg.Env, "port", cfg.Port)

	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStart()

	// ──── Step 2: Open Document Store ────
	// A missing or unreachable database leaves the API up; data endpoints
	// then answer "Database not connected".
	store, err := docstore.Open(startCtx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Error("document store unavailable", "error", err)
		store = docstore.Disconnected{}
	}
	if docstore.IsConnected(store) {
		log.Info("document store connected")
	} else {
		log.Warn("running without a database")
	}

	// ──── Step 3: Optional Redis (cache + events) ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(startCtx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache and shared events", "error", err)
			redisClient = nil
		} else {
			log.Info("redis connected")
		}
	}

	var activityCache repository.ActivityCache
	var bus interface {
		events.Publisher
		events.Subscriber
	}
	if redisClient != nil {
		activityCache = cache.NewActivityCache(redisClient, cfg.ActivityCacheTTL)
		bus = events.NewRedisBus(redisClient)
	} else {
		bus = events.NewLocal()
	}

	// ──── Initialize Repositories ────
	childRepo := repository.NewChildRepo(store)
	activityRepo := repository.NewActivityRepo(store, activityCache, log)
	progressRepo := repository.NewProgressRepo(store)
	badgeRepo := repository.NewBadgeRepo(store)

	// ──── Step 4: Seed Catalog ────
	if docstore.IsConnected(store) {
		if err := repository.Seed(startCtx, activityRepo, badgeRepo, log); err != nil {
			log.Error("seeding failed", "error", err)
		}
	}

	// ──── Step 5: Start Reward Event Workers ────
	rewardPool := worker.NewPool(bus, rewardWorkerCount, rewardQueueSize, log)
	rewardPool.Start()

	// ──── Initialize Services ────
	childService := services.NewChildService(childRepo)
	catalogService := services.NewCatalogService(activityRepo, badgeRepo)
	recommendationService := services.NewRecommendationService(activityRepo)
	progressService := services.NewProgressService(progressRepo, childRepo, rewardPool, log)
	reportService := services.NewReportService(progressRepo)
	diagnosticsService := services.NewDiagnosticsService(store, cfg.HasDatabaseURL(), cfg.HasDatabaseName())

	// ──── Initialize Handlers ────
	systemHandler := handlers.NewSystemHandler(diagnosticsService)
	childHandler := handlers.NewChildHandler(childService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	learningHandler := handlers.NewLearningHandler(recommendationService, progressService, reportService)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(bus, log)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		log,
		systemHandler,
		childHandler,
		catalogHandler,
		learningHandler,
		wsHub,
		cfg.AllowedOrigins,
		cfg.WriteRateLimit,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)

		rewardPool.Stop()
		if redisClient != nil {
			redisClient.Close()
		}
		if err := store.Close(ctx); err != nil {
			log.Warn("failed to close document store", "error", err)
		}
	}()

	log.Info("literasi backend ready", "addr", fmt.Sprintf("http://localhost:%s", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("server error", "error", err)
	}
	<-shutdownDone
}
