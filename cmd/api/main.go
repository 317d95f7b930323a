package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/me-luc/batepapo-uol-api/cmd/api/router"
	cacheAdapter "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/adapter"
	cacheport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/cache/port"
	"github.com/me-luc/batepapo-uol-api/internal/config"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/database"
	queueAdapter "github.com/me-luc/batepapo-uol-api/internal/infrastructure/queue/adapter"
	qport "github.com/me-luc/batepapo-uol-api/internal/infrastructure/queue/port"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/realtime"
	storeAdapter "github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/adapter"
	"github.com/me-luc/batepapo-uol-api/internal/infrastructure/store/port"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/application/task"
	"github.com/me-luc/batepapo-uol-api/internal/pkg/chat/presence"
	httpHandler "github.com/me-luc/batepapo-uol-api/internal/pkg/chat/presentation/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	var cache cacheport.Cache
	var queue qport.Client
	if cfg.RedisURL != "" {
		redisCache, err := cacheAdapter.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "err", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache

		client, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to build queue client", "err", err)
			os.Exit(1)
		}
		defer client.Close()
		queue = client
	}

	rtRouter := realtime.NewRouter()
	defer rtRouter.Close()

	if cfg.RedisURL != "" {
		srv, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.QueueConcurrency, logger)
		if err != nil {
			logger.Error("failed to build queue server", "err", err)
			os.Exit(1)
		}
		task.RegisterBroadcastMessageTask(srv, rtRouter)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error("queue server stopped", "err", err)
			}
		}()
	}

	tracker := presence.NewTracker(store, logger, presence.Options{
		Interval:     cfg.SweepInterval,
		StaleAfter:   cfg.StaleAfter,
		NoticeSender: cfg.NoticeSender,
		Cache:        cache,
		Router:       rtRouter,
	})
	go func() {
		if err := tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("presence tracker stopped", "err", err)
		}
	}()

	engine := router.New(httpHandler.Deps{
		Store:        store,
		Cache:        cache,
		Queue:        queue,
		Realtime:     rtRouter,
		NoticeSender: cfg.NoticeSender,
		RosterTTL:    cfg.StaleAfter,
		Log:          logger,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}
	go func() {
		logger.Info("server is running", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (port.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.Connect(connectCtx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return storeAdapter.NewPgStore(pool), nil
	case config.DriverMongo:
		client, err := database.ConnectMongo(connectCtx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return storeAdapter.NewMongoStore(client, cfg.MongoDB), nil
	default:
		return storeAdapter.NewMemStore(), nil
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
