// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"voyago/internal/ai"
	"voyago/internal/cache"
	"voyago/internal/config"
	httptransport "voyago/internal/http"
	"voyago/internal/images"
	"voyago/internal/infra"
	"voyago/internal/modules/banner"
	"voyago/internal/modules/chat"
	"voyago/internal/modules/history"
	"voyago/internal/modules/planner"
	"voyago/internal/modules/trending"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		logger.Error("gemini init failed", "err", err)
		os.Exit(1)
	}
	defer provider.Close()

	var store history.Store
	if cfg.Storage.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.Storage.DSN)
		if err != nil {
			logger.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		pgStore := history.NewPGStore(dbPool)
		if err := pgStore.Migrate(ctx); err != nil {
			logger.Error("postgres migration failed", "err", err)
			os.Exit(1)
		}
		store = pgStore
		logger.Info("history store: postgres")
	} else {
		store = history.NewFileStore(cfg.Storage.DataFile, logger)
		logger.Info("history store: file", "path", cfg.Storage.DataFile)
	}
	historySvc := history.NewService(store, logger)

	var trendingCache cache.Daily[[]trending.Destination]
	var bannerCache cache.Daily[string]
	if cfg.Redis.Addr != "" {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		trendingCache = cache.NewRedis[[]trending.Destination](redisClient, "trending", logger)
		bannerCache = cache.NewRedis[string](redisClient, "banner", logger)
		logger.Info("daily caches: redis", "addr", cfg.Redis.Addr)
	} else {
		trendingCache = cache.NewMemory[[]trending.Destination]()
		bannerCache = cache.NewMemory[string]()
	}

	var photos planner.PhotoSource
	if cfg.Maps.APIKey != "" {
		source, err := images.NewPlacesSource(cfg.Maps.APIKey)
		if err != nil {
			logger.Error("maps init failed", "err", err)
			os.Exit(1)
		}
		photos = source
		logger.Info("places photo lookup enabled")
	}

	plannerSvc := planner.NewService(provider, historySvc, photos, logger)
	chatSvc := chat.NewService(provider, historySvc, logger)
	trendingSvc := trending.NewService(historySvc, trendingCache, logger)
	bannerSvc := banner.NewService(provider, bannerCache, cfg.Banner, logger)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:    plannerSvc,
		Chat:       chatSvc,
		History:    historySvc,
		Trending:   trendingSvc,
		Banner:     bannerSvc,
		Logger:     logger,
		GenTimeout: cfg.AI.GenTimeout,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
