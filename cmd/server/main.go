package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"prompt-architect-server/internal/ai"
	"prompt-architect-server/internal/api"
	"prompt-architect-server/internal/config"
	"prompt-architect-server/internal/deconstruct"
	"prompt-architect-server/internal/gallery"
	"prompt-architect-server/internal/logger"
	"prompt-architect-server/internal/prompt"
	"prompt-architect-server/internal/video"
)

func main() {
	// .env is optional; production runs on real env vars and secrets.
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Encoding:   cfg.LogEncoding,
		OutputPath: cfg.LogOutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	completionClient, err := ai.New(ai.Config{
		Provider:   cfg.AIProvider,
		APIKey:     cfg.AIAPIKey,
		BaseURL:    cfg.AIBaseURL,
		Model:      cfg.AIModel,
		OllamaHost: cfg.OllamaHost,
		Timeout:    cfg.AITimeout,
		MaxRetries: cfg.AIMaxAttempts,
		RetryDelay: cfg.AIBaseRetryDelay,
		RateEvery:  cfg.AIRateEvery,
		RateBurst:  cfg.AIRateBurst,
	})
	if err != nil {
		zapLogger.Fatal("failed to create completion client", zap.Error(err))
	}

	persistence, err := buildPersistence(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize persistence", zap.Error(err))
	}

	store := gallery.NewStore(persistence, zapLogger)
	if err := store.Load(ctx); err != nil {
		zapLogger.Fatal("failed to load gallery", zap.Error(err))
	}
	history := gallery.NewHistoryLog(persistence, zapLogger)
	if err := history.Load(ctx); err != nil {
		zapLogger.Warn("failed to load query history", zap.Error(err))
	}

	var videoManager *video.Manager
	if cfg.VideoAPIKey != "" {
		videoClient, err := video.NewGenaiClient(ctx, cfg.VideoAPIKey, cfg.VideoModel)
		if err != nil {
			zapLogger.Fatal("failed to create video client", zap.Error(err))
		}
		poller := video.NewPoller(videoClient, cfg.VideoPollInterval, cfg.VideoMaxPollDuration, zapLogger)
		videoManager = video.NewManager(videoClient, poller, zapLogger)
	} else {
		zapLogger.Warn("video generation disabled: no credential configured")
	}

	server := api.NewServer(
		prompt.NewService(completionClient, zapLogger),
		deconstruct.NewService(completionClient, zapLogger),
		store,
		history,
		videoManager,
		zapLogger,
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

func buildPersistence(cfg *config.Config, zapLogger *zap.Logger) (gallery.Persistence, error) {
	switch cfg.StorageBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return gallery.NewRedisPersistence(client, zapLogger), nil
	case "memory":
		return gallery.NewMemoryPersistence(), nil
	default:
		return gallery.NewFilePersistence(cfg.DataDir, zapLogger)
	}
}
