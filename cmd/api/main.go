package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/config"
	mongodb "github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/Trungtrucpixel/vcareglobal-sub001/internal/infrastructure/db/redis"
	"github.com/Trungtrucpixel/vcareglobal-sub001/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("redis connect")
	}
	defer func() { _ = rdb.Close() }()

	e, err := api.NewRouter(ctx, db, rdb, api.RouterConfig{
		JWTSecret:       cfg.JWTSecret,
		SessionLifetime: cfg.SessionLifetime,
		SecureCookies:   cfg.SecureCookies,
		RateLimitMax:    cfg.RateLimit.MaxRequests,
		RateLimitWindow: cfg.RateLimit.Window,
	}, zlog)
	if err != nil {
		zlog.Fatal().Err(err).Msg("build router")
	}

	go func() {
		zlog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server stopped")
		}
	}()

	waitForSignal(zlog)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("shutdown")
	}
}

func waitForSignal(zlog zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	zlog.Info().Str("signal", sig.String()).Msg("shutting down")
}
