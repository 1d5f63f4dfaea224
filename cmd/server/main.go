package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newsdesk/newsreader/internal/api"
	"github.com/newsdesk/newsreader/internal/infrastructure/db/postgres"
	"github.com/newsdesk/newsreader/internal/infrastructure/db/redis"
	"github.com/newsdesk/newsreader/internal/infrastructure/newsfeed"
	"github.com/newsdesk/newsreader/internal/pkg/config"
	"github.com/newsdesk/newsreader/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.Session.Secret == "" {
		log.Fatal().Msg("SESSION_SECRET is required")
	}

	ctx := context.Background()

	db, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer rdb.Close()

	var feedOpts []newsfeed.Option
	if cfg.Webz.BaseURL != "" {
		feedOpts = append(feedOpts, newsfeed.WithBaseURL(cfg.Webz.BaseURL))
	}
	feed := newsfeed.NewClient(cfg.Webz.APIKey, feedOpts...)

	e, err := api.NewRouter(api.Dependencies{
		DB:            db,
		Redis:         rdb,
		News:          feed,
		SessionSecret: cfg.Session.Secret,
		SessionTTL:    cfg.Session.TTL,
		Log:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("building router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("newsreader listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
