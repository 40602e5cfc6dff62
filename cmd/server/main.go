// Command server runs the event manager web application.
//
// @title        Event Manager
// @version      1.0
// @description  Server-rendered event management: accounts, sessions and event CRUD.
// @BasePath     /
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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parixitpatel/EventmanagerNew/internal/api"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
	"github.com/parixitpatel/EventmanagerNew/internal/core/service"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/config"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/db"
	redisstore "github.com/parixitpatel/EventmanagerNew/internal/infrastructure/db/redis"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/http/handlers"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/session"
	"github.com/parixitpatel/EventmanagerNew/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "eventmanager",
	})

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SecretKey == config.DefaultSecretKey {
		log.Warn().Msg("SECRET_KEY is the insecure default; set it before deploying")
	}

	store, err := db.Open(ctx, cfg.DatabaseURL, db.Options{MongoDatabase: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()
	log.Info().Str("backend", string(store.Backend)).Msg("database ready")

	sessions, closeSessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()
	log.Info().Str("backend", cfg.Session.Backend).Msg("session store ready")

	e := api.NewRouter(api.Deps{
		Auth:          service.NewAuthService(store.Users, log),
		Events:        service.NewEventService(store.Events, log),
		Sessions:      sessions,
		SessionSecret: []byte(cfg.SecretKey),
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		SecureCookie:  cfg.Session.CookieSecure,
		Readiness: map[string]handlers.Pinger{
			"database": handlers.PingFunc(store.Ping),
			"sessions": sessions,
		},
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		Logger:     log,
		Swagger:    cfg.SwaggerEnabled && !cfg.IsProduction(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

type sessionStore interface {
	ports.SessionStore
	handlers.Pinger
}

func openSessionStore(ctx context.Context, cfg *config.Config) (sessionStore, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewMemoryStore(cfg.Session.TTL), func() {}, nil
	}

	client, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	return redisstore.NewSessionStore(client, cfg.Session.TTL), func() { _ = client.Close() }, nil
}
