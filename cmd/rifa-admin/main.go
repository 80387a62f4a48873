// Command rifa-admin serves the raffle administration dashboard API.
//
//	@title			Rifa Admin API
//	@version		1.0
//	@description	Backend-for-frontend of the raffle administration dashboard.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/multisorteios/rifa-admin/internal/api"
	"github.com/multisorteios/rifa-admin/internal/api/handler"
	"github.com/multisorteios/rifa-admin/internal/api/metrics"
	"github.com/multisorteios/rifa-admin/internal/api/middleware"
	"github.com/multisorteios/rifa-admin/internal/core/service"
	"github.com/multisorteios/rifa-admin/internal/infrastructure/backend"
	mongodb "github.com/multisorteios/rifa-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/multisorteios/rifa-admin/internal/infrastructure/db/redis"
	"github.com/multisorteios/rifa-admin/internal/infrastructure/queue"
	"github.com/multisorteios/rifa-admin/internal/pkg/config"
	"github.com/multisorteios/rifa-admin/pkg/logger"
)

const (
	shutdownTimeout = 15 * time.Second
	pingTimeout     = 2 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}

	recorder := metrics.NewRecorder()

	// --- Infrastructure ---
	client := backend.New(cfg.Backend.BaseURL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithObserver(recorder),
		backend.WithLogger(logger.Component(log, "backend")),
	)
	storage := redisdb.NewClientStorage(rdb, cfg.Session.TTL)
	layouts := redisdb.NewLayoutRepository(rdb, cfg.Session.LayoutTTL)
	audits := mongodb.NewPrintAuditRepository(db)

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, audits, recorder, logger.Component(log, "audit"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	// --- Services ---
	ui := service.NewUIStore(service.WithUIIdleTimeout(cfg.Session.IdleTimeout))
	auth := service.NewAuthService(client, storage, recorder, logger.Component(log, "auth"),
		service.WithSessionTTL(cfg.Session.TTL),
		service.WithIdleTimeout(cfg.Session.IdleTimeout),
	)
	client.SetTokenSource(auth)
	client.SetUnauthorizedHook(auth.HandleUnauthorized)
	client.SetForbiddenHook(auth.HandleForbidden)

	people := service.NewPeopleService(client, ui, recorder, logger.Component(log, "people"))
	servas := service.NewServaService(client, ui, logger.Component(log, "servas"))
	rifas := service.NewRifaService(client, ui, logger.Component(log, "rifas"))
	files := service.NewFileService(client, ui, logger.Component(log, "files"))
	layout := service.NewLayoutService(client, layouts, dispatcher, audits, auth, ui, recorder, logger.Component(log, "layout"))

	e := api.NewRouter(api.Dependencies{
		Sessions: auth,
		UI:       ui,
		People:   people,
		Servas:   servas,
		Rifas:    rifas,
		Files:    files,
		Layout:   layout,
		Cookie: middleware.BrowserContextConfig{
			Secret: cfg.JWTSecret,
			Secure: cfg.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		LoginLimiter: middleware.NewLoginLimiter(cfg.Session.LoginPerMinute, cfg.Session.LoginBurst),
		Health: map[string]handler.DependencyCheck{
			"redis": func(ctx context.Context) error { return redisdb.Ping(ctx, rdb, pingTimeout) },
			"mongodb": func(ctx context.Context) error {
				return mongodb.Ping(ctx, db, pingTimeout)
			},
			"backend": client.Ping,
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("rifa-admin listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Close()
}
