package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/retainsure/retention-console/internal/api"
	"github.com/retainsure/retention-console/internal/core/ports"
	"github.com/retainsure/retention-console/internal/core/service"
	"github.com/retainsure/retention-console/internal/infrastructure/backend"
	"github.com/retainsure/retention-console/internal/infrastructure/config"
	"github.com/retainsure/retention-console/internal/infrastructure/db/mongo"
	"github.com/retainsure/retention-console/internal/infrastructure/db/redis"
	"github.com/retainsure/retention-console/internal/infrastructure/queue"
	"github.com/retainsure/retention-console/internal/infrastructure/store"
	"github.com/retainsure/retention-console/pkg/logger"
)

const auditWorkers = 4

func main() {
	_ = godotenv.Load()

	cfg := config.Load(slog.Default())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One-time persistence probe. A dead Redis at startup means sessions
	// live in process memory until the next restart; the decision is not
	// revisited at runtime.
	var (
		rdb        *goredis.Client
		tokens     ports.TokenStore
		capability store.Capability
	)
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory session store")
		rdb = nil
		tokens = store.NewMemoryTokenStore()
	} else {
		tokens = redis.NewTokenStore(rdb, cfg.Session.TTL, log)
		capability = store.Capability{Persistent: true}
	}
	log.Info().Bool("persistent", capability.Persistent).Msg("session store ready")

	// The audit trail is optional the same way: no Mongo, no auditing.
	var (
		mongoDB *gomongo.Database
		audit   ports.AuditRecorder = queue.NopRecorder{}
	)
	if cfg.Mongo.Enabled {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Warn().Err(err).Msg("mongo unavailable, audit trail disabled")
		} else {
			defer func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(disconnectCtx)
			}()
			repo := mongo.NewAuditRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("audit index creation failed")
			}
			dispatcher := queue.NewDispatcher(auditWorkers, repo, log)
			dispatcher.Start(ctx)
			audit = dispatcher
			mongoDB = db
		}
	}

	transport := backend.NewTransport(http.DefaultTransport, tokens, log)
	client, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, transport, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}

	sessions := service.NewSessionService(client, tokens, audit, log)
	transport.OnUnauthorized(sessions.Revoke)

	e := api.NewRouter(api.Deps{
		Sessions:      sessions,
		Backend:       client,
		Logger:        log,
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL,
		Redis:         rdb,
		Mongo:         mongoDB,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("retention console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("retention console stopped")
}
