package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/authkit/internal/api"
	"github.com/dmitrymomot/authkit/internal/storage/postgres"
	"github.com/dmitrymomot/authkit/internal/storage/postgres/migrations"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/pkg/redis"
	"github.com/dmitrymomot/authkit/pkg/session"
)

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg,
		logger.WithRedaction("email", "password", "session_id", "reset_token"),
	)
	logger.SetAsDefault(log)

	if err := run(log); err != nil {
		log.Error("service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pgCfg      pg.Config
		redisCfg   redis.Config
		sessionCfg session.Config
		apiCfg     api.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&apiCfg)
	config.MustLoad(&httpCfg)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
		return err
	}

	users := postgres.NewUserStore(pool)

	var sessions session.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		sessions = session.NewRedisStore(client)
		log.Info("using redis session store")
	} else {
		sessions = session.NewMemoryStore()
		log.Info("using in-memory session store")
	}

	svc := auth.New(users, sessions, auth.WithLogger(log))
	strategy := api.BuildStrategy(apiCfg, users, sessions, sessionCfg, log)
	handler := api.NewHandler(svc, sessionCfg.CookieName, log)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, api.Router(handler, strategy, apiCfg))
}
