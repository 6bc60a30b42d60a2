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

	"github.com/hibiken/asynq"

	"github.com/fundlift/fundlift/internal/app"
	"github.com/fundlift/fundlift/internal/auth"
	"github.com/fundlift/fundlift/internal/authz"
	"github.com/fundlift/fundlift/internal/identity"
	"github.com/fundlift/fundlift/internal/notifications"
	"github.com/fundlift/fundlift/internal/observability"
	"github.com/fundlift/fundlift/internal/platform/bus"
	"github.com/fundlift/fundlift/internal/platform/cache"
	"github.com/fundlift/fundlift/internal/platform/db"
	"github.com/fundlift/fundlift/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	issuer, err := auth.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token issuer", slog.Any("error", err))
		os.Exit(1)
	}
	localAuth := auth.NewService(auth.NewHasher(cfg.BcryptCost), issuer)

	// The execution mode of the auth gateway is fixed here, once. A bus
	// address means every call crosses to the worker process; no address
	// means every call stays in-process.
	var authChannel *bus.Client
	if cfg.AuthBusAddr != "" {
		rdb, err := cache.New(ctx, cfg.AuthBusAddr)
		if err != nil {
			logger.Error("auth bus unreachable", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		authChannel = bus.NewClient(rdb, auth.BusService, cfg.AuthBusTimeout)
	}
	gateway := auth.NewGateway(localAuth, authChannel)

	var notifyChannel *bus.Client
	if cfg.NotificationsBusAddr != "" {
		rdb, err := cache.New(ctx, cfg.NotificationsBusAddr)
		if err != nil {
			logger.Error("notifications bus unreachable", slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		notifyChannel = bus.NewClient(rdb, notifications.BusService, cfg.NotificationsBusTimeout)
	}
	notifyLocal := notifications.NewService(notifications.NewMemoryStore())
	notifyClient := notifications.NewClient(notifyLocal, notifyChannel)

	// Welcome delivery must land in the store reads are served from. In
	// remote mode the worker owns that store, so the task queue delivers
	// there; in local mode the welcome is written directly through the
	// in-process client.
	var notifier identity.Notifier
	if cfg.NotificationsBusAddr != "" {
		jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer jobsClient.Close()
		notifier = jobs.NewWelcomeNotifier(jobsClient)
	} else {
		notifier = notifications.NewWelcomeNotifier(notifyClient)
	}

	table := authz.DefaultTable()
	guard, err := authz.NewGuard(table)
	if err != nil {
		logger.Error("init guard", slog.Any("error", err))
		os.Exit(1)
	}

	identityService := identity.NewService(identity.NewRepository(pool), gateway, notifier, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Metrics:              observability.NewMetrics(),
		TokenIssuer:          issuer,
		Guard:                guard,
		Table:                table,
		IdentityHandler:      identity.NewHandler(logger, identityService),
		NotificationsHandler: notifications.NewHandler(logger, notifyClient),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("listening", slog.String("addr", cfg.AppAddr), slog.Bool("remote_auth", authChannel != nil))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", slog.Any("error", err))
		os.Exit(1)
	}
}
