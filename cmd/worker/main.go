package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/fundlift/fundlift/internal/app"
	"github.com/fundlift/fundlift/internal/auth"
	"github.com/fundlift/fundlift/internal/notifications"
	"github.com/fundlift/fundlift/internal/platform/bus"
	"github.com/fundlift/fundlift/internal/platform/cache"
	"github.com/fundlift/fundlift/jobs"
)

// The worker owns the hashing parameters and signing key for deployments
// that keep secret material out of the API process. It answers auth and
// notification calls on the bus and drains the background job queue.
func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer redisClient.Close()

	issuer, err := auth.NewIssuer(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token issuer", slog.Any("error", err))
		os.Exit(1)
	}
	authService := auth.NewService(auth.NewHasher(cfg.BcryptCost), issuer)

	authServer := bus.NewServer(redisClient, auth.BusService, logger)
	auth.RegisterHandlers(authServer, authService)

	notifyService := notifications.NewService(notifications.NewMemoryStore())
	notifyServer := bus.NewServer(redisClient, notifications.BusService, logger)
	notifications.RegisterHandlers(notifyServer, notifyService)

	notifyClient := notifications.NewClient(notifyService, nil)
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskNotifyDeliver, Handler: jobs.NewNotifyJob(notifyClient, logger).Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return authServer.Run(groupCtx) })
	group.Go(func() error { return notifyServer.Run(groupCtx) })
	group.Go(func() error { return worker.Run(groupCtx) })

	logger.Info("worker running", slog.String("redis", cfg.RedisAddr))
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
