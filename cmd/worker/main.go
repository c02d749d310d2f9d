package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/frostline-ops/frostline-ops/internal/app"
	"github.com/frostline-ops/frostline-ops/internal/ledger"
	"github.com/frostline-ops/frostline-ops/internal/platform/cache"
	"github.com/frostline-ops/frostline-ops/internal/platform/db"
	"github.com/frostline-ops/frostline-ops/internal/report"
	"github.com/frostline-ops/frostline-ops/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// The warmup job primes the shared report cache, so the worker
	// must see the same ledger the API serves. Without the archive it
	// would cache empty figures.
	if cfg.PGDSN == "" {
		logger.Error("PG_DSN is required for the worker")
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	repo := ledger.NewRepository(pool)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	store := ledger.NewStore()
	reportCache := report.NewCache(redisClient, cfg.CacheTTL)
	reportService := report.NewService(store, reportCache, report.ServiceConfig{
		TrendWindowDays: cfg.TrendWindowDays,
	})

	warmupJob := jobs.NewReportWarmupJob(repo, store, reportService, logger)
	warmupTask, err := jobs.NewReportWarmupTask(jobs.ReportWarmupPayload{TrendDays: cfg.TrendWindowDays})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/10 * * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
