package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/frostline-ops/frostline-ops/internal/app"
	"github.com/frostline-ops/frostline-ops/internal/ledger"
	"github.com/frostline-ops/frostline-ops/internal/observability"
	"github.com/frostline-ops/frostline-ops/internal/platform/cache"
	"github.com/frostline-ops/frostline-ops/internal/platform/db"
	"github.com/frostline-ops/frostline-ops/internal/report"
	reporthttp "github.com/frostline-ops/frostline-ops/internal/report/http"
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
	metrics := observability.NewMetrics()

	store := ledger.NewStore()

	var archive ledger.Archiver
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()

		repo := ledger.NewRepository(pool)
		snapshot, err := repo.Load(ctx)
		if err != nil {
			logger.Error("load archive", slog.Any("error", err))
			os.Exit(1)
		}
		store.Restore(snapshot)
		archive = repo
		logger.Info("ledger restored from archive",
			slog.Int("customers", len(snapshot.Customers)),
			slog.Int("sales", len(snapshot.Sales)),
		)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, reports run uncached", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	// A fresh restore means the cached figures may predate it, so ask
	// the worker to rebuild them right away instead of waiting for the
	// next scheduled warmup.
	if archive != nil && redisClient != nil {
		client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		if err != nil {
			logger.Warn("init job client", slog.Any("error", err))
		} else {
			payload := jobs.ReportWarmupPayload{TrendDays: cfg.TrendWindowDays}
			if _, err := client.EnqueueReportWarmup(ctx, payload); err != nil {
				logger.Warn("enqueue report warmup", slog.Any("error", err))
			}
			if err := client.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}
	}

	reportCache := report.NewCache(redisClient, cfg.CacheTTL)
	ledgerService := ledger.NewService(logger, store, archive, reportCache, metrics, ledger.ServiceConfig{
		Currency: cfg.Currency,
	})
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	reportService := report.NewService(store, reportCache, report.ServiceConfig{
		TrendWindowDays: cfg.TrendWindowDays,
	})
	formatter := report.NewAmountFormatter(cfg.Currency)
	reportHandler := reporthttp.NewHandler(logger, reportService, formatter)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		LedgerHandler: ledgerHandler,
		ReportHandler: reportHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
