package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
	"github.com/frostline-ops/frostline-ops/internal/report"
)

// ArchiveSource supplies the durable ledger snapshot.
type ArchiveSource interface {
	Load(ctx context.Context) (ledger.Snapshot, error)
}

// Warmer primes cached report figures.
type Warmer interface {
	Warmup(ctx context.Context) error
	GetTrend(ctx context.Context, days int) ([]report.TrendPoint, error)
}

// ReportWarmupJob rebuilds the cached dashboard figures so the first
// request after an invalidation does not pay the derivation cost. The
// archive is reloaded on every run: the figures this job caches are
// served to API clients, so they must reflect writes made by the API
// process since the worker booted, never the worker's own stale store.
type ReportWarmupJob struct {
	Archive ArchiveSource
	Store   *ledger.Store
	Reports Warmer
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportWarmupJob initialises the warmup handler.
func NewReportWarmupJob(archive ArchiveSource, store *ledger.Store, reports Warmer, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Archive: archive,
		Store:   store,
		Reports: reports,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the warmup logic.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil || j.Store == nil {
		return errors.New("report warmup: handler not configured")
	}
	if j.Archive == nil {
		// Without the archive the worker has no view of the ledger and
		// would cache empty figures under the live version key.
		return errors.New("report warmup: archive not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.now()
	logger := j.logger()
	logger.Info("starting report warmup", slog.Int("trend_days", payload.TrendDays))

	snap, err := j.Archive.Load(ctx)
	if err != nil {
		logger.Error("archive load failed", slog.Any("error", err))
		return err
	}
	j.Store.Restore(snap)

	if err := j.Reports.Warmup(ctx); err != nil {
		logger.Error("warmup failed", slog.Any("error", err))
		return err
	}
	if payload.TrendDays > 0 {
		if _, err := j.Reports.GetTrend(ctx, payload.TrendDays); err != nil {
			logger.Error("trend warmup failed", slog.Any("error", err))
			return err
		}
	}

	logger.Info("completed report warmup",
		slog.Int("sales", len(snap.Sales)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportWarmup))
}

func (j *ReportWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
