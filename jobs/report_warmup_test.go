package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/frostline-ops/frostline-ops/internal/ledger"
	"github.com/frostline-ops/frostline-ops/internal/report"
)

type stubArchive struct {
	snap  ledger.Snapshot
	err   error
	loads int
}

func (a *stubArchive) Load(ctx context.Context) (ledger.Snapshot, error) {
	a.loads++
	return a.snap, a.err
}

type stubWarmer struct {
	warmups   int
	trendDays int
	err       error
}

func (w *stubWarmer) Warmup(ctx context.Context) error {
	w.warmups++
	return w.err
}

func (w *stubWarmer) GetTrend(ctx context.Context, days int) ([]report.TrendPoint, error) {
	w.trendDays = days
	return nil, nil
}

func mustWarmupTask(t *testing.T, payload ReportWarmupPayload) *asynq.Task {
	t.Helper()
	task, err := NewReportWarmupTask(payload)
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func TestReportWarmupHandle(t *testing.T) {
	archive := &stubArchive{}
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(archive, ledger.NewStore(), warmer, nil)

	if err := job.Handle(context.Background(), mustWarmupTask(t, ReportWarmupPayload{TrendDays: 30})); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if archive.loads != 1 {
		t.Fatalf("archive loads = %d, want 1", archive.loads)
	}
	if warmer.warmups != 1 {
		t.Fatalf("warmups = %d, want 1", warmer.warmups)
	}
	if warmer.trendDays != 30 {
		t.Fatalf("trend days = %d, want 30", warmer.trendDays)
	}
}

func TestReportWarmupReloadsArchiveEachRun(t *testing.T) {
	archive := &stubArchive{}
	job := NewReportWarmupJob(archive, ledger.NewStore(), &stubWarmer{}, nil)

	task := mustWarmupTask(t, ReportWarmupPayload{})
	for i := 0; i < 3; i++ {
		if err := job.Handle(context.Background(), task); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if archive.loads != 3 {
		t.Fatalf("archive loads = %d, want 3 (one per run)", archive.loads)
	}
}

// A warmup must prime the shared cache with the ledger as the archive
// currently holds it, not the worker's boot-time view. Two services
// share one redis here: the worker-side store starts empty, the API
// side holds a sale already archived.
func TestReportWarmupPrimesCurrentArchiveFigures(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := report.NewCache(client, time.Minute)

	liveStore := ledger.NewStore()
	liveStore.Restore(ledger.Snapshot{
		Customers: []ledger.Customer{{ID: "cus-1", Name: "Deng"}},
		Sales: []ledger.Sale{{
			ID: "sal-1", CustomerID: "cus-1", QuantityBlocks: 10,
			UnitPrice: 25000, TotalAmount: 250000, PaymentStatus: ledger.PaymentCash,
		}},
	})
	apiService := report.NewService(liveStore, cache, report.ServiceConfig{TrendWindowDays: 7})

	workerStore := ledger.NewStore()
	workerService := report.NewService(workerStore, cache, report.ServiceConfig{TrendWindowDays: 7})
	archive := &stubArchive{snap: liveStore.SnapshotAll()}

	job := NewReportWarmupJob(archive, workerStore, workerService, nil)
	if err := job.Handle(context.Background(), mustWarmupTask(t, ReportWarmupPayload{})); err != nil {
		t.Fatalf("handle: %v", err)
	}

	summary, err := apiService.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("summary after warmup: %v", err)
	}
	if summary.TotalRevenue != 250000 {
		t.Fatalf("warmed cache serves revenue %v, want 250000", summary.TotalRevenue)
	}
}

func TestReportWarmupRequiresArchive(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(nil, ledger.NewStore(), warmer, nil)

	if err := job.Handle(context.Background(), mustWarmupTask(t, ReportWarmupPayload{})); err == nil {
		t.Fatal("expected error without archive")
	}
	if warmer.warmups != 0 {
		t.Fatalf("warmups = %d, want 0 (nothing should be cached)", warmer.warmups)
	}
}

func TestReportWarmupPropagatesArchiveError(t *testing.T) {
	archive := &stubArchive{err: errors.New("postgres down")}
	warmer := &stubWarmer{}
	job := NewReportWarmupJob(archive, ledger.NewStore(), warmer, nil)

	if err := job.Handle(context.Background(), mustWarmupTask(t, ReportWarmupPayload{})); err == nil {
		t.Fatal("expected error from failed archive load")
	}
	if warmer.warmups != 0 {
		t.Fatalf("warmups = %d, want 0", warmer.warmups)
	}
}

func TestReportWarmupPropagatesWarmerError(t *testing.T) {
	warmer := &stubWarmer{err: errors.New("redis down")}
	job := NewReportWarmupJob(&stubArchive{}, ledger.NewStore(), warmer, nil)

	if err := job.Handle(context.Background(), mustWarmupTask(t, ReportWarmupPayload{})); err == nil {
		t.Fatal("expected error from failed warmup")
	}
}

func TestReportWarmupHandleMalformedPayload(t *testing.T) {
	job := NewReportWarmupJob(&stubArchive{}, ledger.NewStore(), &stubWarmer{}, nil)
	task := asynq.NewTask(TaskReportWarmup, []byte("{not json"))

	if err := job.Handle(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err = %v, want SkipRetry", err)
	}
}
