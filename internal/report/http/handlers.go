// Package reporthttp serves derived report figures over HTTP.
package reporthttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
	"github.com/frostline-ops/frostline-ops/internal/report"
	"github.com/frostline-ops/frostline-ops/internal/report/export"
)

const requestTimeout = 2 * time.Second
const defaultActivityLimit = 20
const maxTrendDays = 90

// ReportService defines the dashboard data contract used by the handler.
type ReportService interface {
	GetSummary(ctx context.Context) (report.Summary, error)
	GetPaymentSplit(ctx context.Context) (report.PaymentSplit, error)
	GetTrend(ctx context.Context, days int) ([]report.TrendPoint, error)
	GetCostBreakdown(ctx context.Context) (report.CostBreakdown, error)
	GetDebtors(ctx context.Context) report.DebtorReport
	GetActivity(ctx context.Context, limit int) []report.ActivityEntry
	TrendWindowDays() int
}

// Handler coordinates HTTP requests for the operations dashboard.
type Handler struct {
	logger    *slog.Logger
	service   ReportService
	formatter *report.AmountFormatter
	csvPool   sync.Pool
}

// NewHandler constructs the report HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService, formatter *report.AmountFormatter) *Handler {
	h := &Handler{
		logger:    logger,
		service:   service,
		formatter: formatter,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// Dashboard bundles everything the landing page needs into one payload.
type Dashboard struct {
	Summary  report.Summary         `json:"summary"`
	Split    report.PaymentSplit    `json:"payment_split"`
	Trend    []report.TrendPoint    `json:"trend"`
	Costs    report.CostBreakdown   `json:"cost_breakdown"`
	Activity []report.ActivityEntry `json:"recent_activity"`
	Display  DashboardDisplay       `json:"display"`
}

// DashboardDisplay carries preformatted headline figures.
type DashboardDisplay struct {
	TotalRevenue       string `json:"total_revenue"`
	NetLiquidity       string `json:"net_liquidity"`
	NetProfit          string `json:"net_profit"`
	OutstandingBalance string `json:"outstanding_balance"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	// Concurrent dashboard loads collapse into one build.
	value, err, _ := singleflightBuild(ctx, "dashboard", func(ctx context.Context) (interface{}, error) {
		return h.loadDashboard(ctx)
	})
	if err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}
	dashboard, ok := value.(Dashboard)
	if !ok {
		h.handleServerError(w, "load dashboard", fmt.Errorf("unexpected dashboard payload %T", value))
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) loadDashboard(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := h.service.GetSummary(ctx)
		if err != nil {
			return err
		}
		dashboard.Summary = summary
		return nil
	})

	g.Go(func() error {
		split, err := h.service.GetPaymentSplit(ctx)
		if err != nil {
			return err
		}
		dashboard.Split = split
		return nil
	})

	g.Go(func() error {
		points, err := h.service.GetTrend(ctx, h.service.TrendWindowDays())
		if err != nil {
			return err
		}
		dashboard.Trend = points
		return nil
	})

	g.Go(func() error {
		costs, err := h.service.GetCostBreakdown(ctx)
		if err != nil {
			return err
		}
		dashboard.Costs = costs
		return nil
	})

	g.Go(func() error {
		dashboard.Activity = h.service.GetActivity(ctx, defaultActivityLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	if h.formatter != nil {
		dashboard.Display = DashboardDisplay{
			TotalRevenue:       h.formatter.Format(dashboard.Summary.TotalRevenue),
			NetLiquidity:       h.formatter.Format(dashboard.Summary.NetLiquidity),
			NetProfit:          h.formatter.Format(dashboard.Summary.NetProfit),
			OutstandingBalance: h.formatter.Format(dashboard.Summary.OutstandingBalance),
		}
	}
	return dashboard, nil
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.GetSummary(ctx)
	if err != nil {
		h.handleServerError(w, "load summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	days, err := h.parseTrendDays(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Parameter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	points, err := h.service.GetTrend(ctx, days)
	if err != nil {
		h.handleServerError(w, "load trend", err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	breakdown, err := h.service.GetCostBreakdown(ctx)
	if err != nil {
		h.handleServerError(w, "load cost breakdown", err)
		return
	}
	httpx.JSON(w, http.StatusOK, breakdown)
}

func (h *Handler) handleDebtors(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.GetDebtors(r.Context()))
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit := defaultActivityLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Parameter", "limit must be a positive integer")
			return
		}
		limit = value
	}
	httpx.JSON(w, http.StatusOK, h.service.GetActivity(r.Context(), limit))
}

func (h *Handler) handleDashboardCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.GetSummary(ctx)
	if err != nil {
		h.handleServerError(w, "load summary", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteSummaryCSV(buf, summary, h.formatter); err != nil {
		h.handleServerError(w, "write summary csv", err)
		return
	}

	h.streamCSV(w, "dashboard", buf)
}

func (h *Handler) handleTrendCSV(w http.ResponseWriter, r *http.Request) {
	days, err := h.parseTrendDays(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Parameter", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	points, err := h.service.GetTrend(ctx, days)
	if err != nil {
		h.handleServerError(w, "load trend", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteTrendCSV(buf, points); err != nil {
		h.handleServerError(w, "write trend csv", err)
		return
	}

	h.streamCSV(w, "trend", buf)
}

func (h *Handler) handleDebtorsCSV(w http.ResponseWriter, r *http.Request) {
	rep := h.service.GetDebtors(r.Context())

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteDebtorsCSV(buf, rep); err != nil {
		h.handleServerError(w, "write debtors csv", err)
		return
	}

	h.streamCSV(w, "debtors", buf)
}

func (h *Handler) parseTrendDays(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" {
		return h.service.TrendWindowDays(), nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("days must be a positive integer")
	}
	if days > maxTrendDays {
		return 0, fmt.Errorf("days must not exceed %d", maxTrendDays)
	}
	return days, nil
}

func (h *Handler) streamCSV(w http.ResponseWriter, name string, buf *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	httpx.RespondError(w, err)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
