package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frostline-ops/frostline-ops/internal/platform/httpx"
)

// Handler manages ledger entry endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sales", h.recordSale)
	r.Get("/sales", h.listSales)

	r.Post("/expenses", h.recordExpense)
	r.Get("/expenses", h.listExpenses)

	r.Post("/fuel-logs", h.recordFuelLog)
	r.Get("/fuel-logs", h.listFuelLogs)

	r.Post("/production-logs", h.recordProduction)
	r.Get("/production-logs", h.listProductionLogs)

	r.Post("/customers", h.createCustomer)
	r.Get("/customers", h.listCustomers)
	r.Get("/customers/{id}", h.showCustomer)
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var req RecordSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	sale, err := h.service.RecordSale(r.Context(), req)
	if err != nil {
		h.logger.Warn("record sale", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListSales(r.Context()))
}

func (h *Handler) recordExpense(w http.ResponseWriter, r *http.Request) {
	var req RecordExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	expense, err := h.service.RecordExpense(r.Context(), req)
	if err != nil {
		h.logger.Warn("record expense", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, expense)
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListExpenses(r.Context()))
}

func (h *Handler) recordFuelLog(w http.ResponseWriter, r *http.Request) {
	var req RecordFuelLogRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	log, err := h.service.RecordFuelLog(r.Context(), req)
	if err != nil {
		h.logger.Warn("record fuel log", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, log)
}

func (h *Handler) listFuelLogs(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListFuelLogs(r.Context()))
}

func (h *Handler) recordProduction(w http.ResponseWriter, r *http.Request) {
	var req RecordProductionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	run, err := h.service.RecordProduction(r.Context(), req)
	if err != nil {
		h.logger.Warn("record production", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, run)
}

func (h *Handler) listProductionLogs(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListProductionLogs(r.Context()))
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	customer, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		h.logger.Warn("create customer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.ListCustomers(r.Context()))
}

func (h *Handler) showCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}
