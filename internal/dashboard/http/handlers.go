package dashboardhttp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/fieldbooks-erp/fieldbooks-erp/internal/dashboard"
)

const (
	requestTimeout = 5 * time.Second
	dateLayout     = "2006-01-02"
	maxTopProjects = 50
)

// DashboardService defines the reporting contract used by the handler.
type DashboardService interface {
	CompanyFinancialMetrics(ctx context.Context, rng dashboard.DateRange) (dashboard.FinancialMetrics, error)
	TopPerformingProjects(ctx context.Context, limit int) ([]dashboard.ProjectRankEntry, error)
	OverdueInvoices(ctx context.Context, now time.Time) ([]dashboard.OverdueInvoiceEntry, error)
}

// Handler serves the financial dashboard JSON API.
type Handler struct {
	logger   *slog.Logger
	service  DashboardService
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// MountRoutes registers the dashboard endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	limiter := httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))

	r.Group(func(r chi.Router) {
		r.Use(limiter)
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/dashboard/metrics", h.handleMetrics)
		r.Get("/dashboard/top-projects", h.handleTopProjects)
		r.Get("/dashboard/overdue-invoices", h.handleOverdueInvoices)
	})
}

type metricsQuery struct {
	From string `validate:"required_with=To,omitempty,datetime=2006-01-02"`
	To   string `validate:"required_with=From,omitempty,datetime=2006-01-02"`
}

type dashboardPayload struct {
	Metrics         dashboard.FinancialMetrics      `json:"metrics"`
	TopProjects     []dashboard.ProjectRankEntry    `json:"topProjects"`
	OverdueInvoices []dashboard.OverdueInvoiceEntry `json:"overdueInvoices"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var payload dashboardPayload
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metrics, err := h.service.CompanyFinancialMetrics(gctx, rng)
		if err != nil {
			return err
		}
		payload.Metrics = metrics
		return nil
	})
	g.Go(func() error {
		entries, err := h.service.TopPerformingProjects(gctx, 0)
		if err != nil {
			return err
		}
		payload.TopProjects = entries
		return nil
	})
	g.Go(func() error {
		entries, err := h.service.OverdueInvoices(gctx, h.now())
		if err != nil {
			return err
		}
		payload.OverdueInvoices = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		h.respondUnavailable(w, "load dashboard", err)
		return
	}

	h.respondJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	metrics, err := h.service.CompanyFinancialMetrics(ctx, rng)
	if err != nil {
		h.respondUnavailable(w, "load metrics", err)
		return
	}
	h.respondJSON(w, http.StatusOK, metrics)
}

func (h *Handler) handleTopProjects(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > maxTopProjects {
			h.respondError(w, http.StatusBadRequest, "limit must be an integer between 1 and 50")
			return
		}
		limit = value
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries, err := h.service.TopPerformingProjects(ctx, limit)
	if err != nil {
		h.respondUnavailable(w, "load top projects", err)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleOverdueInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries, err := h.service.OverdueInvoices(ctx, h.now())
	if err != nil {
		h.respondUnavailable(w, "load overdue invoices", err)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}

// parseRange reads the optional from/to query pair. Dates must be provided
// together; the service applies year-to-date defaults when both are absent.
func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request) (dashboard.DateRange, bool) {
	query := metricsQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.respondError(w, http.StatusBadRequest, "from and to must be YYYY-MM-DD dates, provided together")
		return dashboard.DateRange{}, false
	}

	var rng dashboard.DateRange
	if query.From != "" {
		start, _ := time.Parse(dateLayout, query.From)
		end, _ := time.Parse(dateLayout, query.To)
		if start.After(end) {
			h.respondError(w, http.StatusBadRequest, "from must not be after to")
			return dashboard.DateRange{}, false
		}
		rng = dashboard.DateRange{Start: start, End: end}
	}
	return rng, true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) respondUnavailable(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	h.respondError(w, http.StatusInternalServerError, "reporting unavailable")
}
