package dashboardhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldbooks-erp/fieldbooks-erp/internal/dashboard"
)

type stubService struct {
	metrics     dashboard.FinancialMetrics
	topProjects []dashboard.ProjectRankEntry
	overdue     []dashboard.OverdueInvoiceEntry

	metricsErr error
	topErr     error
	overdueErr error

	lastRange dashboard.DateRange
	lastLimit int
	lastNow   time.Time
}

func (s *stubService) CompanyFinancialMetrics(ctx context.Context, rng dashboard.DateRange) (dashboard.FinancialMetrics, error) {
	s.lastRange = rng
	if s.metricsErr != nil {
		return dashboard.FinancialMetrics{}, s.metricsErr
	}
	return s.metrics, nil
}

func (s *stubService) TopPerformingProjects(ctx context.Context, limit int) ([]dashboard.ProjectRankEntry, error) {
	s.lastLimit = limit
	if s.topErr != nil {
		return nil, s.topErr
	}
	return s.topProjects, nil
}

func (s *stubService) OverdueInvoices(ctx context.Context, now time.Time) ([]dashboard.OverdueInvoiceEntry, error) {
	s.lastNow = now
	if s.overdueErr != nil {
		return nil, s.overdueErr
	}
	return s.overdue, nil
}

func newTestRouter(service DashboardService) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, service)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func doRequest(t *testing.T, router chi.Router, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "203.0.113.9:52100"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleMetricsReturnsJSON(t *testing.T) {
	service := &stubService{
		metrics: dashboard.FinancialMetrics{
			TotalPaid: 1000,
			Formatted: dashboard.FormattedMetrics{TotalPaid: "$1,000.00"},
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard/metrics?from=2024-01-01&to=2024-01-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body dashboard.FinancialMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 1000, body.TotalPaid, 1e-9)
	assert.Equal(t, "$1,000.00", body.Formatted.TotalPaid)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), service.lastRange.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), service.lastRange.End)
}

func TestHandleMetricsRejectsBadDates(t *testing.T) {
	router := newTestRouter(&stubService{})

	cases := []struct {
		name   string
		target string
	}{
		{"malformed from", "/dashboard/metrics?from=01-2024&to=2024-01-31"},
		{"missing to", "/dashboard/metrics?from=2024-01-01"},
		{"inverted range", "/dashboard/metrics?from=2024-02-01&to=2024-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, tc.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleMetricsOmittedRangePassesZeroRange(t *testing.T) {
	service := &stubService{}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.lastRange.Start.IsZero())
	assert.True(t, service.lastRange.End.IsZero())
}

func TestHandleMetricsServiceFailure(t *testing.T) {
	service := &stubService{metricsErr: errors.New("pool exhausted")}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard/metrics")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reporting unavailable", body["error"])
	assert.NotContains(t, rec.Body.String(), "pool exhausted")
}

func TestHandleTopProjectsLimit(t *testing.T) {
	service := &stubService{
		topProjects: []dashboard.ProjectRankEntry{
			{ProjectID: uuid.New(), ProjectName: "Deck Build", Revenue: 2000},
		},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard/top-projects?limit=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, service.lastLimit)

	var body []dashboard.ProjectRankEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Deck Build", body[0].ProjectName)
}

func TestHandleTopProjectsRejectsBadLimit(t *testing.T) {
	router := newTestRouter(&stubService{})

	for _, target := range []string{
		"/dashboard/top-projects?limit=0",
		"/dashboard/top-projects?limit=51",
		"/dashboard/top-projects?limit=five",
	} {
		rec := doRequest(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleOverdueInvoices(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	service := &stubService{
		overdue: []dashboard.OverdueInvoiceEntry{
			{
				OverdueInvoice: dashboard.OverdueInvoice{
					Invoice:     dashboard.Invoice{TotalAmount: 1000, AmountPaid: 400},
					ProjectName: "Kitchen Remodel",
				},
				DaysOverdue: 14,
				AmountDue:   600,
			},
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, service)
	handler.WithNow(func() time.Time { return now })
	router := chi.NewRouter()
	handler.MountRoutes(router)

	rec := doRequest(t, router, "/dashboard/overdue-invoices")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, now, service.lastNow)

	var body []dashboard.OverdueInvoiceEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, 14, body[0].DaysOverdue)
	assert.InDelta(t, 600, body[0].AmountDue, 1e-9)
}

func TestHandleDashboardCombinesSections(t *testing.T) {
	service := &stubService{
		metrics:     dashboard.FinancialMetrics{TotalPaid: 500},
		topProjects: []dashboard.ProjectRankEntry{{ProjectName: "Garage Addition"}},
		overdue:     []dashboard.OverdueInvoiceEntry{{DaysOverdue: 3}},
	}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Metrics         dashboard.FinancialMetrics      `json:"metrics"`
		TopProjects     []dashboard.ProjectRankEntry    `json:"topProjects"`
		OverdueInvoices []dashboard.OverdueInvoiceEntry `json:"overdueInvoices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 500, body.Metrics.TotalPaid, 1e-9)
	require.Len(t, body.TopProjects, 1)
	require.Len(t, body.OverdueInvoices, 1)
}

func TestHandleDashboardFailsWhenAnySectionFails(t *testing.T) {
	service := &stubService{topErr: errors.New("ranking failed")}
	router := newTestRouter(service)

	rec := doRequest(t, router, "/dashboard")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "reporting unavailable")
}
