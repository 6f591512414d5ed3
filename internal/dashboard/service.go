package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository exposes the read-only record sets the dashboard aggregates.
// Implementations must apply the stated filters and ordering; all other
// computation happens in the service.
type Repository interface {
	InvoicesIssuedBetween(ctx context.Context, start, end time.Time) ([]Invoice, error)
	PaymentsBetween(ctx context.Context, start, end time.Time) ([]Payment, error)
	ExpensesBetween(ctx context.Context, start, end time.Time) ([]Expense, error)
	ListProjects(ctx context.Context) ([]Project, error)
	// OverdueInvoices returns invoices with due_date < asOf whose status is
	// neither Paid nor Void, ordered ascending by due date.
	OverdueInvoices(ctx context.Context, asOf time.Time) ([]OverdueInvoice, error)
}

// ProjectSummarizer resolves the financial rollup for a single project.
type ProjectSummarizer interface {
	Summarize(ctx context.Context, projectID uuid.UUID) (ProjectSummary, error)
}

// Service computes the dashboard reports from current store state.
type Service struct {
	repo     Repository
	projects ProjectSummarizer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the repository and project summarizer.
func NewService(repo Repository, projects ProjectSummarizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, projects: projects, logger: logger, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// percentOf returns part as a percentage of whole, or 0 when the
// denominator is not positive.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
