package dashboard

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	mu sync.Mutex

	invoices []Invoice
	payments []Payment
	expenses []Expense
	projects []Project
	overdue  []OverdueInvoice

	invoicesErr error
	paymentsErr error
	expensesErr error
	projectsErr error
	overdueErr  error

	lastStart time.Time
	lastEnd   time.Time
	lastAsOf  time.Time
}

func (m *mockRepo) InvoicesIssuedBetween(ctx context.Context, start, end time.Time) ([]Invoice, error) {
	m.mu.Lock()
	m.lastStart, m.lastEnd = start, end
	m.mu.Unlock()
	if m.invoicesErr != nil {
		return nil, m.invoicesErr
	}
	return m.invoices, nil
}

func (m *mockRepo) PaymentsBetween(ctx context.Context, start, end time.Time) ([]Payment, error) {
	if m.paymentsErr != nil {
		return nil, m.paymentsErr
	}
	return m.payments, nil
}

func (m *mockRepo) ExpensesBetween(ctx context.Context, start, end time.Time) ([]Expense, error) {
	if m.expensesErr != nil {
		return nil, m.expensesErr
	}
	return m.expenses, nil
}

func (m *mockRepo) ListProjects(ctx context.Context) ([]Project, error) {
	if m.projectsErr != nil {
		return nil, m.projectsErr
	}
	return m.projects, nil
}

func (m *mockRepo) OverdueInvoices(ctx context.Context, asOf time.Time) ([]OverdueInvoice, error) {
	m.mu.Lock()
	m.lastAsOf = asOf
	m.mu.Unlock()
	if m.overdueErr != nil {
		return nil, m.overdueErr
	}
	return m.overdue, nil
}

type mockSummarizer struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]ProjectSummary
	failures  map[uuid.UUID]error
	calls     int
}

func (m *mockSummarizer) Summarize(ctx context.Context, projectID uuid.UUID) (ProjectSummary, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if err, ok := m.failures[projectID]; ok {
		return ProjectSummary{}, err
	}
	return m.summaries[projectID], nil
}

func newTestService(repo Repository, summarizer ProjectSummarizer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, summarizer, logger)
}

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
