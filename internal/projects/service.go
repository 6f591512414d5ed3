package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RepositoryPort defines data access methods for project financials.
type RepositoryPort interface {
	GetProject(ctx context.Context, id uuid.UUID) (Project, error)
	InvoicesByProject(ctx context.Context, projectID uuid.UUID) ([]Invoice, error)
	PaymentsByProject(ctx context.Context, projectID uuid.UUID) ([]Payment, error)
	ExpensesByProject(ctx context.Context, projectID uuid.UUID) ([]Expense, error)
}

// Service computes per-project financial rollups.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Summarize aggregates a project's invoices, payments, and expenses into a
// financial summary. The three record fetches run concurrently; any failure
// aborts the call.
func (s *Service) Summarize(ctx context.Context, projectID uuid.UUID) (FinancialSummary, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return FinancialSummary{}, fmt.Errorf("projects: get project: %w", err)
	}

	var (
		invoices []Invoice
		payments []Payment
		expenses []Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.repo.InvoicesByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.repo.PaymentsByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ExpensesByProject(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return FinancialSummary{}, fmt.Errorf("projects: load financials: %w", err)
	}

	summary := FinancialSummary{
		ProjectID:     project.ID,
		ProjectName:   project.Name,
		ProjectNumber: project.Number,
	}
	for _, inv := range invoices {
		summary.InvoicedTotal += inv.TotalAmount
	}
	for _, pay := range payments {
		summary.PaidTotal += pay.Amount
	}
	for _, exp := range expenses {
		summary.ExpensesTotal += exp.Amount
	}
	summary.OutstandingBalance = summary.InvoicedTotal - summary.PaidTotal
	summary.Profit = summary.PaidTotal - summary.ExpensesTotal
	if summary.PaidTotal > 0 {
		summary.ProfitMargin = summary.Profit / summary.PaidTotal * 100
	}
	return summary, nil
}
