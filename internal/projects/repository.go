package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for project financials.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetProject fetches one project by id.
func (r *Repository) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	const query = `
		SELECT id, project_name, COALESCE(project_number, ''), person_id, created_at
		FROM projects
		WHERE id = $1`

	var proj Project
	err := r.pool.QueryRow(ctx, query, id).Scan(&proj.ID, &proj.Name, &proj.Number, &proj.PersonID, &proj.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, fmt.Errorf("projects: get project: %w", err)
	}
	return proj, nil
}

// InvoicesByProject lists a project's invoices.
func (r *Repository) InvoicesByProject(ctx context.Context, projectID uuid.UUID) ([]Invoice, error) {
	const query = `
		SELECT id, total_amount, status
		FROM invoices
		WHERE project_id = $1`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("projects: query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.TotalAmount, &inv.Status); err != nil {
			return nil, fmt.Errorf("projects: scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("projects: iterate invoices: %w", err)
	}
	return invoices, nil
}

// PaymentsByProject lists payments recorded against a project.
func (r *Repository) PaymentsByProject(ctx context.Context, projectID uuid.UUID) ([]Payment, error) {
	const query = `
		SELECT p.id, p.amount, p.payment_date
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.project_id = $1`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("projects: query payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var pay Payment
		if err := rows.Scan(&pay.ID, &pay.Amount, &pay.PaidAt); err != nil {
			return nil, fmt.Errorf("projects: scan payment: %w", err)
		}
		payments = append(payments, pay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("projects: iterate payments: %w", err)
	}
	return payments, nil
}

// ExpensesByProject lists a project's expenses.
func (r *Repository) ExpensesByProject(ctx context.Context, projectID uuid.UUID) ([]Expense, error) {
	const query = `
		SELECT id, amount, COALESCE(category, 'Uncategorized')
		FROM expenses
		WHERE project_id = $1`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("projects: query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(&exp.ID, &exp.Amount, &exp.Category); err != nil {
			return nil, fmt.Errorf("projects: scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("projects: iterate expenses: %w", err)
	}
	return expenses, nil
}
