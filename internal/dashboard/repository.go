package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed access to the reporting record sets.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InvoicesIssuedBetween lists invoices issued inside [start, end].
func (r *PGRepository) InvoicesIssuedBetween(ctx context.Context, start, end time.Time) ([]Invoice, error) {
	const query = `
		SELECT id, invoice_number, project_id, person_id, status,
		       COALESCE(invoice_type, 'standard'),
		       total_amount, COALESCE(amount_paid, 0), issue_date, due_date
		FROM invoices
		WHERE issue_date >= $1 AND issue_date <= $2`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.ProjectID, &inv.PersonID, &inv.Status,
			&inv.Type, &inv.TotalAmount, &inv.AmountPaid, &inv.IssueDate, &inv.DueDate); err != nil {
			return nil, fmt.Errorf("dashboard: scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate invoices: %w", err)
	}
	return invoices, nil
}

// PaymentsBetween lists payments received inside [start, end].
func (r *PGRepository) PaymentsBetween(ctx context.Context, start, end time.Time) ([]Payment, error) {
	const query = `
		SELECT id, invoice_id, amount, COALESCE(payment_method, ''), payment_date
		FROM payments
		WHERE payment_date >= $1 AND payment_date <= $2`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: query payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var pay Payment
		if err := rows.Scan(&pay.ID, &pay.InvoiceID, &pay.Amount, &pay.Method, &pay.PaidAt); err != nil {
			return nil, fmt.Errorf("dashboard: scan payment: %w", err)
		}
		payments = append(payments, pay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate payments: %w", err)
	}
	return payments, nil
}

// ExpensesBetween lists expenses incurred inside [start, end].
func (r *PGRepository) ExpensesBetween(ctx context.Context, start, end time.Time) ([]Expense, error) {
	const query = `
		SELECT id, project_id, amount, COALESCE(category, 'Uncategorized'),
		       COALESCE(description, ''), expense_date
		FROM expenses
		WHERE expense_date >= $1 AND expense_date <= $2`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(&exp.ID, &exp.ProjectID, &exp.Amount, &exp.Category, &exp.Description, &exp.SpentAt); err != nil {
			return nil, fmt.Errorf("dashboard: scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate expenses: %w", err)
	}
	return expenses, nil
}

// ListProjects lists every project eligible for ranking.
func (r *PGRepository) ListProjects(ctx context.Context) ([]Project, error) {
	const query = `
		SELECT id, project_name, COALESCE(project_number, '')
		FROM projects
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard: query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var proj Project
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.Number); err != nil {
			return nil, fmt.Errorf("dashboard: scan project: %w", err)
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate projects: %w", err)
	}
	return projects, nil
}

// OverdueInvoices lists unpaid, non-void invoices due before asOf with the
// project and person names needed for display, ordered by due date.
func (r *PGRepository) OverdueInvoices(ctx context.Context, asOf time.Time) ([]OverdueInvoice, error) {
	const query = `
		SELECT i.id, i.invoice_number, i.project_id, i.person_id, i.status,
		       COALESCE(i.invoice_type, 'standard'),
		       i.total_amount, COALESCE(i.amount_paid, 0), i.issue_date, i.due_date,
		       COALESCE(pr.project_name, ''),
		       COALESCE(NULLIF(pe.business_name, ''), TRIM(CONCAT(pe.first_name, ' ', pe.last_name)), '')
		FROM invoices i
		LEFT JOIN projects pr ON pr.id = i.project_id
		LEFT JOIN people pe ON pe.id = i.person_id
		WHERE i.due_date < $1 AND i.status NOT IN ('Paid', 'Void')
		ORDER BY i.due_date`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("dashboard: query overdue invoices: %w", err)
	}
	defer rows.Close()

	var overdue []OverdueInvoice
	for rows.Next() {
		var row OverdueInvoice
		if err := rows.Scan(&row.ID, &row.Number, &row.ProjectID, &row.PersonID, &row.Status,
			&row.Type, &row.TotalAmount, &row.AmountPaid, &row.IssueDate, &row.DueDate,
			&row.ProjectName, &row.PersonName); err != nil {
			return nil, fmt.Errorf("dashboard: scan overdue invoice: %w", err)
		}
		overdue = append(overdue, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate overdue invoices: %w", err)
	}
	return overdue, nil
}
