package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"
)

// OverdueInvoices returns unpaid, non-void invoices past due as of now,
// each with its open balance and whole days overdue. A zero now falls back
// to the service clock. An empty slice is a valid result; only a fetch
// failure produces an error.
func (s *Service) OverdueInvoices(ctx context.Context, now time.Time) ([]OverdueInvoiceEntry, error) {
	if now.IsZero() {
		now = s.now()
	}

	rows, err := s.repo.OverdueInvoices(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("dashboard: load overdue invoices: %w", err)
	}

	entries := make([]OverdueInvoiceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, OverdueInvoiceEntry{
			OverdueInvoice: row,
			DaysOverdue:    daysOverdue(row.DueDate, now),
			AmountDue:      row.TotalAmount - row.AmountPaid,
		})
	}
	return entries, nil
}

// daysOverdue counts elapsed whole days between the due date and now,
// rounding partial days up. The repository filter guarantees due < now, so
// the result is always positive.
func daysOverdue(due, now time.Time) int {
	elapsed := now.Sub(due)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}
