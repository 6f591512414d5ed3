package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// CompanyFinancialMetrics aggregates invoices, payments, and expenses for
// the given range into one report. A zero Start defaults to the start of
// the current calendar year, a zero End to now. Any fetch failure aborts
// the whole call; there is no partial result.
func (s *Service) CompanyFinancialMetrics(ctx context.Context, rng DateRange) (FinancialMetrics, error) {
	start, end := s.normalizeRange(rng)

	var (
		invoices []Invoice
		payments []Payment
		expenses []Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.repo.InvoicesIssuedBetween(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.repo.PaymentsBetween(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ExpensesBetween(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return FinancialMetrics{}, fmt.Errorf("dashboard: load financial metrics: %w", err)
	}

	metrics := FinancialMetrics{
		InvoiceStatusCounts:         make(map[string]int),
		InvoiceStatusAmounts:        make(map[string]float64),
		InvoiceTypeCounts:           make(map[string]int),
		InvoiceTypeAmounts:          make(map[string]float64),
		PaymentMethodDistribution:   make(map[string]float64),
		ExpenseCategoryDistribution: make(map[string]float64),
	}

	for _, inv := range invoices {
		status := string(inv.Status)
		if status == "" {
			status = unknownLabel
		}
		kind := inv.Type
		if kind == "" {
			kind = defaultInvoiceType
		}
		metrics.TotalInvoiced += inv.TotalAmount
		metrics.InvoiceStatusCounts[status]++
		metrics.InvoiceStatusAmounts[status] += inv.TotalAmount
		metrics.InvoiceTypeCounts[kind]++
		metrics.InvoiceTypeAmounts[kind] += inv.TotalAmount
	}

	for _, pay := range payments {
		method := pay.Method
		if method == "" {
			method = unknownLabel
		}
		metrics.TotalPaid += pay.Amount
		metrics.PaymentMethodDistribution[method] += pay.Amount
	}

	for _, exp := range expenses {
		category := exp.Category
		if category == "" {
			category = uncategorizedLabel
		}
		metrics.TotalExpenses += exp.Amount
		metrics.ExpenseCategoryDistribution[category] += exp.Amount
	}

	metrics.Profit = metrics.TotalPaid - metrics.TotalExpenses
	metrics.ProfitMargin = percentOf(metrics.Profit, metrics.TotalPaid)
	metrics.CollectionRate = percentOf(metrics.TotalPaid, metrics.TotalInvoiced)
	metrics.OutstandingBalance = metrics.TotalInvoiced - metrics.TotalPaid

	metrics.MonthlyRevenue = monthlyTotals(payments,
		func(p Payment) time.Time { return p.PaidAt },
		func(p Payment) float64 { return p.Amount },
		start, end)
	metrics.MonthlyExpenses = monthlyTotals(expenses,
		func(e Expense) time.Time { return e.SpentAt },
		func(e Expense) float64 { return e.Amount },
		start, end)
	metrics.MonthlyProfit = deriveProfitSeries(metrics.MonthlyRevenue, metrics.MonthlyExpenses)

	metrics.Formatted = FormattedMetrics{
		TotalInvoiced:      formatCurrency(metrics.TotalInvoiced),
		TotalPaid:          formatCurrency(metrics.TotalPaid),
		TotalExpenses:      formatCurrency(metrics.TotalExpenses),
		Profit:             formatCurrency(metrics.Profit),
		ProfitMargin:       formatPercent(metrics.ProfitMargin),
		OutstandingBalance: formatCurrency(metrics.OutstandingBalance),
	}

	return metrics, nil
}

func (s *Service) normalizeRange(rng DateRange) (time.Time, time.Time) {
	start, end := rng.Start, rng.End
	if end.IsZero() {
		end = s.now().UTC()
	}
	if start.IsZero() {
		start = time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return start, end
}

// deriveProfitSeries subtracts expenses from revenue per month. Both series
// share identical seeding, but the expense value is resolved by (year, month)
// lookup rather than position so a divergence in bucketing cannot silently
// misalign the result.
func deriveProfitSeries(revenue, expenses []MonthlyDataPoint) []MonthlyDataPoint {
	expenseByMonth := make(map[monthKey]float64, len(expenses))
	for _, point := range expenses {
		expenseByMonth[monthKey{year: point.Year, month: time.Month(point.Month)}] = point.Value
	}
	profit := make([]MonthlyDataPoint, 0, len(revenue))
	for _, point := range revenue {
		spent := expenseByMonth[monthKey{year: point.Year, month: time.Month(point.Month)}]
		profit = append(profit, MonthlyDataPoint{Month: point.Month, Year: point.Year, Value: point.Value - spent})
	}
	return profit
}
