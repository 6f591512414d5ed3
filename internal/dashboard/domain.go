package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus enumerates invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "Draft"
	StatusSent          InvoiceStatus = "Sent"
	StatusPartiallyPaid InvoiceStatus = "Partially Paid"
	StatusPaid          InvoiceStatus = "Paid"
	StatusOverdue       InvoiceStatus = "Overdue"
	StatusVoid          InvoiceStatus = "Void"
)

const (
	defaultInvoiceType = "standard"
	unknownLabel       = "Unknown"
	uncategorizedLabel = "Uncategorized"
)

// Invoice is a billing record read from the store.
type Invoice struct {
	ID          uuid.UUID     `json:"id"`
	Number      string        `json:"invoiceNumber"`
	ProjectID   uuid.UUID     `json:"projectId"`
	PersonID    uuid.UUID     `json:"personId"`
	Status      InvoiceStatus `json:"status"`
	Type        string        `json:"invoiceType"`
	TotalAmount float64       `json:"totalAmount"`
	AmountPaid  float64       `json:"amountPaid"`
	IssueDate   time.Time     `json:"issueDate"`
	DueDate     time.Time     `json:"dueDate"`
}

// Payment records money received against an invoice.
type Payment struct {
	ID        uuid.UUID `json:"id"`
	InvoiceID uuid.UUID `json:"invoiceId"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"paymentMethod"`
	PaidAt    time.Time `json:"paymentDate"`
}

// Expense records money spent, optionally tied to a project.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	SpentAt     time.Time `json:"expenseDate"`
}

// Project identifies a unit of work invoices and expenses attach to.
type Project struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"projectName"`
	Number string    `json:"projectNumber"`
}

// DateRange bounds a reporting window, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthlyDataPoint carries one calendar month's aggregated value.
type MonthlyDataPoint struct {
	Month int     `json:"month"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// FormattedMetrics mirrors the headline scalars as display strings.
type FormattedMetrics struct {
	TotalInvoiced      string `json:"totalInvoiced"`
	TotalPaid          string `json:"totalPaid"`
	TotalExpenses      string `json:"totalExpenses"`
	Profit             string `json:"profit"`
	ProfitMargin       string `json:"profitMargin"`
	OutstandingBalance string `json:"outstandingBalance"`
}

// FinancialMetrics is the full company-wide report for one date range.
// It is recomputed from store state on every call and never persisted.
type FinancialMetrics struct {
	TotalInvoiced               float64                    `json:"totalInvoiced"`
	TotalPaid                   float64                    `json:"totalPaid"`
	TotalExpenses               float64                    `json:"totalExpenses"`
	Profit                      float64                    `json:"profit"`
	ProfitMargin                float64                    `json:"profitMargin"`
	CollectionRate              float64                    `json:"collectionRate"`
	OutstandingBalance          float64                    `json:"outstandingBalance"`
	InvoiceStatusCounts         map[string]int             `json:"invoiceStatusCounts"`
	InvoiceStatusAmounts        map[string]float64         `json:"invoiceStatusAmounts"`
	InvoiceTypeCounts           map[string]int             `json:"invoiceTypeCounts"`
	InvoiceTypeAmounts          map[string]float64         `json:"invoiceTypeAmounts"`
	PaymentMethodDistribution   map[string]float64         `json:"paymentMethodDistribution"`
	ExpenseCategoryDistribution map[string]float64         `json:"expenseCategoryDistribution"`
	MonthlyRevenue              []MonthlyDataPoint         `json:"monthlyRevenue"`
	MonthlyExpenses             []MonthlyDataPoint         `json:"monthlyExpenses"`
	MonthlyProfit               []MonthlyDataPoint         `json:"monthlyProfit"`
	Formatted                   FormattedMetrics           `json:"formattedMetrics"`
}

// ProjectSummary is the per-project financial rollup consumed by ranking.
type ProjectSummary struct {
	PaidTotal     float64
	ExpensesTotal float64
	Profit        float64
	ProfitMargin  float64
}

// ProjectRankEntry is one row of the top-projects leaderboard.
type ProjectRankEntry struct {
	ProjectID     uuid.UUID `json:"id"`
	ProjectName   string    `json:"projectName"`
	ProjectNumber string    `json:"projectNumber"`
	Revenue       float64   `json:"revenue"`
	Expenses      float64   `json:"expenses"`
	Profit        float64   `json:"profit"`
	ProfitMargin  float64   `json:"profitMargin"`
}

// OverdueInvoice is an unpaid invoice past its due date, joined with the
// display names the dashboard table needs.
type OverdueInvoice struct {
	Invoice
	ProjectName string `json:"projectName"`
	PersonName  string `json:"personName"`
}

// OverdueInvoiceEntry adds the point-in-time aging computation.
type OverdueInvoiceEntry struct {
	OverdueInvoice
	DaysOverdue int     `json:"daysOverdue"`
	AmountDue   float64 `json:"amountDue"`
}
