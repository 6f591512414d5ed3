package projects

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the project does not exist.
var ErrNotFound = errors.New("projects: not found")

// Project model.
type Project struct {
	ID        uuid.UUID
	Name      string
	Number    string
	PersonID  uuid.UUID
	CreatedAt time.Time
}

// Invoice carries the fields the financial rollup reads.
type Invoice struct {
	ID          uuid.UUID
	TotalAmount float64
	Status      string
}

// Payment carries the fields the financial rollup reads.
type Payment struct {
	ID     uuid.UUID
	Amount float64
	PaidAt time.Time
}

// Expense carries the fields the financial rollup reads.
type Expense struct {
	ID       uuid.UUID
	Amount   float64
	Category string
}

// FinancialSummary is the per-project rollup of billing activity.
type FinancialSummary struct {
	ProjectID          uuid.UUID `json:"projectId"`
	ProjectName        string    `json:"projectName"`
	ProjectNumber      string    `json:"projectNumber"`
	InvoicedTotal      float64   `json:"invoicedTotal"`
	PaidTotal          float64   `json:"paidTotal"`
	ExpensesTotal      float64   `json:"expensesTotal"`
	OutstandingBalance float64   `json:"outstandingBalance"`
	Profit             float64   `json:"profit"`
	ProfitMargin       float64   `json:"profitMargin"`
}
