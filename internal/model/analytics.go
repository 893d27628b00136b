package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialTotals sums the monetary fields across a set of client projects.
type FinancialTotals struct {
	Billed   decimal.Decimal `json:"total_billed"`
	Paid     decimal.Decimal `json:"total_paid"`
	Expenses decimal.Decimal `json:"total_expenses"`
	Profit   decimal.Decimal `json:"total_profit"`
	Pending  decimal.Decimal `json:"total_pending"`
}

// MonthlyBucket holds the sums for projects created in one calendar month.
type MonthlyBucket struct {
	Month    time.Time // first instant of the month
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// Label formats the bucket month as "Jan 2026".
func (b MonthlyBucket) Label() string {
	return b.Month.Format("Jan 2006")
}

// LabelCount is one entry of a distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FinancialSummary is the full aggregation over one snapshot of the ledger.
type FinancialSummary struct {
	Totals          FinancialTotals
	Monthly         []MonthlyBucket
	ByStatus        []LabelCount
	ByPaymentMethod []LabelCount
}
