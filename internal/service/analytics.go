package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nanostack/backend/internal/model"
)

// Aggregate computes the financial summary of one ledger snapshot.
//
// Totals are aggregate-then-subtract: profit is Σpaid − Σexpenses. Monthly
// buckets are keyed by the calendar month of CreatedAt in loc (UTC when nil),
// contain only months that have projects, and are sorted oldest first.
// Distributions are sorted by label. The input order never affects the result.
func Aggregate(projects []*model.ClientProject, loc *time.Location) model.FinancialSummary {
	if loc == nil {
		loc = time.UTC
	}

	totals := model.FinancialTotals{
		Billed:   decimal.Zero,
		Paid:     decimal.Zero,
		Expenses: decimal.Zero,
	}
	months := make(map[time.Time]*monthSums)
	byStatus := make(map[string]int)
	byPayment := make(map[string]int)

	for _, p := range projects {
		totals.Billed = totals.Billed.Add(p.TotalBill)
		totals.Paid = totals.Paid.Add(p.AmountPaid)
		totals.Expenses = totals.Expenses.Add(p.Expenses)

		created := p.CreatedAt.In(loc)
		month := time.Date(created.Year(), created.Month(), 1, 0, 0, 0, 0, loc)
		m, ok := months[month]
		if !ok {
			m = &monthSums{billed: decimal.Zero, paid: decimal.Zero, expenses: decimal.Zero}
			months[month] = m
		}
		m.billed = m.billed.Add(p.TotalBill)
		m.paid = m.paid.Add(p.AmountPaid)
		m.expenses = m.expenses.Add(p.Expenses)

		byStatus[p.Status]++
		byPayment[p.PaymentMethod]++
	}

	totals.Profit = totals.Paid.Sub(totals.Expenses)
	totals.Pending = totals.Billed.Sub(totals.Paid)

	monthly := make([]model.MonthlyBucket, 0, len(months))
	for month, m := range months {
		monthly = append(monthly, model.MonthlyBucket{
			Month:    month,
			Revenue:  m.billed,
			Expenses: m.expenses,
			Profit:   m.paid.Sub(m.expenses),
		})
	}
	sort.Slice(monthly, func(i, j int) bool {
		return monthly[i].Month.Before(monthly[j].Month)
	})

	return model.FinancialSummary{
		Totals:          totals,
		Monthly:         monthly,
		ByStatus:        distribution(byStatus),
		ByPaymentMethod: distribution(byPayment),
	}
}

type monthSums struct {
	billed   decimal.Decimal
	paid     decimal.Decimal
	expenses decimal.Decimal
}

func distribution(counts map[string]int) []model.LabelCount {
	out := make([]model.LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
