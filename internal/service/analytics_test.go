package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanostack/backend/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func project(created time.Time, bill, paid, expenses, status, method string) *model.ClientProject {
	return &model.ClientProject{
		TotalBill:     dec(bill),
		AmountPaid:    dec(paid),
		Expenses:      dec(expenses),
		Status:        status,
		PaymentMethod: method,
		CreatedAt:     created,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAggregate_SameMonthScenario(t *testing.T) {
	projects := []*model.ClientProject{
		project(day(2026, 3, 2), "1000", "800", "100", model.ProjectStatusInProgress, model.PaymentUPI),
		project(day(2026, 3, 15), "2000", "2000", "200", model.ProjectStatusCompleted, model.PaymentBankTransfer),
		project(day(2026, 3, 31), "500", "0", "50", model.ProjectStatusOnHold, model.PaymentUPI),
	}

	got := Aggregate(projects, nil)

	require.Len(t, got.Monthly, 1)
	b := got.Monthly[0]
	assert.Equal(t, "Mar 2026", b.Label())
	assert.True(t, b.Revenue.Equal(dec("3500")), "revenue %s", b.Revenue)
	assert.True(t, b.Expenses.Equal(dec("350")), "expenses %s", b.Expenses)
	assert.True(t, b.Profit.Equal(dec("2450")), "profit %s", b.Profit)

	assert.True(t, got.Totals.Billed.Equal(dec("3500")))
	assert.True(t, got.Totals.Paid.Equal(dec("2800")))
	assert.True(t, got.Totals.Expenses.Equal(dec("350")))
	assert.True(t, got.Totals.Profit.Equal(dec("2450")))
	assert.True(t, got.Totals.Pending.Equal(dec("700")))

	assert.Equal(t, []model.LabelCount{
		{Label: model.ProjectStatusCompleted, Count: 1},
		{Label: model.ProjectStatusInProgress, Count: 1},
		{Label: model.ProjectStatusOnHold, Count: 1},
	}, got.ByStatus)
	assert.Equal(t, []model.LabelCount{
		{Label: model.PaymentBankTransfer, Count: 1},
		{Label: model.PaymentUPI, Count: 2},
	}, got.ByPaymentMethod)
}

func TestAggregate_EmptyLedger(t *testing.T) {
	got := Aggregate(nil, nil)

	assert.True(t, got.Totals.Billed.IsZero())
	assert.True(t, got.Totals.Paid.IsZero())
	assert.True(t, got.Totals.Expenses.IsZero())
	assert.True(t, got.Totals.Profit.IsZero())
	assert.NotNil(t, got.Monthly)
	assert.Empty(t, got.Monthly)
	assert.NotNil(t, got.ByStatus)
	assert.Empty(t, got.ByStatus)
	assert.NotNil(t, got.ByPaymentMethod)
	assert.Empty(t, got.ByPaymentMethod)
}

func TestAggregate_SparseChronologicalBuckets(t *testing.T) {
	projects := []*model.ClientProject{
		project(day(2026, 5, 1), "10", "10", "1", model.ProjectStatusDelivered, model.PaymentCash),
		project(day(2025, 12, 20), "20", "5", "1", model.ProjectStatusDelivered, model.PaymentCash),
		project(day(2026, 2, 3), "30", "0", "40", model.ProjectStatusCancelled, model.PaymentCash),
	}

	got := Aggregate(projects, nil)

	var labels []string
	for _, b := range got.Monthly {
		labels = append(labels, b.Label())
	}
	// No zero-filled Jan, Mar or Apr.
	assert.Equal(t, []string{"Dec 2025", "Feb 2026", "May 2026"}, labels)
	assert.True(t, got.Monthly[1].Profit.Equal(dec("-40")))
}

func TestAggregate_ExactDecimals(t *testing.T) {
	var projects []*model.ClientProject
	for i := 0; i < 1000; i++ {
		projects = append(projects, project(day(2026, 1, 1), "0.10", "0.10", "0.01", model.ProjectStatusCompleted, model.PaymentCard))
	}

	got := Aggregate(projects, nil)

	assert.Equal(t, "100", got.Totals.Billed.String())
	assert.Equal(t, "90", got.Totals.Profit.String())
}

func TestAggregate_OrderIndependent(t *testing.T) {
	projects := []*model.ClientProject{
		project(day(2026, 1, 5), "100.50", "50.25", "10", model.ProjectStatusInProgress, model.PaymentUPI),
		project(day(2026, 1, 20), "200", "200", "20.75", model.ProjectStatusCompleted, model.PaymentCard),
		project(day(2026, 2, 1), "300", "100", "0", model.ProjectStatusDelivered, model.PaymentPayPal),
		project(day(2025, 11, 9), "400", "400", "399.99", model.ProjectStatusCompleted, model.PaymentUPI),
		project(day(2026, 2, 28), "0", "0", "5", model.ProjectStatusCancelled, model.PaymentOther),
	}
	want := Aggregate(projects, nil)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]*model.ClientProject(nil), projects...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Aggregate(shuffled, nil)
		assert.True(t, want.Totals.Profit.Equal(got.Totals.Profit))
		assert.True(t, want.Totals.Billed.Equal(got.Totals.Billed))
		require.Len(t, got.Monthly, len(want.Monthly))
		for j := range want.Monthly {
			assert.True(t, want.Monthly[j].Month.Equal(got.Monthly[j].Month))
			assert.True(t, want.Monthly[j].Revenue.Equal(got.Monthly[j].Revenue))
			assert.True(t, want.Monthly[j].Expenses.Equal(got.Monthly[j].Expenses))
			assert.True(t, want.Monthly[j].Profit.Equal(got.Monthly[j].Profit))
		}
		assert.Equal(t, want.ByStatus, got.ByStatus)
		assert.Equal(t, want.ByPaymentMethod, got.ByPaymentMethod)
	}
}

func TestAggregate_BucketsInLocation(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on Jan 31 is already Feb 1 in IST.
	p := project(time.Date(2026, 1, 31, 20, 0, 0, 0, time.UTC), "1", "1", "0", model.ProjectStatusCompleted, model.PaymentUPI)

	assert.Equal(t, "Jan 2026", Aggregate([]*model.ClientProject{p}, nil).Monthly[0].Label())
	assert.Equal(t, "Feb 2026", Aggregate([]*model.ClientProject{p}, kolkata).Monthly[0].Label())
}

func TestAnalyticsService_SummaryLoadsWholeLedger(t *testing.T) {
	var gotOpts *model.ClientProjectListOptions
	repo := &mockClientProjectRepository{
		listFunc: func(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error) {
			gotOpts = &opts
			return []*model.ClientProject{
				project(day(2026, 4, 1), "100", "60", "10", model.ProjectStatusInProgress, model.PaymentCash),
			}, nil
		},
	}
	svc := NewAnalyticsService(repo, time.UTC)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, gotOpts)
	assert.Equal(t, model.ClientProjectListOptions{}, *gotOpts)
	assert.True(t, summary.Totals.Profit.Equal(dec("50")))
}

func TestAnalyticsService_StoreErrorPropagates(t *testing.T) {
	dbErr := errors.New("db down")
	repo := &mockClientProjectRepository{
		listFunc: func(ctx context.Context, opts model.ClientProjectListOptions) ([]*model.ClientProject, error) {
			return nil, dbErr
		},
	}
	_, err := NewAnalyticsService(repo, nil).Summary(context.Background())
	assert.ErrorIs(t, err, dbErr)
}
