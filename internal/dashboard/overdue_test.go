package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueInvoicesAging(t *testing.T) {
	repo := &mockRepo{
		overdue: []OverdueInvoice{
			{
				Invoice: Invoice{
					Status:      StatusSent,
					TotalAmount: 1000,
					AmountPaid:  400,
					DueDate:     utcDate(2024, time.March, 1),
				},
				ProjectName: "Kitchen Remodel",
				PersonName:  "Dana Whitfield",
			},
		},
	}
	svc := newTestService(repo, &mockSummarizer{})

	now := utcDate(2024, time.March, 15)
	entries, err := svc.OverdueInvoices(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, 14, entries[0].DaysOverdue)
	assert.InDelta(t, 600, entries[0].AmountDue, 1e-9)
	assert.Equal(t, "Kitchen Remodel", entries[0].ProjectName)

	repo.mu.Lock()
	asOf := repo.lastAsOf
	repo.mu.Unlock()
	assert.Equal(t, now, asOf)
}

func TestOverdueInvoicesRoundsPartialDaysUp(t *testing.T) {
	repo := &mockRepo{
		overdue: []OverdueInvoice{
			{Invoice: Invoice{TotalAmount: 100, DueDate: time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC)}},
		},
	}
	svc := newTestService(repo, &mockSummarizer{})

	entries, err := svc.OverdueInvoices(context.Background(), utcDate(2024, time.March, 15))
	require.NoError(t, err)

	// 13 days and 6 hours elapsed rounds to 14 whole days.
	require.Len(t, entries, 1)
	assert.Equal(t, 14, entries[0].DaysOverdue)
}

func TestOverdueInvoicesEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockSummarizer{})

	entries, err := svc.OverdueInvoices(context.Background(), utcDate(2024, time.March, 15))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestOverdueInvoicesFetchErrorPropagates(t *testing.T) {
	repo := &mockRepo{overdueErr: errors.New("store unreachable")}
	svc := newTestService(repo, &mockSummarizer{})

	_, err := svc.OverdueInvoices(context.Background(), utcDate(2024, time.March, 15))
	require.Error(t, err)
}

func TestOverdueInvoicesZeroNowUsesServiceClock(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, &mockSummarizer{})
	now := utcDate(2024, time.July, 4)
	svc.WithNow(func() time.Time { return now })

	_, err := svc.OverdueInvoices(context.Background(), time.Time{})
	require.NoError(t, err)

	repo.mu.Lock()
	asOf := repo.lastAsOf
	repo.mu.Unlock()
	assert.Equal(t, now, asOf)
}
