package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryProjection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	changes := feed.NewHub()
	projector := NewProjector(f.txRepo, changes)

	mkSalary := func(m time.Month, paid bool) ledger.Transaction {
		tx, err := f.txRepo.Create(ctx, ledger.Transaction{
			EmployeeID: f.emp.ID, Type: ledger.TxTypeSalary, Amount: d("12000"),
			TxnDate: time.Date(2026, m, 15, 0, 0, 0, 0, time.UTC),
			Paid:    paid, PeriodYear: 2026, PeriodMonth: int(m),
		})
		require.NoError(t, err)
		return tx
	}
	mkSalary(time.June, true)
	mkSalary(time.July, false)
	unpaidAug := mkSalary(time.August, false)

	// advances must never leak into salary sums
	_, err := f.txRepo.Create(ctx, ledger.Transaction{
		EmployeeID: f.emp.ID, Type: ledger.TxTypeAdvance, Amount: d("500"),
		TxnDate: time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("one-shot sums split by paid flag", func(t *testing.T) {
		unpaid, err := projector.UnpaidSalary(ctx, f.emp.ID)
		require.NoError(t, err)
		assert.True(t, unpaid.Equal(d("24000")), "unpaid = %s", unpaid)

		paid, err := projector.PaidSalary(ctx, f.emp.ID)
		require.NoError(t, err)
		assert.True(t, paid.Equal(d("12000")), "paid = %s", paid)
	})

	t.Run("watch recomputes on ledger changes", func(t *testing.T) {
		watchCtx, cancelCtx := context.WithCancel(ctx)
		defer cancelCtx()

		sums, cancel, err := projector.WatchUnpaidSalary(watchCtx, f.emp.ID)
		require.NoError(t, err)

		initial := <-sums
		assert.True(t, initial.Equal(d("24000")))

		// paying august moves it out of the unpaid sum
		unpaidAug.Paid = true
		require.NoError(t, f.txRepo.Update(ctx, unpaidAug))
		changes.Publish(feed.Change{EmployeeID: f.emp.ID, TransactionID: unpaidAug.ID, Kind: feed.ChangeUpdated})

		select {
		case next := <-sums:
			assert.True(t, next.Equal(d("12000")), "unpaid after payment = %s", next)
		case <-time.After(2 * time.Second):
			t.Fatal("no projection update after ledger change")
		}

		// cancelling shuts the channel down
		cancel()
		deadline := time.After(2 * time.Second)
		closed := false
		for !closed {
			select {
			case _, ok := <-sums:
				closed = !ok
			case <-deadline:
				t.Fatal("channel not closed after cancel")
			}
		}
	})

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		sum, err := projector.UnpaidSalary(ctx, "nobody")
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}
