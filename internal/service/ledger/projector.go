package ledger

import (
	"context"
	"log/slog"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/shopspring/decimal"
)

// Projector derives salary aggregates from the transaction stream. No
// stored counter: every change triggers a recompute, so the view can never
// drift from the ledger.
type Projector interface {
	// WatchUnpaidSalary and WatchPaidSalary return a channel carrying the
	// current total, then a recomputed one after every ledger change. The
	// channel closes when ctx ends or the cancel func runs.
	WatchUnpaidSalary(ctx context.Context, employeeID string) (<-chan decimal.Decimal, func(), error)
	WatchPaidSalary(ctx context.Context, employeeID string) (<-chan decimal.Decimal, func(), error)

	// UnpaidSalary / PaidSalary are the one-shot equivalents.
	UnpaidSalary(ctx context.Context, employeeID string) (decimal.Decimal, error)
	PaidSalary(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

type ProjectorImpl struct {
	txRepo  ledger.TransactionRepository
	changes *feed.Hub
}

func NewProjector(txRepo ledger.TransactionRepository, changes *feed.Hub) Projector {
	return &ProjectorImpl{txRepo: txRepo, changes: changes}
}

func (p *ProjectorImpl) sumSalary(ctx context.Context, employeeID string, paid bool) (decimal.Decimal, error) {
	txs, err := p.txRepo.ListByEmployee(ctx, employeeID, ledger.Filter{Type: ledger.TxTypeSalary})
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, tx := range txs {
		if tx.Paid == paid {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

func (p *ProjectorImpl) UnpaidSalary(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return p.sumSalary(ctx, employeeID, false)
}

func (p *ProjectorImpl) PaidSalary(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	return p.sumSalary(ctx, employeeID, true)
}

func (p *ProjectorImpl) watch(ctx context.Context, employeeID string, paid bool) (<-chan decimal.Decimal, func(), error) {
	sum, err := p.sumSalary(ctx, employeeID, paid)
	if err != nil {
		return nil, nil, err
	}

	ch, cleanup := p.changes.Subscribe(employeeID)

	out := make(chan decimal.Decimal, 10)
	out <- sum

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				cleanup()
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				sum, err := p.sumSalary(ctx, employeeID, paid)
				if err != nil {
					slog.Error("salary projection refresh failed", "employee_id", employeeID, "error", err)
					continue
				}
				select {
				case out <- sum:
				case <-ctx.Done():
					cleanup()
					return
				}
			}
		}
	}()

	return out, cleanup, nil
}

func (p *ProjectorImpl) WatchUnpaidSalary(ctx context.Context, employeeID string) (<-chan decimal.Decimal, func(), error) {
	return p.watch(ctx, employeeID, false)
}

func (p *ProjectorImpl) WatchPaidSalary(ctx context.Context, employeeID string) (<-chan decimal.Decimal, func(), error) {
	return p.watch(ctx, employeeID, true)
}
