package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
)

// Service is the ledger engine: transaction CRUD with the signed-amount
// convention and atomic maintenance of the employee's cached balance.
type Service interface {
	Record(ctx context.Context, req ledger.RecordTransactionRequest) (ledger.TransactionResponse, error)
	Update(ctx context.Context, transactionID string, req ledger.RecordTransactionRequest) (ledger.TransactionResponse, error)
	Delete(ctx context.Context, transactionID string) error
	List(ctx context.Context, employeeID string, req ledger.ListFilterRequest) ([]ledger.TransactionResponse, error)

	// Subscribe returns a channel carrying the current matching set, then a
	// fresh set on every ledger change for the employee. The channel closes
	// once ctx ends or the returned cancel func runs; every delivery travels
	// over the channel, so the receiver owns all its own writes.
	Subscribe(ctx context.Context, employeeID string, req ledger.ListFilterRequest) (<-chan []ledger.TransactionResponse, func(), error)

	// RecomputeBalance rebuilds total_advance from the transaction stream,
	// the repair for a failed balance increment.
	RecomputeBalance(ctx context.Context, employeeID string) (employee.EmployeeResponse, error)
}

type ServiceImpl struct {
	txRepo       ledger.TransactionRepository
	employeeRepo employee.EmployeeRepository
	changes      *feed.Hub
}

func NewService(
	txRepo ledger.TransactionRepository,
	employeeRepo employee.EmployeeRepository,
	changes *feed.Hub,
) Service {
	return &ServiceImpl{
		txRepo:       txRepo,
		employeeRepo: employeeRepo,
		changes:      changes,
	}
}

func (s *ServiceImpl) Record(ctx context.Context, req ledger.RecordTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return ledger.TransactionResponse{}, err
	}

	txType := ledger.TxType(req.Type)
	signed := ledger.SignedAmount(txType, req.Magnitude())

	// Transaction insert first, balance increment second. A crash between
	// the two leaves total_advance stale until RecomputeBalance runs; the
	// transaction stream stays authoritative.
	created, err := s.txRepo.Create(ctx, ledger.Transaction{
		EmployeeID: req.EmployeeID,
		Type:       txType,
		Amount:     signed,
		TxnDate:    req.Date(),
	})
	if err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := s.employeeRepo.IncrementTotalAdvance(ctx, req.EmployeeID, signed); err != nil {
		slog.Error("balance increment failed after transaction write",
			"employee_id", req.EmployeeID,
			"transaction_id", created.ID,
			"delta", signed.String(),
			"error", err,
		)
		return ledger.TransactionResponse{}, fmt.Errorf("%w: %w", ledger.ErrBalanceIncrementFailed, err)
	}

	s.changes.Publish(feed.Change{EmployeeID: req.EmployeeID, TransactionID: created.ID, Kind: feed.ChangeCreated})

	return ledger.ToResponse(created), nil
}

func (s *ServiceImpl) Update(ctx context.Context, transactionID string, req ledger.RecordTransactionRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	existing, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	if !ledger.AffectsBalance(existing.Type) {
		return ledger.TransactionResponse{}, ledger.ErrSalaryNotEditable
	}

	txType := ledger.TxType(req.Type)
	signed := ledger.SignedAmount(txType, req.Magnitude())
	diff := signed.Sub(existing.Amount)

	updated := existing
	updated.Type = txType
	updated.Amount = signed
	updated.TxnDate = req.Date()

	if err := s.txRepo.Update(ctx, updated); err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("failed to update transaction: %w", err)
	}

	if err := s.employeeRepo.IncrementTotalAdvance(ctx, existing.EmployeeID, diff); err != nil {
		slog.Error("balance increment failed after transaction write",
			"employee_id", existing.EmployeeID,
			"transaction_id", transactionID,
			"delta", diff.String(),
			"error", err,
		)
		return ledger.TransactionResponse{}, fmt.Errorf("%w: %w", ledger.ErrBalanceIncrementFailed, err)
	}

	s.changes.Publish(feed.Change{EmployeeID: existing.EmployeeID, TransactionID: transactionID, Kind: feed.ChangeUpdated})

	return ledger.ToResponse(updated), nil
}

func (s *ServiceImpl) Delete(ctx context.Context, transactionID string) error {
	existing, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if err := s.txRepo.Delete(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	// Reverse exactly what was applied. Salary entries never touched the
	// balance, so their deletion must not either.
	if ledger.AffectsBalance(existing.Type) {
		if err := s.employeeRepo.IncrementTotalAdvance(ctx, existing.EmployeeID, existing.Amount.Neg()); err != nil {
			slog.Error("balance increment failed after transaction write",
				"employee_id", existing.EmployeeID,
				"transaction_id", transactionID,
				"delta", existing.Amount.Neg().String(),
				"error", err,
			)
			return fmt.Errorf("%w: %w", ledger.ErrBalanceIncrementFailed, err)
		}
	}

	s.changes.Publish(feed.Change{EmployeeID: existing.EmployeeID, TransactionID: transactionID, Kind: feed.ChangeDeleted})

	return nil
}

func (s *ServiceImpl) List(ctx context.Context, employeeID string, req ledger.ListFilterRequest) ([]ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	txs, err := s.txRepo.ListByEmployee(ctx, employeeID, req.ToFilter())
	if err != nil {
		return nil, err
	}

	return ledger.ToResponses(txs), nil
}

func (s *ServiceImpl) Subscribe(ctx context.Context, employeeID string, req ledger.ListFilterRequest) (<-chan []ledger.TransactionResponse, func(), error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	filter := req.ToFilter()

	txs, err := s.txRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, nil, err
	}

	ch, cleanup := s.changes.Subscribe(employeeID)

	out := make(chan []ledger.TransactionResponse, 10)
	// Buffered initial delivery, so the subscriber never sees an empty
	// window between registration and first data.
	out <- ledger.ToResponses(txs)

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
				txs, err := s.txRepo.ListByEmployee(ctx, employeeID, filter)
				if err != nil {
					slog.Error("live query refresh failed", "employee_id", employeeID, "error", err)
					continue
				}
				select {
				case out <- ledger.ToResponses(txs):
				case <-ctx.Done():
					cleanup()
					return
				}
			}
		}
	}()

	return out, cleanup, nil
}

func (s *ServiceImpl) RecomputeBalance(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	sum, err := s.txRepo.SumSignedAmounts(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.SetTotalAdvance(ctx, employeeID, sum); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("total advance recomputed from transactions", "employee_id", employeeID, "total_advance", sum.String())

	return employee.ToResponse(emp), nil
}
