package accrual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
)

// Service generates the recurring monthly salary entries and manages their
// payment status. Safe to invoke redundantly: the per-period existence check
// plus the store's uniqueness key make repeated sweeps no-ops.
type Service interface {
	EnsureMonthlyEntries(ctx context.Context, asOf time.Time) (SweepResult, error)
	MarkSalaryPaid(ctx context.Context, transactionID string, req ledger.MarkPaidRequest) (ledger.TransactionResponse, error)
	ReconcileDuplicates(ctx context.Context, employeeID string) (int, error)
}

// SweepResult summarizes one accrual pass.
type SweepResult struct {
	Swept    int            `json:"swept"`    // employees examined
	Inserted int            `json:"inserted"` // salary entries created
	Skipped  int            `json:"skipped"`  // already accrued or not yet due
	Failed   int            `json:"failed"`
	Failures []SweepFailure `json:"failures,omitempty"`
}

// SweepFailure names an employee whose accrual failed, so the admin can see
// who to retry or investigate.
type SweepFailure struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Error        string `json:"error"`
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

func (s *ServiceImpl) EnsureMonthlyEntries(ctx context.Context, asOf time.Time) (SweepResult, error) {
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{})
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list employees for accrual sweep: %w", err)
	}

	var result SweepResult
	var sweepErrs []error

	for _, emp := range employees {
		result.Swept++

		inserted, err := s.ensureEntryFor(ctx, emp, asOf)
		if err != nil {
			// one employee's failure must not abort the rest of the sweep
			result.Failed++
			result.Failures = append(result.Failures, SweepFailure{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				Error:        err.Error(),
			})
			sweepErrs = append(sweepErrs, fmt.Errorf("employee %s: %w", emp.ID, err))
			slog.Error("salary accrual failed for employee", "employee_id", emp.ID, "error", err)
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	return result, errors.Join(sweepErrs...)
}

// ensureEntryFor inserts the employee's salary entry for asOf's month when
// due and not already present. Returns whether an entry was inserted.
func (s *ServiceImpl) ensureEntryFor(ctx context.Context, emp employee.Employee, asOf time.Time) (bool, error) {
	year, month := asOf.Year(), asOf.Month()

	exists, err := s.txRepo.SalaryEntryExists(ctx, emp.ID, year, int(month))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if asOf.Day() < emp.SalaryDate {
		// not yet due this month
		return false, nil
	}

	created, err := s.txRepo.Create(ctx, ledger.Transaction{
		EmployeeID:  emp.ID,
		Type:        ledger.TxTypeSalary,
		Amount:      emp.SalaryAmount,
		TxnDate:     time.Date(year, month, emp.SalaryDate, 0, 0, 0, 0, time.UTC),
		Paid:        false,
		PeriodYear:  year,
		PeriodMonth: int(month),
	})
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateSalaryEntry) {
			// a concurrent sweep won the race; the store key made it a no-op
			return false, nil
		}
		return false, err
	}

	// Salary entries never touch total_advance.
	s.changes.Publish(feed.Change{EmployeeID: emp.ID, TransactionID: created.ID, Kind: feed.ChangeCreated})

	return true, nil
}

func (s *ServiceImpl) MarkSalaryPaid(ctx context.Context, transactionID string, req ledger.MarkPaidRequest) (ledger.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.TransactionResponse{}, err
	}

	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return ledger.TransactionResponse{}, err
	}
	if tx.Type != ledger.TxTypeSalary {
		return ledger.TransactionResponse{}, ledger.ErrNotSalaryTransaction
	}

	tx.Paid = req.Paid
	if req.Paid {
		if req.ActualPayDate != nil {
			d, _ := validator.IsValidDate(*req.ActualPayDate)
			tx.ActualPayDate = &d
		}
		tx.CashAmount = req.CashAmount
		tx.BankAmount = req.BankAmount
	} else {
		// unsetting paid clears the payment details, never leaves them stale
		tx.ActualPayDate = nil
		tx.CashAmount = nil
		tx.BankAmount = nil
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return ledger.TransactionResponse{}, fmt.Errorf("failed to update salary entry: %w", err)
	}

	s.changes.Publish(feed.Change{EmployeeID: tx.EmployeeID, TransactionID: tx.ID, Kind: feed.ChangeUpdated})

	return ledger.ToResponse(tx), nil
}

// ReconcileDuplicates removes duplicate same-month Salary entries left over
// from pre-uniqueness-key data, keeping the earliest-created of each period.
// Returns the number of entries removed.
func (s *ServiceImpl) ReconcileDuplicates(ctx context.Context, employeeID string) (int, error) {
	txs, err := s.txRepo.ListByEmployee(ctx, employeeID, ledger.Filter{Type: ledger.TxTypeSalary})
	if err != nil {
		return 0, err
	}

	type period struct {
		year  int
		month int
	}
	keep := make(map[period]ledger.Transaction)
	var duplicates []ledger.Transaction

	for _, tx := range txs {
		key := period{tx.PeriodYear, tx.PeriodMonth}
		if key.year == 0 {
			// rows predating the period columns fall back to the entry date
			key = period{tx.TxnDate.Year(), int(tx.TxnDate.Month())}
		}
		current, ok := keep[key]
		if !ok {
			keep[key] = tx
			continue
		}
		if tx.CreatedAt.Before(current.CreatedAt) {
			duplicates = append(duplicates, current)
			keep[key] = tx
		} else {
			duplicates = append(duplicates, tx)
		}
	}

	removed := 0
	for _, dup := range duplicates {
		if err := s.txRepo.Delete(ctx, dup.ID); err != nil {
			return removed, fmt.Errorf("failed to remove duplicate salary entry %s: %w", dup.ID, err)
		}
		removed++
		slog.Warn("removed duplicate salary entry",
			"employee_id", employeeID,
			"transaction_id", dup.ID,
			"period_year", dup.PeriodYear,
			"period_month", dup.PeriodMonth,
		)
	}

	if removed > 0 {
		s.changes.Publish(feed.Change{EmployeeID: employeeID, Kind: feed.ChangeDeleted})
	}

	return removed, nil
}
