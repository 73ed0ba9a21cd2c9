package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// TransactionRepository defines data access for ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	Update(ctx context.Context, tx Transaction) error
	Delete(ctx context.Context, id string) error

	// ListByEmployee returns the employee's entries ordered by txn_date
	// descending, creation order breaking ties.
	ListByEmployee(ctx context.Context, employeeID string, filter Filter) ([]Transaction, error)

	// SalaryEntryExists reports whether a Salary entry exists for the
	// employee and accrual period.
	SalaryEntryExists(ctx context.Context, employeeID string, year int, month int) (bool, error)

	// SumSignedAmounts returns the authoritative Σ(amount) of all
	// Advance/Return entries for the employee.
	SumSignedAmounts(ctx context.Context, employeeID string) (decimal.Decimal, error)
}
