package ledger

import "errors"

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateSalaryEntry = errors.New("salary entry already exists for this period")
	ErrNotSalaryTransaction = errors.New("transaction is not a salary entry")
	ErrSalaryNotEditable    = errors.New("salary entries cannot be edited as advances")
	// ErrBalanceIncrementFailed marks the consistency window between a
	// transaction write and the total_advance increment: the first write
	// succeeded, the second did not, so the cached balance is stale until
	// recomputed from the transaction stream.
	ErrBalanceIncrementFailed = errors.New("balance increment failed after transaction write")
)
