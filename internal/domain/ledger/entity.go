package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType enum
type TxType string

const (
	TxTypeSalary  TxType = "Salary"
	TxTypeAdvance TxType = "Advance"
	TxTypeReturn  TxType = "Return"
)

// Sign convention for user-entered magnitudes. The business meaning of the
// direction is deliberately centralized here; the engine's diff and reversal
// math never references these values directly.
var (
	advanceSign = decimal.NewFromInt(1)
	returnSign  = decimal.NewFromInt(-1)
)

// SignedAmount converts a non-negative magnitude into the stored signed
// amount for Advance/Return entries. Salary magnitudes are stored as-is.
func SignedAmount(t TxType, magnitude decimal.Decimal) decimal.Decimal {
	switch t {
	case TxTypeReturn:
		return magnitude.Mul(returnSign)
	case TxTypeAdvance:
		return magnitude.Mul(advanceSign)
	default:
		return magnitude
	}
}

// AffectsBalance reports whether entries of this type feed the employee's
// denormalized total_advance. Salary entries are excluded from that balance.
func AffectsBalance(t TxType) bool {
	return t == TxTypeAdvance || t == TxTypeReturn
}

// Transaction - one ledger entry for an employee
type Transaction struct {
	ID         string
	EmployeeID string
	Type       TxType
	Amount     decimal.Decimal // signed; see SignedAmount
	TxnDate    time.Time       // calendar date of the event
	CreatedAt  time.Time

	// Salary entries only
	Paid          bool
	ActualPayDate *time.Time
	CashAmount    *decimal.Decimal
	BankAmount    *decimal.Decimal
	PeriodYear    int // accrual idempotency key, 0 for non-Salary rows
	PeriodMonth   int
}

// Filter restricts List/Subscribe result sets. Zero-value fields are
// ignored; date bounds are inclusive on TxnDate.
type Filter struct {
	Type      TxType
	DateStart *time.Time
	DateEnd   *time.Time
}

// Matches reports whether tx satisfies the filter. Bounds compare by
// calendar date, not timestamp.
func (f Filter) Matches(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	d := dateOnly(tx.TxnDate)
	if f.DateStart != nil && d.Before(dateOnly(*f.DateStart)) {
		return false
	}
	if f.DateEnd != nil && d.After(dateOnly(*f.DateEnd)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
