package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository defines data access for staff records.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, id string) error

	// IncrementTotalAdvance applies an atomic increment-by-delta to the
	// cached balance. Implementations must not read-modify-write the value
	// client-side; concurrent deltas have to commute.
	IncrementTotalAdvance(ctx context.Context, id string, delta decimal.Decimal) error

	// SetTotalAdvance overwrites the cached balance. Reserved for the
	// recompute-from-transactions repair path.
	SetTotalAdvance(ctx context.Context, id string, total decimal.Decimal) error
}

// ListFilter narrows and orders List results.
type ListFilter struct {
	HubID  string
	Search string // case-insensitive name match
	SortBy string // "name" or "salary_amount"; empty means name
	Desc   bool
}
