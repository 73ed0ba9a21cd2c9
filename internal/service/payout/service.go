package payout

import (
	"context"
	"fmt"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Service computes payout previews for an employee, sourcing the per-unit
// rates from the employee record and the advance total from the ledger.
type Service interface {
	// Preview computes a payout from caller-supplied activity rows without
	// touching stored data.
	Preview(ctx context.Context, req PreviewRequest) (Summary, error)

	// ForEmployee computes a payout for the employee over a date range. The
	// rates come from the employee record and the advance deduction from
	// the employee's Advance/Return entries within the range.
	ForEmployee(ctx context.Context, employeeID string, req ForEmployeeRequest) (Summary, error)
}

// PreviewRequest carries everything a standalone computation needs.
type PreviewRequest struct {
	Rows   []ActivityRow `json:"rows"`
	PerFwd string        `json:"per_fwd"`
	PerRvp string        `json:"per_rvp"`
}

func (r *PreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.ParseAmount(r.PerFwd); !ok {
		errs = append(errs, validator.ValidationError{Field: "per_fwd", Message: "must be a non-negative number"})
	}
	if _, ok := validator.ParseAmount(r.PerRvp); !ok {
		errs = append(errs, validator.ValidationError{Field: "per_rvp", Message: "must be a non-negative number"})
	}
	for i, row := range r.Rows {
		if row.FwdCount < 0 || row.RvpCount < 0 {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("rows[%d]", i), Message: "counts must be non-negative"})
		}
		if row.AdvanceAmount.IsNegative() || row.LossAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("rows[%d]", i), Message: "amounts must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ForEmployeeRequest scopes a stored-data payout computation.
type ForEmployeeRequest struct {
	DateStart string        `json:"date_start"` // YYYY-MM-DD
	DateEnd   string        `json:"date_end"`   // YYYY-MM-DD
	Rows      []ActivityRow `json:"rows"`       // activity figures for the range
}

func (r *ForEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.DateStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.DateEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	for i, row := range r.Rows {
		if row.FwdCount < 0 || row.RvpCount < 0 {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("rows[%d]", i), Message: "counts must be non-negative"})
		}
		if row.LossAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("rows[%d]", i), Message: "loss must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	txRepo       ledger.TransactionRepository
	opts         Options
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	txRepo ledger.TransactionRepository,
	opts Options,
) Service {
	return &ServiceImpl{
		employeeRepo: employeeRepo,
		txRepo:       txRepo,
		opts:         opts,
	}
}

func (s *ServiceImpl) Preview(ctx context.Context, req PreviewRequest) (Summary, error) {
	if err := req.Validate(); err != nil {
		return Summary{}, err
	}

	perFwd, _ := validator.ParseAmount(req.PerFwd)
	perRvp, _ := validator.ParseAmount(req.PerRvp)

	return Compute(req.Rows, Rates{PerFwd: perFwd, PerRvp: perRvp}, s.opts), nil
}

func (s *ServiceImpl) ForEmployee(ctx context.Context, employeeID string, req ForEmployeeRequest) (Summary, error) {
	if err := req.Validate(); err != nil {
		return Summary{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return Summary{}, err
	}

	start, _ := validator.IsValidDate(req.DateStart)
	end, _ := validator.IsValidDate(req.DateEnd)

	// The advance deduction comes from the ledger, not from the rows. Any
	// row-level advance figures are ignored in favor of the stored entries.
	txs, err := s.txRepo.ListByEmployee(ctx, employeeID, ledger.Filter{DateStart: &start, DateEnd: &end})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list ledger entries for payout: %w", err)
	}

	advanceTotal := decimal.Zero
	for _, tx := range txs {
		if ledger.AffectsBalance(tx.Type) {
			advanceTotal = advanceTotal.Add(tx.Amount)
		}
	}

	rows := make([]ActivityRow, 0, len(req.Rows)+1)
	for _, row := range req.Rows {
		row.AdvanceAmount = decimal.Zero
		rows = append(rows, row)
	}
	rows = append(rows, ActivityRow{AdvanceAmount: advanceTotal})

	return Compute(rows, Rates{PerFwd: emp.PerFwd, PerRvp: emp.PerRvp}, s.opts), nil
}
