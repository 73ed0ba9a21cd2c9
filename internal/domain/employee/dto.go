package employee

import (
	"time"

	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name              string           `json:"name"`
	Contact           string           `json:"contact"`
	Address           string           `json:"address"`
	SalaryDate        int              `json:"salary_date"`
	SalaryAmount      decimal.Decimal  `json:"salary_amount"`
	Description       *string          `json:"description,omitempty"`
	PerFwd            decimal.Decimal  `json:"per_fwd"`
	PerRvp            decimal.Decimal  `json:"per_rvp"`
	HubID             *string          `json:"hub_id,omitempty"`
	BankName          string           `json:"bank_name"`
	BankAccountNumber string           `json:"bank_account_number"`
	BankIFSC          string           `json:"bank_ifsc"`
	IsAccountActive   *bool            `json:"is_account_active,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "is required"})
	}
	if !validator.IsValidSalaryDay(r.SalaryDate) {
		errs = append(errs, validator.ValidationError{Field: "salary_date", Message: "must be a day of month between 1 and 28"})
	}
	if r.SalaryAmount.IsNegative() || r.SalaryAmount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "salary_amount", Message: "must be positive"})
	}
	if r.PerFwd.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "per_fwd", Message: "must be non-negative"})
	}
	if r.PerRvp.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "per_rvp", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest overwrites provided fields. TotalAdvance is
// deliberately absent: the cached balance only moves through ledger deltas
// or the recompute repair.
type UpdateEmployeeRequest struct {
	ID                string           `json:"-"`
	Name              *string          `json:"name,omitempty"`
	Contact           *string          `json:"contact,omitempty"`
	Address           *string          `json:"address,omitempty"`
	SalaryDate        *int             `json:"salary_date,omitempty"`
	SalaryAmount      *decimal.Decimal `json:"salary_amount,omitempty"`
	Description       *string          `json:"description,omitempty"`
	PerFwd            *decimal.Decimal `json:"per_fwd,omitempty"`
	PerRvp            *decimal.Decimal `json:"per_rvp,omitempty"`
	HubID             *string          `json:"hub_id,omitempty"`
	BankName          *string          `json:"bank_name,omitempty"`
	BankAccountNumber *string          `json:"bank_account_number,omitempty"`
	BankIFSC          *string          `json:"bank_ifsc,omitempty"`
	IsAccountActive   *bool            `json:"is_account_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.SalaryDate != nil && !validator.IsValidSalaryDay(*r.SalaryDate) {
		errs = append(errs, validator.ValidationError{Field: "salary_date", Message: "must be a day of month between 1 and 28"})
	}
	if r.SalaryAmount != nil && (r.SalaryAmount.IsNegative() || r.SalaryAmount.IsZero()) {
		errs = append(errs, validator.ValidationError{Field: "salary_amount", Message: "must be positive"})
	}
	if r.PerFwd != nil && r.PerFwd.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "per_fwd", Message: "must be non-negative"})
	}
	if r.PerRvp != nil && r.PerRvp.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "per_rvp", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Contact           string          `json:"contact"`
	Address           string          `json:"address"`
	SalaryDate        int             `json:"salary_date"`
	SalaryAmount      decimal.Decimal `json:"salary_amount"`
	Description       *string         `json:"description,omitempty"`
	TotalAdvance      decimal.Decimal `json:"total_advance"`
	PerFwd            decimal.Decimal `json:"per_fwd"`
	PerRvp            decimal.Decimal `json:"per_rvp"`
	HubID             *string         `json:"hub_id,omitempty"`
	HubName           *string         `json:"hub_name,omitempty"`
	BankName          string          `json:"bank_name"`
	BankAccountNumber string          `json:"bank_account_number"`
	BankIFSC          string          `json:"bank_ifsc"`
	IsAccountActive   bool            `json:"is_account_active"`
	CreatedAt         string          `json:"created_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                e.ID,
		Name:              e.Name,
		Contact:           e.Contact,
		Address:           e.Address,
		SalaryDate:        e.SalaryDate,
		SalaryAmount:      e.SalaryAmount,
		Description:       e.Description,
		TotalAdvance:      e.TotalAdvance,
		PerFwd:            e.PerFwd,
		PerRvp:            e.PerRvp,
		HubID:             e.HubID,
		HubName:           e.HubName,
		BankName:          e.BankName,
		BankAccountNumber: e.BankAccountNumber,
		BankIFSC:          e.BankIFSC,
		IsAccountActive:   e.IsAccountActive,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(employees []Employee) []EmployeeResponse {
	result := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, ToResponse(e))
	}
	return result
}
