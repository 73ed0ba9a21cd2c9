package ledger

import (
	"time"

	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest covers both the create and the edit path of a
// manual Advance/Return entry. Amount is the user-entered magnitude; the
// sign is derived from Type.
type RecordTransactionRequest struct {
	EmployeeID string `json:"-"`
	Type       string `json:"type"`   // "Advance" or "Return"
	Amount     string `json:"amount"` // non-negative decimal magnitude
	TxnDate    string `json:"date"`   // YYYY-MM-DD
}

func (r *RecordTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != string(TxTypeAdvance) && r.Type != string(TxTypeReturn) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'Advance' or 'Return'"})
	}
	if _, ok := validator.ParseAmount(r.Amount); !ok {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be a non-negative number"})
	}
	if _, ok := validator.IsValidDate(r.TxnDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Magnitude returns the parsed amount. Validate must have passed.
func (r *RecordTransactionRequest) Magnitude() decimal.Decimal {
	d, _ := validator.ParseAmount(r.Amount)
	return d
}

// Date returns the parsed txn date. Validate must have passed.
func (r *RecordTransactionRequest) Date() time.Time {
	t, _ := validator.IsValidDate(r.TxnDate)
	return t
}

type ListFilterRequest struct {
	Type      string `json:"type,omitempty"`
	DateStart string `json:"date_start,omitempty"`
	DateEnd   string `json:"date_end,omitempty"`
}

func (r *ListFilterRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != "" && !validator.IsInSlice(r.Type, []string{string(TxTypeSalary), string(TxTypeAdvance), string(TxTypeReturn)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'Salary', 'Advance' or 'Return'"})
	}
	if r.DateStart != "" {
		if _, ok := validator.IsValidDate(r.DateStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_start", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.DateEnd != "" {
		if _, ok := validator.IsValidDate(r.DateEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_end", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToFilter converts the request into a domain filter. Validate must have
// passed.
func (r *ListFilterRequest) ToFilter() Filter {
	f := Filter{Type: TxType(r.Type)}
	if r.DateStart != "" {
		t, _ := validator.IsValidDate(r.DateStart)
		f.DateStart = &t
	}
	if r.DateEnd != "" {
		t, _ := validator.IsValidDate(r.DateEnd)
		f.DateEnd = &t
	}
	return f
}

// MarkPaidRequest updates the payment status of a Salary entry.
type MarkPaidRequest struct {
	Paid          bool             `json:"paid"`
	ActualPayDate *string          `json:"actual_pay_date,omitempty"` // YYYY-MM-DD
	CashAmount    *decimal.Decimal `json:"cash_amount,omitempty"`
	BankAmount    *decimal.Decimal `json:"bank_amount,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ActualPayDate != nil {
		if _, ok := validator.IsValidDate(*r.ActualPayDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.CashAmount != nil && r.CashAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "cash_amount", Message: "must be non-negative"})
	}
	if r.BankAmount != nil && r.BankAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bank_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TransactionResponse is the wire shape of a ledger entry.
type TransactionResponse struct {
	ID            string           `json:"id"`
	EmployeeID    string           `json:"employee_id"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	TxnDate       string           `json:"date"`
	CreatedAt     string           `json:"created_at"`
	Paid          *bool            `json:"paid,omitempty"`
	ActualPayDate *string          `json:"actual_pay_date,omitempty"`
	CashAmount    *decimal.Decimal `json:"cash_amount,omitempty"`
	BankAmount    *decimal.Decimal `json:"bank_amount,omitempty"`
}

func ToResponse(tx Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:         tx.ID,
		EmployeeID: tx.EmployeeID,
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		TxnDate:    tx.TxnDate.Format("2006-01-02"),
		CreatedAt:  tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.Type == TxTypeSalary {
		paid := tx.Paid
		resp.Paid = &paid
		if tx.ActualPayDate != nil {
			str := tx.ActualPayDate.Format("2006-01-02")
			resp.ActualPayDate = &str
		}
		resp.CashAmount = tx.CashAmount
		resp.BankAmount = tx.BankAmount
	}
	return resp
}

func ToResponses(txs []Transaction) []TransactionResponse {
	result := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		result = append(result, ToResponse(tx))
	}
	return result
}
