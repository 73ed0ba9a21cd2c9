package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                string
	Name              string
	Contact           string
	Address           string
	SalaryDate        int // day of month, 1-28
	SalaryAmount      decimal.Decimal
	Description       *string
	TotalAdvance      decimal.Decimal // cached Σ of signed Advance/Return amounts; transaction sum is authoritative
	PerFwd            decimal.Decimal
	PerRvp            decimal.Decimal
	HubID             *string
	BankName          string
	BankAccountNumber string
	BankIFSC          string
	IsAccountActive   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	HubName *string
}
