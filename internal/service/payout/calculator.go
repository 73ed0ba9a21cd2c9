package payout

import (
	"github.com/shopspring/decimal"
)

// ActivityRow holds one day's (or one row's) delivery activity figures as
// entered for the payout period.
type ActivityRow struct {
	FwdCount      int64           `json:"fwd_count"`
	RvpCount      int64           `json:"rvp_count"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	LossAmount    decimal.Decimal `json:"loss_amount"`
}

// Rates are the per-unit payout rates for the employee.
type Rates struct {
	PerFwd decimal.Decimal `json:"per_fwd"`
	PerRvp decimal.Decimal `json:"per_rvp"`
}

// Options control the deduction policy of a payout computation.
type Options struct {
	// TDSRatePercent is the tax-deducted-at-source rate, e.g. 1 for 1%.
	TDSRatePercent decimal.Decimal
	// DeductLoss subtracts the reported loss total from the final payable
	// amount. When false the losses are still totalled and reported, only
	// the deduction is skipped.
	DeductLoss bool
}

// Summary is the result of a payout computation. FinalAmount may be negative
// when deductions exceed the gross earnings.
type Summary struct {
	TotalFwd      int64           `json:"total_fwd"`
	TotalRvp      int64           `json:"total_rvp"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	TDSAmount     decimal.Decimal `json:"tds_amount"`
	TotalAdvance  decimal.Decimal `json:"total_advance"`
	TotalLoss     decimal.Decimal `json:"total_loss"`
	LossDeducted  bool            `json:"loss_deducted"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
}

// Compute derives the payout summary for a period.
//
//	gross = Σfwd·perFwd + Σrvp·perRvp
//	tds   = round(gross · rate / 100)   half-up to whole units
//	final = gross − tds − Σadvance [− Σloss]
func Compute(rows []ActivityRow, rates Rates, opts Options) Summary {
	var s Summary

	for _, row := range rows {
		s.TotalFwd += row.FwdCount
		s.TotalRvp += row.RvpCount
		s.TotalAdvance = s.TotalAdvance.Add(row.AdvanceAmount)
		s.TotalLoss = s.TotalLoss.Add(row.LossAmount)
	}

	fwdEarnings := rates.PerFwd.Mul(decimal.NewFromInt(s.TotalFwd))
	rvpEarnings := rates.PerRvp.Mul(decimal.NewFromInt(s.TotalRvp))
	s.GrossAmount = fwdEarnings.Add(rvpEarnings)

	s.TDSAmount = s.GrossAmount.Mul(opts.TDSRatePercent).Div(decimal.NewFromInt(100)).Round(0)

	s.FinalAmount = s.GrossAmount.Sub(s.TDSAmount).Sub(s.TotalAdvance)
	if opts.DeductLoss {
		s.FinalAmount = s.FinalAmount.Sub(s.TotalLoss)
		s.LossDeducted = true
	}

	return s
}
