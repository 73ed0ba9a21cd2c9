package payout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCompute(t *testing.T) {
	onePercent := Options{TDSRatePercent: d("1")}

	t.Run("single row with one percent TDS", func(t *testing.T) {
		rows := []ActivityRow{
			{FwdCount: 15, RvpCount: 14, AdvanceAmount: d("0"), LossAmount: d("0")},
		}
		s := Compute(rows, Rates{PerFwd: d("13"), PerRvp: d("13")}, onePercent)

		// (15+14)*13 = 377, 1% tds rounds to 4
		assert.True(t, s.GrossAmount.Equal(d("377")), "gross = %s", s.GrossAmount)
		assert.True(t, s.TDSAmount.Equal(d("4")), "tds = %s", s.TDSAmount)
		assert.True(t, s.FinalAmount.Equal(d("373")), "final = %s", s.FinalAmount)
	})

	t.Run("tds rounds half up", func(t *testing.T) {
		cases := []struct {
			gross string
			tds   string
		}{
			{"350", "4"}, // 3.50 rounds up
			{"349", "3"}, // 3.49 rounds down
			{"50", "1"},  // 0.50 rounds up
			{"49", "0"},
			{"0", "0"},
		}
		for _, tc := range cases {
			rows := []ActivityRow{{FwdCount: 1}}
			s := Compute(rows, Rates{PerFwd: d(tc.gross)}, onePercent)
			assert.True(t, s.TDSAmount.Equal(d(tc.tds)), "gross %s: tds = %s, want %s", tc.gross, s.TDSAmount, tc.tds)
		}
	})

	t.Run("sums counts and amounts across rows", func(t *testing.T) {
		rows := []ActivityRow{
			{FwdCount: 10, RvpCount: 2, AdvanceAmount: d("100"), LossAmount: d("20")},
			{FwdCount: 5, RvpCount: 3, AdvanceAmount: d("50"), LossAmount: d("0")},
		}
		s := Compute(rows, Rates{PerFwd: d("10"), PerRvp: d("8")}, Options{TDSRatePercent: decimal.Zero})

		assert.Equal(t, int64(15), s.TotalFwd)
		assert.Equal(t, int64(5), s.TotalRvp)
		assert.True(t, s.GrossAmount.Equal(d("190")))
		assert.True(t, s.TotalAdvance.Equal(d("150")))
		assert.True(t, s.TotalLoss.Equal(d("20")))
		assert.True(t, s.FinalAmount.Equal(d("40")))
	})

	t.Run("loss reported but not deducted by default", func(t *testing.T) {
		rows := []ActivityRow{
			{FwdCount: 10, LossAmount: d("500")},
		}
		s := Compute(rows, Rates{PerFwd: d("10")}, Options{TDSRatePercent: decimal.Zero})

		assert.True(t, s.TotalLoss.Equal(d("500")))
		assert.False(t, s.LossDeducted)
		assert.True(t, s.FinalAmount.Equal(d("100")))
	})

	t.Run("loss deducted when enabled", func(t *testing.T) {
		rows := []ActivityRow{
			{FwdCount: 10, LossAmount: d("30")},
		}
		s := Compute(rows, Rates{PerFwd: d("10")}, Options{TDSRatePercent: decimal.Zero, DeductLoss: true})

		assert.True(t, s.LossDeducted)
		assert.True(t, s.FinalAmount.Equal(d("70")))
	})

	t.Run("final can go negative", func(t *testing.T) {
		rows := []ActivityRow{
			{FwdCount: 1, AdvanceAmount: d("1000")},
		}
		s := Compute(rows, Rates{PerFwd: d("10")}, Options{TDSRatePercent: decimal.Zero})

		assert.True(t, s.FinalAmount.Equal(d("-990")))
	})

	t.Run("empty rows", func(t *testing.T) {
		s := Compute(nil, Rates{PerFwd: d("13"), PerRvp: d("10")}, onePercent)

		assert.True(t, s.GrossAmount.IsZero())
		assert.True(t, s.TDSAmount.IsZero())
		assert.True(t, s.FinalAmount.IsZero())
	})
}
