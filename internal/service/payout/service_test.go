package payout

import (
	"context"
	"testing"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
	"github.com/esyhub/staffpay-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	svc := NewService(memory.NewEmployeeRepository(), memory.NewTransactionRepository(), Options{TDSRatePercent: d("1")})
	ctx := context.Background()

	t.Run("computes from request rates", func(t *testing.T) {
		s, err := svc.Preview(ctx, PreviewRequest{
			Rows:   []ActivityRow{{FwdCount: 29}},
			PerFwd: "13",
			PerRvp: "10",
		})
		require.NoError(t, err)
		assert.True(t, s.FinalAmount.Equal(d("373")))
	})

	t.Run("rejects invalid rates", func(t *testing.T) {
		_, err := svc.Preview(ctx, PreviewRequest{PerFwd: "-1", PerRvp: "10"})
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		_, err := svc.Preview(ctx, PreviewRequest{
			Rows:   []ActivityRow{{FwdCount: -1}},
			PerFwd: "13",
			PerRvp: "10",
		})
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
	})
}

func TestForEmployee(t *testing.T) {
	ctx := context.Background()
	employeeRepo := memory.NewEmployeeRepository()
	txRepo := memory.NewTransactionRepository()
	svc := NewService(employeeRepo, txRepo, Options{TDSRatePercent: d("1")})

	emp, err := employeeRepo.Create(ctx, employee.Employee{
		Name:         "Ravi",
		SalaryDate:   15,
		SalaryAmount: d("12000"),
		PerFwd:       d("13"),
		PerRvp:       d("10"),
	})
	require.NoError(t, err)

	// advance 500 and return 200 inside the range, advance 999 outside it
	mkTx := func(txType ledger.TxType, amount string, date string) {
		day, _ := time.Parse("2006-01-02", date)
		_, err := txRepo.Create(ctx, ledger.Transaction{
			EmployeeID: emp.ID,
			Type:       txType,
			Amount:     d(amount),
			TxnDate:    day,
		})
		require.NoError(t, err)
	}
	mkTx(ledger.TxTypeAdvance, "500", "2026-08-10")
	mkTx(ledger.TxTypeReturn, "-200", "2026-08-20")
	mkTx(ledger.TxTypeAdvance, "999", "2026-07-01")

	t.Run("uses employee rates and ledger advances", func(t *testing.T) {
		s, err := svc.ForEmployee(ctx, emp.ID, ForEmployeeRequest{
			DateStart: "2026-08-01",
			DateEnd:   "2026-08-31",
			Rows:      []ActivityRow{{FwdCount: 100, RvpCount: 10}},
		})
		require.NoError(t, err)

		// gross = 100*13 + 10*10 = 1400, tds = 14, advances = 500 - 200 = 300
		assert.True(t, s.GrossAmount.Equal(d("1400")), "gross = %s", s.GrossAmount)
		assert.True(t, s.TDSAmount.Equal(d("14")), "tds = %s", s.TDSAmount)
		assert.True(t, s.TotalAdvance.Equal(d("300")), "advance = %s", s.TotalAdvance)
		assert.True(t, s.FinalAmount.Equal(d("1086")), "final = %s", s.FinalAmount)
	})

	t.Run("ignores row-level advance figures", func(t *testing.T) {
		s, err := svc.ForEmployee(ctx, emp.ID, ForEmployeeRequest{
			DateStart: "2026-08-01",
			DateEnd:   "2026-08-31",
			Rows:      []ActivityRow{{FwdCount: 100, AdvanceAmount: d("9999")}},
		})
		require.NoError(t, err)
		assert.True(t, s.TotalAdvance.Equal(d("300")))
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.ForEmployee(ctx, "missing", ForEmployeeRequest{
			DateStart: "2026-08-01",
			DateEnd:   "2026-08-31",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := svc.ForEmployee(ctx, emp.ID, ForEmployeeRequest{DateStart: "not-a-date", DateEnd: "2026-08-31"})
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
	})
}
