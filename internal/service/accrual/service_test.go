package accrual

import (
	"context"
	"testing"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/esyhub/staffpay-backend/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fixture struct {
	svc          Service
	employeeRepo *memory.EmployeeRepository
	txRepo       *memory.TransactionRepository
}

func newFixture() *fixture {
	employeeRepo := memory.NewEmployeeRepository()
	txRepo := memory.NewTransactionRepository()
	return &fixture{
		svc:          NewService(txRepo, employeeRepo, feed.NewHub()),
		employeeRepo: employeeRepo,
		txRepo:       txRepo,
	}
}

func (f *fixture) addEmployee(t *testing.T, name string, salaryDay int, salaryAmount string) employee.Employee {
	t.Helper()
	emp, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		Name:         name,
		SalaryDate:   salaryDay,
		SalaryAmount: d(salaryAmount),
	})
	require.NoError(t, err)
	return emp
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestEnsureMonthlyEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("accrues once the salary day is reached", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		// day before: nothing due
		result, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 14))
		require.NoError(t, err)
		assert.Equal(t, 0, result.Inserted)
		assert.Equal(t, 1, result.Skipped)

		// on the day: entry appears, dated to the salary day
		result, err = f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 15))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, ledger.TxTypeSalary, txs[0].Type)
		assert.True(t, txs[0].Amount.Equal(d("12000")))
		assert.True(t, txs[0].TxnDate.Equal(day(2026, time.August, 15)))
		assert.False(t, txs[0].Paid)
		assert.Equal(t, 2026, txs[0].PeriodYear)
		assert.Equal(t, 8, txs[0].PeriodMonth)
	})

	t.Run("late sweep still dates entry to the salary day", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 1, "9000")

		_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 28))
		require.NoError(t, err)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.True(t, txs[0].TxnDate.Equal(day(2026, time.August, 1)))
	})

	t.Run("idempotent across repeated sweeps", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		for i := 0; i < 5; i++ {
			_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 20))
			require.NoError(t, err)
		}

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})

	t.Run("new month accrues a new entry", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 15))
		require.NoError(t, err)
		_, err = f.svc.EnsureMonthlyEntries(ctx, day(2026, time.September, 15))
		require.NoError(t, err)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("never touches the advance balance", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 15))
		require.NoError(t, err)

		got, err := f.employeeRepo.GetByID(ctx, emp.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalAdvance.IsZero())
	})

	t.Run("one failing employee does not abort the sweep", func(t *testing.T) {
		f := newFixture()
		f.addEmployee(t, "Anil", 10, "8000")
		f.addEmployee(t, "Ravi", 10, "12000")

		// force the store down for one sweep, then verify the next sweep
		// catches both employees up
		f.txRepo.FailCreate = assert.AnError
		result, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 10))
		require.Error(t, err)
		assert.Equal(t, 2, result.Failed)

		// the result names the affected employees, not just a count
		require.Len(t, result.Failures, 2)
		names := []string{result.Failures[0].EmployeeName, result.Failures[1].EmployeeName}
		assert.ElementsMatch(t, []string{"Anil", "Ravi"}, names)
		for _, failure := range result.Failures {
			assert.NotEmpty(t, failure.EmployeeID)
			assert.Contains(t, failure.Error, assert.AnError.Error())
		}

		f.txRepo.FailCreate = nil
		result, err = f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 10))
		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
	})
}

func TestMarkSalaryPaid(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, ledger.Transaction) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 15))
		require.NoError(t, err)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		return f, txs[0]
	}

	t.Run("marks paid with split amounts", func(t *testing.T) {
		f, salary := setup(t)
		payDate := "2026-08-16"
		cash, bank := d("2000"), d("10000")

		resp, err := f.svc.MarkSalaryPaid(ctx, salary.ID, ledger.MarkPaidRequest{
			Paid: true, ActualPayDate: &payDate, CashAmount: &cash, BankAmount: &bank,
		})
		require.NoError(t, err)

		require.NotNil(t, resp.Paid)
		assert.True(t, *resp.Paid)
		require.NotNil(t, resp.ActualPayDate)
		assert.Equal(t, payDate, *resp.ActualPayDate)
		assert.True(t, resp.CashAmount.Equal(cash))
		assert.True(t, resp.BankAmount.Equal(bank))
	})

	t.Run("unmarking clears payment details", func(t *testing.T) {
		f, salary := setup(t)
		payDate := "2026-08-16"
		cash := d("12000")

		_, err := f.svc.MarkSalaryPaid(ctx, salary.ID, ledger.MarkPaidRequest{
			Paid: true, ActualPayDate: &payDate, CashAmount: &cash,
		})
		require.NoError(t, err)

		resp, err := f.svc.MarkSalaryPaid(ctx, salary.ID, ledger.MarkPaidRequest{Paid: false})
		require.NoError(t, err)

		require.NotNil(t, resp.Paid)
		assert.False(t, *resp.Paid)
		assert.Nil(t, resp.ActualPayDate)
		assert.Nil(t, resp.CashAmount)
		assert.Nil(t, resp.BankAmount)
	})

	t.Run("rejects non-salary transactions", func(t *testing.T) {
		f, _ := setup(t)
		emp := f.addEmployee(t, "Anil", 15, "8000")
		advance, err := f.txRepo.Create(ctx, ledger.Transaction{
			EmployeeID: emp.ID, Type: ledger.TxTypeAdvance, Amount: d("100"),
			TxnDate: day(2026, time.August, 10),
		})
		require.NoError(t, err)

		_, err = f.svc.MarkSalaryPaid(ctx, advance.ID, ledger.MarkPaidRequest{Paid: true})
		assert.ErrorIs(t, err, ledger.ErrNotSalaryTransaction)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f, _ := setup(t)
		_, err := f.svc.MarkSalaryPaid(ctx, "missing", ledger.MarkPaidRequest{Paid: true})
		assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
	})
}

func TestReconcileDuplicates(t *testing.T) {
	ctx := context.Background()

	t.Run("no duplicates is a no-op", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		_, err := f.svc.EnsureMonthlyEntries(ctx, day(2026, time.August, 15))
		require.NoError(t, err)
		_, err = f.svc.EnsureMonthlyEntries(ctx, day(2026, time.September, 15))
		require.NoError(t, err)

		removed, err := f.svc.ReconcileDuplicates(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		assert.Len(t, txs, 2)
	})

	t.Run("keeps the earliest created per period", func(t *testing.T) {
		f := newFixture()
		emp := f.addEmployee(t, "Ravi", 15, "12000")

		// entries predating the uniqueness key carry no period columns, so
		// duplicates share the zero period
		mkLegacy := func() ledger.Transaction {
			tx, err := f.txRepo.Create(ctx, ledger.Transaction{
				EmployeeID: emp.ID, Type: ledger.TxTypeSalary, Amount: d("12000"),
				TxnDate: day(2026, time.August, 15),
			})
			require.NoError(t, err)
			return tx
		}
		first := mkLegacy()
		mkLegacy()
		mkLegacy()

		removed, err := f.svc.ReconcileDuplicates(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		txs, err := f.txRepo.ListByEmployee(ctx, emp.ID, ledger.Filter{})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, first.ID, txs[0].ID)
	})
}
