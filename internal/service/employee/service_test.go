package employee

import (
	"context"
	"testing"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
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

func newService() (Service, *memory.EmployeeRepository, *memory.TransactionRepository) {
	employeeRepo := memory.NewEmployeeRepository()
	txRepo := memory.NewTransactionRepository()
	return NewService(employeeRepo, txRepo, memory.NewTxRunner()), employeeRepo, txRepo
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:         "Ravi",
		Address:      "Jaipur",
		SalaryDate:   15,
		SalaryAmount: d("12000"),
		PerFwd:       d("13"),
		PerRvp:       d("10"),
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("starts with zero balance and active account", func(t *testing.T) {
		svc, _, _ := newService()

		resp, err := svc.CreateEmployee(ctx, validCreate())
		require.NoError(t, err)

		assert.True(t, resp.TotalAdvance.IsZero())
		assert.True(t, resp.IsAccountActive)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("rejects out-of-range salary day", func(t *testing.T) {
		svc, _, _ := newService()

		req := validCreate()
		req.SalaryDate = 31
		_, err := svc.CreateEmployee(ctx, req)

		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Contains(t, vErrs.ToMap(), "salary_date")
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _ := newService()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	// balance moves only through the ledger; a profile edit keeps it
	require.NoError(t, employeeRepo.IncrementTotalAdvance(ctx, created.ID, d("300")))

	newAmount := d("15000")
	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:           created.ID,
		SalaryAmount: &newAmount,
	})
	require.NoError(t, err)

	assert.True(t, resp.SalaryAmount.Equal(newAmount))
	assert.True(t, resp.TotalAdvance.Equal(d("300")))
	assert.Equal(t, "Ravi", resp.Name)
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (Service, *memory.TransactionRepository, string) {
		svc, _, txRepo := newService()
		created, err := svc.CreateEmployee(ctx, validCreate())
		require.NoError(t, err)

		_, err = txRepo.Create(ctx, ledger.Transaction{
			EmployeeID: created.ID, Type: ledger.TxTypeAdvance, Amount: d("100"),
			TxnDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return svc, txRepo, created.ID
	}

	t.Run("plain delete leaves transactions", func(t *testing.T) {
		svc, txRepo, id := seed(t)

		require.NoError(t, svc.DeleteEmployee(ctx, id, false))

		_, err := svc.GetEmployee(ctx, id)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.Equal(t, 1, txRepo.Count())
	})

	t.Run("cascade delete removes transactions", func(t *testing.T) {
		svc, txRepo, id := seed(t)

		require.NoError(t, svc.DeleteEmployee(ctx, id, true))
		assert.Equal(t, 0, txRepo.Count())
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, _ := newService()
		err := svc.DeleteEmployee(ctx, "missing", false)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
