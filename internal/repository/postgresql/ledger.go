package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type transactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) ledger.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `
	id, employee_id, type, amount, txn_date, created_at,
	paid, actual_pay_date, cash_amount, bank_amount, period_year, period_month
`

func scanTransaction(row pgx.Row) (ledger.Transaction, error) {
	var t ledger.Transaction
	var paid *bool
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.Type, &t.Amount, &t.TxnDate, &t.CreatedAt,
		&paid, &t.ActualPayDate, &t.CashAmount, &t.BankAmount, &t.PeriodYear, &t.PeriodMonth,
	)
	if paid != nil {
		t.Paid = *paid
	}
	return t, err
}

func (r *transactionRepository) Create(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO transactions (
			employee_id, type, amount, txn_date,
			paid, actual_pay_date, cash_amount, bank_amount, period_year, period_month
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		tx.EmployeeID, tx.Type, tx.Amount, tx.TxnDate,
		tx.Paid, tx.ActualPayDate, tx.CashAmount, tx.BankAmount, tx.PeriodYear, tx.PeriodMonth,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		// uk_salary_period: partial unique index on
		// (employee_id, period_year, period_month) WHERE type = 'Salary'.
		if strings.Contains(err.Error(), "uk_salary_period") {
			return ledger.Transaction{}, ledger.ErrDuplicateSalaryEntry
		}
		return ledger.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ledger.Transaction{}, ledger.ErrTransactionNotFound
		}
		return ledger.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx ledger.Transaction) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE transactions SET
			type = $1, amount = $2, txn_date = $3,
			paid = $4, actual_pay_date = $5, cash_amount = $6, bank_amount = $7
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, query,
		tx.Type, tx.Amount, tx.TxnDate,
		tx.Paid, tx.ActualPayDate, tx.CashAmount, tx.BankAmount, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrTransactionNotFound
	}

	return nil
}

func (r *transactionRepository) ListByEmployee(ctx context.Context, employeeID string, filter ledger.Filter) ([]ledger.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE employee_id = $1`
	args := []interface{}{employeeID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.DateStart != nil {
		args = append(args, *filter.DateStart)
		query += fmt.Sprintf(" AND txn_date >= $%d", len(args))
	}
	if filter.DateEnd != nil {
		args = append(args, *filter.DateEnd)
		query += fmt.Sprintf(" AND txn_date <= $%d", len(args))
	}

	query += " ORDER BY txn_date DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}

	return txs, rows.Err()
}

func (r *transactionRepository) SalaryEntryExists(ctx context.Context, employeeID string, year int, month int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE employee_id = $1 AND type = $2 AND period_year = $3 AND period_month = $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, ledger.TxTypeSalary, year, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary entry: %w", err)
	}

	return exists, nil
}

func (r *transactionRepository) SumSignedAmounts(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE employee_id = $1 AND type IN ($2, $3)
	`

	var sum decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, ledger.TxTypeAdvance, ledger.TxTypeReturn).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return sum, nil
}
