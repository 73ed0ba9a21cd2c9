package postgresql

import (
	"context"
	"fmt"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	e.id, e.name, e.contact, e.address, e.salary_date, e.salary_amount,
	e.description, e.total_advance, e.per_fwd, e.per_rvp, e.hub_id,
	e.bank_name, e.bank_account_number, e.bank_ifsc, e.is_account_active,
	e.created_at, e.updated_at, h.hub_name
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Contact, &e.Address, &e.SalaryDate, &e.SalaryAmount,
		&e.Description, &e.TotalAdvance, &e.PerFwd, &e.PerRvp, &e.HubID,
		&e.BankName, &e.BankAccountNumber, &e.BankIFSC, &e.IsAccountActive,
		&e.CreatedAt, &e.UpdatedAt, &e.HubName,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			name, contact, address, salary_date, salary_amount, description,
			total_advance, per_fwd, per_rvp, hub_id,
			bank_name, bank_account_number, bank_ifsc, is_account_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.Name, emp.Contact, emp.Address, emp.SalaryDate, emp.SalaryAmount, emp.Description,
		emp.TotalAdvance, emp.PerFwd, emp.PerRvp, emp.HubID,
		emp.BankName, emp.BankAccountNumber, emp.BankIFSC, emp.IsAccountActive,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN hubs h ON h.id = e.hub_id
		WHERE e.id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN hubs h ON h.id = e.hub_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.HubID != "" {
		args = append(args, filter.HubID)
		query += fmt.Sprintf(" AND e.hub_id = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND e.name ILIKE $%d", len(args))
	}

	orderCol := "e.name"
	if filter.SortBy == "salary_amount" {
		orderCol = "e.salary_amount"
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderCol, direction)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			name = $1, contact = $2, address = $3, salary_date = $4,
			salary_amount = $5, description = $6, per_fwd = $7, per_rvp = $8,
			hub_id = $9, bank_name = $10, bank_account_number = $11,
			bank_ifsc = $12, is_account_active = $13, updated_at = NOW()
		WHERE id = $14
	`

	tag, err := q.Exec(ctx, query,
		emp.Name, emp.Contact, emp.Address, emp.SalaryDate,
		emp.SalaryAmount, emp.Description, emp.PerFwd, emp.PerRvp,
		emp.HubID, emp.BankName, emp.BankAccountNumber,
		emp.BankIFSC, emp.IsAccountActive, emp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// IncrementTotalAdvance adds delta to the cached balance in a single UPDATE
// so concurrent writers commute regardless of interleaving.
func (r *employeeRepository) IncrementTotalAdvance(ctx context.Context, id string, delta decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET total_advance = total_advance + $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to increment total advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) SetTotalAdvance(ctx context.Context, id string, total decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET total_advance = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, total, id)
	if err != nil {
		return fmt.Errorf("failed to set total advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
