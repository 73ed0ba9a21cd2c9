package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type Service interface {
	CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)

	// DeleteEmployee removes the employee. With cascade the employee's
	// ledger entries go too; without it they are left in place as orphans.
	DeleteEmployee(ctx context.Context, id string, cascade bool) error
}

type ServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	txRepo       ledger.TransactionRepository
	txRunner     database.TxRunner
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	txRepo ledger.TransactionRepository,
	txRunner database.TxRunner,
) Service {
	return &ServiceImpl{
		employeeRepo: employeeRepo,
		txRepo:       txRepo,
		txRunner:     txRunner,
	}
}

func (s *ServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	isActive := true
	if req.IsAccountActive != nil {
		isActive = *req.IsAccountActive
	}

	emp := employee.Employee{
		Name:              req.Name,
		Contact:           req.Contact,
		Address:           req.Address,
		SalaryDate:        req.SalaryDate,
		SalaryAmount:      req.SalaryAmount,
		Description:       req.Description,
		TotalAdvance:      decimal.Zero,
		PerFwd:            req.PerFwd,
		PerRvp:            req.PerRvp,
		HubID:             req.HubID,
		BankName:          req.BankName,
		BankAccountNumber: req.BankAccountNumber,
		BankIFSC:          req.BankIFSC,
		IsAccountActive:   isActive,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee.ToResponse(created), nil
}

func (s *ServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

func (s *ServiceImpl) ListEmployees(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employee.ToResponses(employees), nil
}

func (s *ServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Contact != nil {
		emp.Contact = *req.Contact
	}
	if req.Address != nil {
		emp.Address = *req.Address
	}
	if req.SalaryDate != nil {
		emp.SalaryDate = *req.SalaryDate
	}
	if req.SalaryAmount != nil {
		emp.SalaryAmount = *req.SalaryAmount
	}
	if req.Description != nil {
		emp.Description = req.Description
	}
	if req.PerFwd != nil {
		emp.PerFwd = *req.PerFwd
	}
	if req.PerRvp != nil {
		emp.PerRvp = *req.PerRvp
	}
	if req.HubID != nil {
		emp.HubID = req.HubID
	}
	if req.BankName != nil {
		emp.BankName = *req.BankName
	}
	if req.BankAccountNumber != nil {
		emp.BankAccountNumber = *req.BankAccountNumber
	}
	if req.BankIFSC != nil {
		emp.BankIFSC = *req.BankIFSC
	}
	if req.IsAccountActive != nil {
		emp.IsAccountActive = *req.IsAccountActive
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(updated), nil
}

func (s *ServiceImpl) DeleteEmployee(ctx context.Context, id string, cascade bool) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	// the cascade and the employee delete commit or roll back together
	return s.txRunner.RunInTx(ctx, func(ctx context.Context) error {
		if cascade {
			txs, err := s.txRepo.ListByEmployee(ctx, id, ledger.Filter{})
			if err != nil {
				return fmt.Errorf("failed to list transactions for cascade delete: %w", err)
			}
			for _, tx := range txs {
				if err := s.txRepo.Delete(ctx, tx.ID); err != nil {
					return fmt.Errorf("failed to delete transaction %s: %w", tx.ID, err)
				}
			}
			slog.Info("cascade deleted employee transactions", "employee_id", id, "count", len(txs))
		}

		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}

		return nil
	})
}
