// Package memory provides in-memory repository implementations. They back
// the service tests and double as a reference for the store contract the
// postgresql implementations must honor.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee

	// FailIncrementFor simulates a store failure on the balance increment
	// for the named employee, to exercise the consistency-window path.
	FailIncrementFor string
	FailIncrementErr error
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		employees: make(map[string]employee.Employee),
	}
}

func (r *EmployeeRepository) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp.ID = uuid.NewString()
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.employees[emp.ID] = emp

	return emp, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) List(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []employee.Employee
	for _, emp := range r.employees {
		if filter.HubID != "" && (emp.HubID == nil || *emp.HubID != filter.HubID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(emp.Name), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, emp)
	}

	sort.Slice(result, func(i, j int) bool {
		var less bool
		if filter.SortBy == "salary_amount" {
			less = result[i].SalaryAmount.LessThan(result[j].SalaryAmount)
		} else {
			less = result[i].Name < result[j].Name
		}
		if filter.Desc {
			return !less
		}
		return less
	})

	return result, nil
}

func (r *EmployeeRepository) Update(_ context.Context, emp employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.employees[emp.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	// total_advance moves only through increments and the recompute repair
	emp.TotalAdvance = existing.TotalAdvance
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = time.Now()
	r.employees[emp.ID] = emp

	return nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)

	return nil
}

func (r *EmployeeRepository) IncrementTotalAdvance(_ context.Context, id string, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailIncrementFor == id && r.FailIncrementErr != nil {
		return r.FailIncrementErr
	}

	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.TotalAdvance = emp.TotalAdvance.Add(delta)
	emp.UpdatedAt = time.Now()
	r.employees[id] = emp

	return nil
}

func (r *EmployeeRepository) SetTotalAdvance(_ context.Context, id string, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.TotalAdvance = total
	emp.UpdatedAt = time.Now()
	r.employees[id] = emp

	return nil
}
