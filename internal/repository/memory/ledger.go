package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]ledger.Transaction
	seq          int // creation order, breaks txn_date ties like insertion order does in the store

	// FailCreate simulates a store failure on insert.
	FailCreate error
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		transactions: make(map[string]ledger.Transaction),
	}
}

type salaryKey struct {
	employeeID string
	year       int
	month      int
}

func (r *TransactionRepository) salaryKeyTaken(key salaryKey, excludeID string) bool {
	for _, t := range r.transactions {
		if t.ID == excludeID || t.Type != ledger.TxTypeSalary {
			continue
		}
		if (salaryKey{t.EmployeeID, t.PeriodYear, t.PeriodMonth}) == key {
			return true
		}
	}
	return false
}

func (r *TransactionRepository) Create(_ context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate != nil {
		return ledger.Transaction{}, r.FailCreate
	}

	// same uniqueness the partial index uk_salary_period enforces; rows
	// without period columns never collide, like NULLs in the index
	if tx.Type == ledger.TxTypeSalary && tx.PeriodYear != 0 {
		if r.salaryKeyTaken(salaryKey{tx.EmployeeID, tx.PeriodYear, tx.PeriodMonth}, "") {
			return ledger.Transaction{}, ledger.ErrDuplicateSalaryEntry
		}
	}

	tx.ID = uuid.NewString()
	r.seq++
	tx.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	r.transactions[tx.ID] = tx

	return tx, nil
}

func (r *TransactionRepository) GetByID(_ context.Context, id string) (ledger.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.transactions[id]
	if !ok {
		return ledger.Transaction{}, ledger.ErrTransactionNotFound
	}
	return tx, nil
}

func (r *TransactionRepository) Update(_ context.Context, tx ledger.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.transactions[tx.ID]
	if !ok {
		return ledger.ErrTransactionNotFound
	}
	tx.EmployeeID = existing.EmployeeID
	tx.CreatedAt = existing.CreatedAt
	tx.PeriodYear = existing.PeriodYear
	tx.PeriodMonth = existing.PeriodMonth
	r.transactions[tx.ID] = tx

	return nil
}

func (r *TransactionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[id]; !ok {
		return ledger.ErrTransactionNotFound
	}
	delete(r.transactions, id)

	return nil
}

func (r *TransactionRepository) ListByEmployee(_ context.Context, employeeID string, filter ledger.Filter) ([]ledger.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txs []ledger.Transaction
	for _, t := range r.transactions {
		if t.EmployeeID != employeeID {
			continue
		}
		if !filter.Matches(t) {
			continue
		}
		txs = append(txs, t)
	}

	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].TxnDate.Equal(txs[j].TxnDate) {
			return txs[i].TxnDate.After(txs[j].TxnDate)
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

	return txs, nil
}

func (r *TransactionRepository) SalaryEntryExists(_ context.Context, employeeID string, year int, month int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.salaryKeyTaken(salaryKey{employeeID, year, month}, ""), nil
}

func (r *TransactionRepository) SumSignedAmounts(_ context.Context, employeeID string) (decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := decimal.Zero
	for _, t := range r.transactions {
		if t.EmployeeID == employeeID && ledger.AffectsBalance(t.Type) {
			sum = sum.Add(t.Amount)
		}
	}

	return sum, nil
}

// Count reports the number of stored transactions, for test assertions.
func (r *TransactionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.transactions)
}
