package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
)

type feeTable struct {
	mu   sync.RWMutex
	rows []*fee.Payment
	seq  int
}

type feeRepository struct {
	tbl *feeTable
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) *feeRepository {
	return &feeRepository{tbl: db.fees}
}

func (repo *feeRepository) paymentExistsLocked(studentID, month string) bool {
	for _, row := range repo.tbl.rows {
		if row.StudentID == studentID && row.Month == month {
			return true
		}
	}
	return false
}

func (repo *feeRepository) CheckPaymentUniqueness(studentID, month string) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.paymentExistsLocked(studentID, month) {
		return fee.ErrDuplicateEntry
	}
	return nil
}

func (repo *feeRepository) CreatePayment(p fee.Payment) (fee.Payment, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if repo.paymentExistsLocked(p.StudentID, p.Month) {
		return fee.Payment{}, fee.ErrDuplicateEntry
	}

	repo.tbl.seq++
	p.ID = nextID(feeIDPrefix, repo.tbl.seq)
	repo.tbl.rows = append(repo.tbl.rows, &p)
	return p, nil
}

func (repo *feeRepository) QueryAllPayments() ([]fee.Payment, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	payments := make([]fee.Payment, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		payments = append(payments, *row)
	}
	return payments, nil
}

func (repo *feeRepository) GetPaymentByID(id string) (fee.Payment, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return fee.Payment{}, fee.ErrNotFound
}

func (repo *feeRepository) FilterPayments(filter fee.QueryFilter) ([]fee.Payment, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	payments := make([]fee.Payment, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			payments = append(payments, *row)
		}
	}
	return payments, nil
}

func (repo *feeRepository) UpdatePayment(id string, up fee.UpdatePayment) (fee.Payment, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID != id {
			continue
		}
		if up.Amount != nil {
			row.Amount = *up.Amount
		}
		if up.Mode != "" {
			row.Mode = up.Mode
		}
		if up.Status != "" {
			row.Status = up.Status
		}
		if up.PaidOn != "" {
			row.PaidOn = up.PaidOn
		}
		return *row, nil
	}
	return fee.Payment{}, fee.ErrNotFound
}

func (repo *feeRepository) DeletePayment(id string) (fee.Payment, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return fee.Payment{}, fee.ErrNotFound
}
