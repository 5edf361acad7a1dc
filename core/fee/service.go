package fee

import (
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("fee payment not found")
	ErrDuplicateEntry = core.NewConflictError("a fee payment for this student and month already exists")
)

type (
	Repository interface {
		// CheckPaymentUniqueness enforces at most one record per
		// (studentID, month) pair.
		CheckPaymentUniqueness(studentID, month string) error
		CreatePayment(p Payment) (Payment, error)
		QueryAllPayments() ([]Payment, error)
		GetPaymentByID(id string) (Payment, error)
		FilterPayments(filter QueryFilter) ([]Payment, error)
		UpdatePayment(id string, up UpdatePayment) (Payment, error)
		DeletePayment(id string) (Payment, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) CheckUniqueness(studentID, month string) error {
	return svc.repo.CheckPaymentUniqueness(studentID, month)
}

func (svc *Service) Record(np NewPayment) (Payment, error) {
	p := Payment{
		StudentID: np.StudentID,
		Month:     np.Month,
		Amount:    np.Amount,
		Mode:      np.Mode,
		Status:    np.Status,
		PaidOn:    np.PaidOn,
	}

	// defaults: a recorded payment is paid today unless stated otherwise
	if p.Status == "" {
		p.Status = StatusPaid
	}
	if p.Status == StatusPaid && p.PaidOn == "" {
		p.PaidOn = core.Today()
	}

	return svc.repo.CreatePayment(p)
}

func (svc *Service) GetByID(id string) (Payment, error) {
	return svc.repo.GetPaymentByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Payment, error) {
	return svc.repo.FilterPayments(filter)
}

func (svc *Service) Update(id string, up UpdatePayment) (Payment, error) {
	return svc.repo.UpdatePayment(id, up)
}

func (svc *Service) Delete(id string) (Payment, error) {
	return svc.repo.DeletePayment(id)
}

// Summarize totals one month's paid and pending records.
func (svc *Service) Summarize(month string) (Summary, error) {
	payments, err := svc.repo.FilterPayments(QueryFilter{Month: month})
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Month: month}
	for _, p := range payments {
		switch p.Status {
		case StatusPaid:
			sum.PaidCount++
			sum.PaidAmount += p.Amount
		case StatusPending:
			sum.PendingCount++
			sum.PendingAmount += p.Amount
		}
	}
	return sum, nil
}
