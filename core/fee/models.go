package fee

import (
	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

// Payment modes
const (
	ModeCash = "cash"
	ModeUPI  = "upi"
	ModeCard = "card"
)

// Payment statuses
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Payment is one student's fee record for one month.
type Payment struct {
	ID        string `json:"id" db:"id"`
	StudentID string `json:"studentId" db:"student_id"`
	Month     string `json:"month" db:"month"` // YYYY-MM
	Amount    int    `json:"amount" db:"amount"`
	Mode      string `json:"mode,omitempty" db:"mode"`
	Status    string `json:"status" db:"status"`
	PaidOn    string `json:"paidOn,omitempty" db:"paid_on"`
}

type NewPayment struct {
	StudentID string `json:"studentId" validate:"required"`
	Month     string `json:"month" validate:"required,yearmonth"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
	Mode      string `json:"mode" validate:"omitempty,oneof=cash upi card"`
	Status    string `json:"status" validate:"omitempty,oneof=paid pending"`
	PaidOn    string `json:"paidOn" validate:"omitempty,dateonly"`
}

func (np *NewPayment) Validate(validate *validator.Validate, svc *Service) error {
	np.StudentID = core.CleanString(np.StudentID)
	np.Month = core.CleanString(np.Month)

	if err := validate.Struct(np); err != nil {
		return err
	}
	if _, err := svc.students.GetByID(np.StudentID); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "studentId", Error: "unknown student"})
	}
	return svc.CheckUniqueness(np.StudentID, np.Month)
}

type UpdatePayment struct {
	Amount *int   `json:"amount" validate:"omitempty,gt=0"`
	Mode   string `json:"mode" validate:"omitempty,oneof=cash upi card"`
	Status string `json:"status" validate:"omitempty,oneof=paid pending"`
	PaidOn string `json:"paidOn" validate:"omitempty,dateonly"`
}

func (up *UpdatePayment) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

type QueryFilter struct {
	StudentID string `query:"studentId"`
	Month     string `query:"month"`
	Status    string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.Month == "" && qf.Status == ""
}

func (qf *QueryFilter) Match(p Payment) bool {
	if qf.StudentID != "" && p.StudentID != qf.StudentID {
		return false
	}
	if qf.Month != "" && p.Month != qf.Month {
		return false
	}
	if qf.Status != "" && p.Status != qf.Status {
		return false
	}
	return true
}

// Summary aggregates one month's collections.
type Summary struct {
	Month         string `json:"month"`
	PaidCount     int    `json:"paidCount"`
	PendingCount  int    `json:"pendingCount"`
	PaidAmount    int    `json:"paidAmount"`
	PendingAmount int    `json:"pendingAmount"`
}
