package student

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

// Shifts
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Student struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	EnrollmentNumber string    `json:"enrollmentNumber" db:"enrollment_number"`
	Class            string    `json:"class" db:"class"`
	Batch            string    `json:"batch" db:"batch"`
	Shift            string    `json:"shift" db:"shift"`
	Phone            string    `json:"phone" db:"phone"`
	GuardianPhone    string    `json:"guardianPhone" db:"guardian_phone"`
	Email            string    `json:"email,omitempty" db:"email"`
	Status           string    `json:"status" db:"status"`
	DateOfJoining    string    `json:"dateOfJoining" db:"date_of_joining"`
	DateOfExit       string    `json:"dateOfExit,omitempty" db:"date_of_exit"`
	SeatNumber       string    `json:"seatNumber,omitempty" db:"seat_number"`
	LockerAssigned   bool      `json:"lockerAssigned" db:"locker_assigned"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	Name             string `json:"name" validate:"required"`
	EnrollmentNumber string `json:"enrollmentNumber" validate:"required"`
	Class            string `json:"class" validate:"required"`
	Batch            string `json:"batch"`
	Shift            string `json:"shift" validate:"omitempty,oneof=morning evening"`
	Phone            string `json:"phone"`
	GuardianPhone    string `json:"guardianPhone"`
	Email            string `json:"email" validate:"omitempty,email"`
	Status           string `json:"status" validate:"omitempty,oneof=active inactive"`
	DateOfJoining    string `json:"dateOfJoining" validate:"omitempty,dateonly"`
	SeatNumber       string `json:"seatNumber"`
	LockerAssigned   bool   `json:"lockerAssigned"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.EnrollmentNumber = core.CleanString(ns.EnrollmentNumber)
	ns.Class = core.CleanString(ns.Class)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.EnrollmentNumber)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Empty fields are left untouched; the ID itself is
// immutable no matter what the caller supplies.
type UpdateStudent struct {
	Name             string `json:"name"`
	EnrollmentNumber string `json:"enrollmentNumber"`
	Class            string `json:"class"`
	Batch            string `json:"batch"`
	Shift            string `json:"shift" validate:"omitempty,oneof=morning evening"`
	Phone            string `json:"phone"`
	GuardianPhone    string `json:"guardianPhone"`
	Email            string `json:"email" validate:"omitempty,email"`
	Status           string `json:"status" validate:"omitempty,oneof=active inactive"`
	DateOfExit       string `json:"dateOfExit" validate:"omitempty,dateonly"`
	SeatNumber       string `json:"seatNumber"`
	LockerAssigned   *bool  `json:"lockerAssigned"`
}

func (us *UpdateStudent) Validate(origStu Student, validate *validator.Validate, svc *Service) error {
	us.Name = core.CleanString(us.Name)
	us.EnrollmentNumber = core.CleanString(us.EnrollmentNumber)
	us.Email = core.CleanString(us.Email, true /* lower */)

	if err := validate.Struct(us); err != nil {
		return err
	}
	if us.EnrollmentNumber != "" && us.EnrollmentNumber != origStu.EnrollmentNumber {
		return svc.CheckUniqueness(us.EnrollmentNumber, origStu)
	}
	return nil
}

type QueryFilter struct {
	Search string `query:"search"`
	Class  string `query:"class"`
	Shift  string `query:"shift"`
	Status string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Class == "" && qf.Shift == "" && qf.Status == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match reports whether a Student satisfies every set filter field.
// Search does a case-insensitive substring match on Name,
// EnrollmentNumber or Class; the other fields match exactly.
func (qf *QueryFilter) Match(s Student) bool {
	if qf.Search != "" {
		search := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(s.Name), search) ||
			strings.Contains(strings.ToLower(s.EnrollmentNumber), search) ||
			strings.Contains(strings.ToLower(s.Class), search)) {
			return false
		}
	}
	if qf.Class != "" && s.Class != qf.Class {
		return false
	}
	if qf.Shift != "" && s.Shift != qf.Shift {
		return false
	}
	if qf.Status != "" && s.Status != qf.Status {
		return false
	}
	return true
}
