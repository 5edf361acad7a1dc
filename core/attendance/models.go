package attendance

import (
	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

type Attendance struct {
	ID             string `json:"id" db:"id"`
	StudentID      string `json:"studentId" db:"student_id"`
	Date           string `json:"date" db:"date"` // calendar day, YYYY-MM-DD
	MorningPresent bool   `json:"morningPresent" db:"morning_present"`
	EveningPresent bool   `json:"eveningPresent" db:"evening_present"`
}

// StudentInfo is the slice of the student record that attendance reads
// care about. It is joined from the live student collection at read
// time; nothing is embedded at write time, so it cannot go stale.
type StudentInfo struct {
	Name             string `json:"name"`
	EnrollmentNumber string `json:"enrollmentNumber"`
	Class            string `json:"class"`
	Shift            string `json:"shift"`
}

// Entry is an Attendance record with its read-time student join.
type Entry struct {
	Attendance
	Student *StudentInfo `json:"student,omitempty"`
}

func newStudentInfo(stu student.Student) *StudentInfo {
	return &StudentInfo{
		Name:             stu.Name,
		EnrollmentNumber: stu.EnrollmentNumber,
		Class:            stu.Class,
		Shift:            stu.Shift,
	}
}

// NewAttendance contains information needed to mark attendance for one
// student on one calendar day.
type NewAttendance struct {
	StudentID      string `json:"studentId" validate:"required"`
	Date           string `json:"date" validate:"required,dateonly"`
	MorningPresent bool   `json:"morningPresent"`
	EveningPresent bool   `json:"eveningPresent"`
}

func (na *NewAttendance) Validate(validate *validator.Validate, svc *Service) error {
	na.StudentID = core.CleanString(na.StudentID)
	na.Date = core.CleanString(na.Date)

	if err := validate.Struct(na); err != nil {
		return err
	}
	if _, err := svc.students.GetByID(na.StudentID); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "studentId", Error: "unknown student"})
	}
	return svc.CheckUniqueness(na.StudentID, na.Date)
}

// UpdateAttendance toggles the two presence flags; nil leaves a flag
// untouched.
type UpdateAttendance struct {
	MorningPresent *bool `json:"morningPresent"`
	EveningPresent *bool `json:"eveningPresent"`
}

type QueryFilter struct {
	StudentID string `query:"studentId"`
	Date      string `query:"date"`
	DateFrom  string `query:"dateFrom"`
	DateTo    string `query:"dateTo"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.Date == "" && qf.DateFrom == "" && qf.DateTo == ""
}

// Match reports whether a record satisfies every set filter field.
// Date bounds are inclusive; ISO dates compare correctly as strings.
func (qf *QueryFilter) Match(a Attendance) bool {
	if qf.StudentID != "" && a.StudentID != qf.StudentID {
		return false
	}
	if qf.Date != "" && a.Date != qf.Date {
		return false
	}
	if qf.DateFrom != "" && a.Date < qf.DateFrom {
		return false
	}
	if qf.DateTo != "" && a.Date > qf.DateTo {
		return false
	}
	return true
}
