package attendance

import (
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("attendance record not found")
	ErrDuplicateEntry = core.NewConflictError("attendance already marked for this student on this date")
)

type (
	Repository interface {
		// CheckEntryUniqueness enforces at most one record per
		// (studentID, date) pair.
		CheckEntryUniqueness(studentID, date string) error
		CreateAttendance(att Attendance) (Attendance, error)
		QueryAllAttendance() ([]Attendance, error)
		GetAttendanceByID(id string) (Attendance, error)
		FilterAttendance(filter QueryFilter) ([]Attendance, error)
		UpdateAttendance(id string, morning, evening *bool) (Attendance, error)
		DeleteAttendance(id string) (Attendance, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) CheckUniqueness(studentID, date string) error {
	return svc.repo.CheckEntryUniqueness(studentID, date)
}

func (svc *Service) Mark(na NewAttendance) (Entry, error) {
	att := Attendance{
		StudentID:      na.StudentID,
		Date:           na.Date,
		MorningPresent: na.MorningPresent,
		EveningPresent: na.EveningPresent,
	}
	att, err := svc.repo.CreateAttendance(att)
	if err != nil {
		return Entry{}, err
	}
	return svc.join(att), nil
}

func (svc *Service) GetByID(id string) (Entry, error) {
	att, err := svc.repo.GetAttendanceByID(id)
	if err != nil {
		return Entry{}, err
	}
	return svc.join(att), nil
}

func (svc *Service) Filter(filter QueryFilter) ([]Entry, error) {
	records, err := svc.repo.FilterAttendance(filter)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, att := range records {
		entries = append(entries, svc.join(att))
	}
	return entries, nil
}

func (svc *Service) Update(id string, ua UpdateAttendance) (Entry, error) {
	att, err := svc.repo.UpdateAttendance(id, ua.MorningPresent, ua.EveningPresent)
	if err != nil {
		return Entry{}, err
	}
	return svc.join(att), nil
}

func (svc *Service) Delete(id string) (Entry, error) {
	att, err := svc.repo.DeleteAttendance(id)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Attendance: att}, nil
}

// join re-performs the student lookup on every read; a deleted student
// simply yields a nil Student field.
func (svc *Service) join(att Attendance) Entry {
	entry := Entry{Attendance: att}
	if stu, err := svc.students.GetByID(att.StudentID); err == nil {
		entry.Student = newStudentInfo(stu)
	}
	return entry
}
