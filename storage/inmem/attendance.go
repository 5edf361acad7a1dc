package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
)

type attendanceTable struct {
	mu   sync.RWMutex
	rows []*attendance.Attendance
	seq  int
}

type attendanceRepository struct {
	tbl *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{tbl: db.attendance}
}

func (repo *attendanceRepository) entryExistsLocked(studentID, date string) bool {
	for _, row := range repo.tbl.rows {
		if row.StudentID == studentID && row.Date == date {
			return true
		}
	}
	return false
}

func (repo *attendanceRepository) CheckEntryUniqueness(studentID, date string) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.entryExistsLocked(studentID, date) {
		return attendance.ErrDuplicateEntry
	}
	return nil
}

func (repo *attendanceRepository) CreateAttendance(att attendance.Attendance) (attendance.Attendance, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	// check-then-append under one lock
	if repo.entryExistsLocked(att.StudentID, att.Date) {
		return attendance.Attendance{}, attendance.ErrDuplicateEntry
	}

	repo.tbl.seq++
	att.ID = nextID(attendanceIDPrefix, repo.tbl.seq)
	repo.tbl.rows = append(repo.tbl.rows, &att)
	return att, nil
}

func (repo *attendanceRepository) QueryAllAttendance() ([]attendance.Attendance, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	records := make([]attendance.Attendance, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		records = append(records, *row)
	}
	return records, nil
}

func (repo *attendanceRepository) GetAttendanceByID(id string) (attendance.Attendance, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) FilterAttendance(filter attendance.QueryFilter) ([]attendance.Attendance, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	records := make([]attendance.Attendance, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			records = append(records, *row)
		}
	}
	return records, nil
}

func (repo *attendanceRepository) UpdateAttendance(id string, morning, evening *bool) (attendance.Attendance, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID != id {
			continue
		}
		if morning != nil {
			row.MorningPresent = *morning
		}
		if evening != nil {
			row.EveningPresent = *evening
		}
		return *row, nil
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) DeleteAttendance(id string) (attendance.Attendance, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}
