package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

type studentTable struct {
	mu   sync.RWMutex
	rows []*student.Student
	seq  int
}

type studentRepository struct {
	tbl *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{tbl: db.students}
}

// enrollmentTakenLocked scans for a duplicate enrollment number; the
// caller must hold at least a read lock.
func (repo *studentRepository) enrollmentTakenLocked(enrollmentNumber string, excluded []student.Student) bool {
	for _, row := range repo.tbl.rows {
		if row.EnrollmentNumber != enrollmentNumber {
			continue
		}
		if !studentExcluded(*row, excluded) {
			return true
		}
	}
	return false
}

func studentExcluded(stu student.Student, excluded []student.Student) bool {
	for _, ex := range excluded {
		if ex.ID == stu.ID {
			return true
		}
	}
	return false
}

func (repo *studentRepository) CheckEnrollmentUniqueness(enrollmentNumber string, excludedStudents ...student.Student) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.enrollmentTakenLocked(enrollmentNumber, excludedStudents) {
		return student.ErrEnrollmentExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(stu student.Student) (student.Student, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	// re-check under the write lock; the service-level check and this
	// append must not race
	if repo.enrollmentTakenLocked(stu.EnrollmentNumber, nil) {
		return student.Student{}, student.ErrEnrollmentExists
	}

	repo.tbl.seq++
	stu.ID = nextID(studentIDPrefix, repo.tbl.seq)
	repo.tbl.rows = append(repo.tbl.rows, &stu)
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	students := make([]student.Student, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		students = append(students, *row)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByEnrollmentNumber(enrollmentNumber string) (student.Student, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.EnrollmentNumber == enrollmentNumber {
			return *row, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	students := make([]student.Student, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			students = append(students, *row)
		}
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(stu student.Student, lockerAssigned *bool) (student.Student, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	var orig *student.Student
	for _, row := range repo.tbl.rows {
		if row.ID == stu.ID {
			orig = row
			break
		}
	}
	if orig == nil {
		return student.Student{}, student.ErrNotFound
	}
	if stu.EnrollmentNumber != "" && stu.EnrollmentNumber != orig.EnrollmentNumber {
		if repo.enrollmentTakenLocked(stu.EnrollmentNumber, []student.Student{*orig}) {
			return student.Student{}, student.ErrEnrollmentExists
		}
	}

	// only save set fields; the ID never changes
	if stu.Name != "" {
		orig.Name = stu.Name
	}
	if stu.EnrollmentNumber != "" {
		orig.EnrollmentNumber = stu.EnrollmentNumber
	}
	if stu.Class != "" {
		orig.Class = stu.Class
	}
	if stu.Batch != "" {
		orig.Batch = stu.Batch
	}
	if stu.Shift != "" {
		orig.Shift = stu.Shift
	}
	if stu.Phone != "" {
		orig.Phone = stu.Phone
	}
	if stu.GuardianPhone != "" {
		orig.GuardianPhone = stu.GuardianPhone
	}
	if stu.Email != "" {
		orig.Email = stu.Email
	}
	if stu.Status != "" {
		orig.Status = stu.Status
	}
	if stu.DateOfExit != "" {
		orig.DateOfExit = stu.DateOfExit
	}
	if stu.SeatNumber != "" {
		orig.SeatNumber = stu.SeatNumber
	}
	if lockerAssigned != nil {
		orig.LockerAssigned = *lockerAssigned
	}
	if !stu.UpdatedAt.IsZero() {
		orig.UpdatedAt = stu.UpdatedAt
	}
	return *orig, nil
}

func (repo *studentRepository) SetStudentSeat(id, seatNumber string) (student.Student, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			row.SeatNumber = seatNumber
			return *row, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) DeleteStudent(id string) (student.Student, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}
