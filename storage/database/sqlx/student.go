package sqlxrepos

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

const uniqueViolation = "23505"

// studentRepository implements student.Repository over PostgreSQL. It
// relies on the table's UNIQUE and DEFAULT clauses for enrollment
// uniqueness and ID generation, so concurrent writers are arbitrated by
// the database rather than an in-process lock.
type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckEnrollmentUniqueness(enrollmentNumber string, excludedStudents ...student.Student) error {
	query := `SELECT EXISTS (SELECT 1 FROM student WHERE enrollment_number = $1`
	args := []interface{}{enrollmentNumber}
	if len(excludedStudents) > 0 {
		ids := make([]string, 0, len(excludedStudents))
		for _, stu := range excludedStudents {
			ids = append(ids, stu.ID)
		}
		query += ` AND NOT (id = ANY($2))`
		args = append(args, pq.Array(ids))
	}
	query += `)`

	var exists bool
	if err := repo.db.Get(&exists, query, args...); err != nil {
		return err
	}
	if exists {
		return student.ErrEnrollmentExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(stu student.Student) (student.Student, error) {
	query := `
		INSERT INTO student (
			name, enrollment_number, class, batch, shift, phone, guardian_phone,
			email, status, date_of_joining, date_of_exit, seat_number, locker_assigned,
			created_at, updated_at
		)
		VALUES (
			:name, :enrollment_number, :class, :batch, :shift, :phone, :guardian_phone,
			:email, :status, :date_of_joining, :date_of_exit, :seat_number, :locker_assigned,
			:created_at, :updated_at
		)
		RETURNING *`

	rows, err := repo.db.NamedQuery(query, stu)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return student.Student{}, student.ErrEnrollmentExists
		}
		return student.Student{}, err
	}
	defer func() { _ = rows.Close() }()

	var created student.Student
	if rows.Next() {
		if err = rows.StructScan(&created); err != nil {
			return student.Student{}, err
		}
	}
	return created, rows.Err()
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.Select(&students, `SELECT * FROM student ORDER BY id`)
	return students, err
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	var stu student.Student
	err := repo.db.Get(&stu, `SELECT * FROM student WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return stu, err
}

func (repo *studentRepository) GetStudentByEnrollmentNumber(enrollmentNumber string) (student.Student, error) {
	var stu student.Student
	err := repo.db.Get(&stu, `SELECT * FROM student WHERE enrollment_number = $1`, enrollmentNumber)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return stu, err
}

func (repo *studentRepository) FilterStudents(filter student.QueryFilter) ([]student.Student, error) {
	query := `SELECT * FROM student`
	var clauses []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		p := arg("%" + strings.ToLower(filter.Search) + "%")
		clauses = append(clauses, `(lower(name) LIKE `+p+` OR lower(enrollment_number) LIKE `+p+` OR lower(class) LIKE `+p+`)`)
	}
	if filter.Class != "" {
		clauses = append(clauses, `class = `+arg(filter.Class))
	}
	if filter.Shift != "" {
		clauses = append(clauses, `shift = `+arg(filter.Shift))
	}
	if filter.Status != "" {
		clauses = append(clauses, `status = `+arg(filter.Status))
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY id`

	students := make([]student.Student, 0)
	err := repo.db.Select(&students, query, args...)
	return students, err
}

func (repo *studentRepository) UpdateStudent(stu student.Student, lockerAssigned *bool) (student.Student, error) {
	// empty fields keep their stored value; the ID never changes
	query := `
		UPDATE student SET
			name              = COALESCE(NULLIF($2, ''), name),
			enrollment_number = COALESCE(NULLIF($3, ''), enrollment_number),
			class             = COALESCE(NULLIF($4, ''), class),
			batch             = COALESCE(NULLIF($5, ''), batch),
			shift             = COALESCE(NULLIF($6, ''), shift),
			phone             = COALESCE(NULLIF($7, ''), phone),
			guardian_phone    = COALESCE(NULLIF($8, ''), guardian_phone),
			email             = COALESCE(NULLIF($9, ''), email),
			status            = COALESCE(NULLIF($10, ''), status),
			date_of_exit      = COALESCE(NULLIF($11, ''), date_of_exit),
			seat_number       = COALESCE(NULLIF($12, ''), seat_number),
			locker_assigned   = COALESCE($13, locker_assigned),
			updated_at        = $14
		WHERE id = $1
		RETURNING *`

	var updated student.Student
	err := repo.db.Get(&updated, query,
		stu.ID, stu.Name, stu.EnrollmentNumber, stu.Class, stu.Batch, stu.Shift,
		stu.Phone, stu.GuardianPhone, stu.Email, stu.Status, stu.DateOfExit,
		stu.SeatNumber, lockerAssigned, stu.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return student.Student{}, student.ErrEnrollmentExists
	}
	return updated, err
}

func (repo *studentRepository) SetStudentSeat(id, seatNumber string) (student.Student, error) {
	var updated student.Student
	err := repo.db.Get(&updated, `UPDATE student SET seat_number = $2 WHERE id = $1 RETURNING *`, id, seatNumber)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return updated, err
}

func (repo *studentRepository) DeleteStudent(id string) (student.Student, error) {
	var removed student.Student
	err := repo.db.Get(&removed, `DELETE FROM student WHERE id = $1 RETURNING *`, id)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return removed, err
}
