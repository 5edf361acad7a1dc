package testutil

import (
	"testing"
	"time"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, role, pwd string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, enrollmentNumber, class string,
) student.Student {
	now := time.Now().UTC()
	stu := student.Student{
		Name:             name,
		EnrollmentNumber: enrollmentNumber,
		Class:            class,
		Shift:            student.ShiftMorning,
		Status:           student.StatusActive,
		DateOfJoining:    now.Format(core.DateFormat),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stu, err := repo.CreateStudent(stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func CreateBook(
	t *testing.T,
	repo library.Repository,
	title, author, isbn string,
	copies int,
) library.Book {
	b := library.Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	b, err := repo.CreateBook(b)
	if err != nil {
		t.Fatalf("CreateBook() failed: %v", err)
	}
	return b
}
