package student

import (
	"fmt"
	"net/mail"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

var (
	// errors
	ErrNotFound         = core.NewNotFoundError("student not found")
	ErrEnrollmentExists = core.NewConflictError("a student with this enrollment number already exists")
)

type (
	Repository interface {
		CheckEnrollmentUniqueness(enrollmentNumber string, excludedStudents ...Student) error
		CreateStudent(stu Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		GetStudentByEnrollmentNumber(enrollmentNumber string) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields,
		// preserving the collection's original relative order.
		FilterStudents(filter QueryFilter) ([]Student, error)
		// UpdateStudent merges set fields onto the stored record.
		UpdateStudent(stu Student, lockerAssigned *bool) (Student, error)
		// SetStudentSeat overwrites the denormalized seat label,
		// including clearing it with "".
		SetStudentSeat(id, seatNumber string) (Student, error)
		// DeleteStudent removes the record and returns it as confirmation.
		DeleteStudent(id string) (Student, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

func (svc *Service) CheckUniqueness(enrollmentNumber string, exclStudents ...Student) error {
	if err := svc.repo.CheckEnrollmentUniqueness(enrollmentNumber, exclStudents...); err != nil {
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	now := core.NowFunc().UTC()
	stu := Student{
		Name:             ns.Name,
		EnrollmentNumber: ns.EnrollmentNumber,
		Class:            ns.Class,
		Batch:            ns.Batch,
		Shift:            ns.Shift,
		Phone:            ns.Phone,
		GuardianPhone:    ns.GuardianPhone,
		Email:            ns.Email,
		Status:           ns.Status,
		DateOfJoining:    ns.DateOfJoining,
		SeatNumber:       ns.SeatNumber,
		LockerAssigned:   ns.LockerAssigned,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// defaults
	if stu.Shift == "" {
		stu.Shift = ShiftMorning
	}
	if stu.Status == "" {
		stu.Status = StatusActive
	}
	if stu.DateOfJoining == "" {
		stu.DateOfJoining = core.Today()
	}

	stu, err := svc.repo.CreateStudent(stu)
	if err != nil {
		return Student{}, err
	}
	svc.sendWelcomeMail(stu)
	return stu, nil
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByEnrollmentNumber(enrollmentNumber string) (Student, error) {
	return svc.repo.GetStudentByEnrollmentNumber(core.CleanString(enrollmentNumber))
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(filter)
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	stu := Student{
		ID:               id,
		Name:             us.Name,
		EnrollmentNumber: us.EnrollmentNumber,
		Class:            us.Class,
		Batch:            us.Batch,
		Shift:            us.Shift,
		Phone:            us.Phone,
		GuardianPhone:    us.GuardianPhone,
		Email:            us.Email,
		Status:           us.Status,
		DateOfExit:       us.DateOfExit,
		SeatNumber:       us.SeatNumber,
		UpdatedAt:        core.NowFunc().UTC(),
	}
	return svc.repo.UpdateStudent(stu, us.LockerAssigned)
}

// SetSeat records the denormalized seat label on a student record. The
// seat collection remains the source of truth for occupancy.
func (svc *Service) SetSeat(id, seatNumber string) (Student, error) {
	return svc.repo.SetStudentSeat(id, seatNumber)
}

func (svc *Service) Delete(id string) (Student, error) {
	return svc.repo.DeleteStudent(id)
}

func (svc *Service) sendWelcomeMail(stu Student) {
	if svc.mailSvc == nil || stu.Email == "" {
		return
	}
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: stu.Name, Address: stu.Email}},
		Subject: "Welcome to " + svc.conf.AppName,
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour enrollment %s has been registered for class %s (%s shift), joining on %s.\n",
			stu.Name, stu.EnrollmentNumber, stu.Class, stu.Shift, stu.DateOfJoining,
		),
	}
	svc.mailSvc.SendMessages(msg)
}
