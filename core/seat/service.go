package seat

import (
	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("seat not found")
	ErrSeatExists   = core.NewConflictError("a seat with this room, section and number already exists")
	ErrNotAvailable = core.NewConflictError("seat is not available")
	ErrNotOccupied  = core.NewConflictError("seat is not occupied")
)

type (
	Repository interface {
		CheckSeatUniqueness(room, section, seatNumber string, excludedSeats ...Seat) error
		CreateSeat(s Seat) (Seat, error)
		QueryAllSeats() ([]Seat, error)
		GetSeatByID(id string) (Seat, error)
		FilterSeats(filter QueryFilter) ([]Seat, error)
		UpdateSeat(id string, us UpdateSeat) (Seat, error)
		// AssignSeat transitions available -> occupied atomically.
		AssignSeat(id, studentID string) (Seat, error)
		// ReleaseSeat transitions occupied -> available atomically.
		ReleaseSeat(id string) (Seat, error)
		DeleteSeat(id string) (Seat, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
	}
)

func NewService(repo Repository, students *student.Service) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Create(ns NewSeat) (Seat, error) {
	s := Seat{
		Room:       ns.Room,
		Section:    ns.Section,
		SeatNumber: ns.SeatNumber,
		Status:     ns.Status,
		HasLocker:  ns.HasLocker,
	}
	if s.Status == "" {
		s.Status = StatusAvailable
	}
	return svc.repo.CreateSeat(s)
}

func (svc *Service) GetByID(id string) (Seat, error) {
	return svc.repo.GetSeatByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Seat, error) {
	return svc.repo.FilterSeats(filter)
}

func (svc *Service) Update(id string, us UpdateSeat) (Seat, error) {
	return svc.repo.UpdateSeat(id, us)
}

func (svc *Service) Delete(id string) (Seat, error) {
	return svc.repo.DeleteSeat(id)
}

// Assign seats a student. The seat collection owns occupancy; the seat
// label written onto the student record is a denormalized copy.
func (svc *Service) Assign(id, studentID string) (Seat, error) {
	stu, err := svc.students.GetByID(studentID)
	if err != nil {
		return Seat{}, err
	}
	if !stu.IsActive() {
		return Seat{}, core.NewValidationError(nil,
			core.FieldError{Field: "studentId", Error: "student is not active"})
	}

	s, err := svc.repo.AssignSeat(id, studentID)
	if err != nil {
		return Seat{}, err
	}
	if _, err := svc.students.SetSeat(studentID, s.Label()); err != nil {
		return Seat{}, err
	}
	return s, nil
}

func (svc *Service) Release(id string) (Seat, error) {
	s, err := svc.repo.GetSeatByID(id)
	if err != nil {
		return Seat{}, err
	}
	occupant := s.StudentID

	s, err = svc.repo.ReleaseSeat(id)
	if err != nil {
		return Seat{}, err
	}
	if occupant != "" {
		// a deleted student is fine; the seat is the source of truth
		if _, err := svc.students.SetSeat(occupant, ""); err != nil && !core.IsNotFound(err) {
			return Seat{}, err
		}
	}
	return s, nil
}
