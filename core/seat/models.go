package seat

import (
	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

// Statuses
const (
	StatusAvailable = "available"
	StatusOccupied  = "occupied"
	StatusDisabled  = "disabled"
)

// Seat is one physical study seat, identified within the institute by
// its (room, section, seatNumber) composite.
type Seat struct {
	ID         string `json:"id" db:"id"`
	Room       string `json:"room" db:"room"`
	Section    string `json:"section,omitempty" db:"section"`
	SeatNumber string `json:"seatNumber" db:"seat_number"`
	Status     string `json:"status" db:"status"`
	StudentID  string `json:"studentId,omitempty" db:"student_id"`
	HasLocker  bool   `json:"hasLocker" db:"has_locker"`
}

// Label is the human-facing seat reference recorded on the occupying
// student, e.g. "R1/A-12".
func (s Seat) Label() string {
	if s.Section == "" {
		return s.Room + "-" + s.SeatNumber
	}
	return s.Room + "/" + s.Section + "-" + s.SeatNumber
}

type NewSeat struct {
	Room       string `json:"room" validate:"required"`
	Section    string `json:"section"`
	SeatNumber string `json:"seatNumber" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=available occupied disabled"`
	HasLocker  bool   `json:"hasLocker"`
}

func (ns *NewSeat) Validate(validate *validator.Validate, svc *Service) error {
	ns.Room = core.CleanString(ns.Room)
	ns.Section = core.CleanString(ns.Section)
	ns.SeatNumber = core.CleanString(ns.SeatNumber)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.repo.CheckSeatUniqueness(ns.Room, ns.Section, ns.SeatNumber)
}

type UpdateSeat struct {
	Status    string `json:"status" validate:"omitempty,oneof=available occupied disabled"`
	HasLocker *bool  `json:"hasLocker"`
}

func (us *UpdateSeat) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}

type QueryFilter struct {
	Room   string `query:"room"`
	Status string `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Room == "" && qf.Status == ""
}

func (qf *QueryFilter) Match(s Seat) bool {
	if qf.Room != "" && s.Room != qf.Room {
		return false
	}
	if qf.Status != "" && s.Status != qf.Status {
		return false
	}
	return true
}
