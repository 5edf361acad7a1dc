package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
)

type seatTable struct {
	mu   sync.RWMutex
	rows []*seat.Seat
	seq  int
}

type seatRepository struct {
	tbl *seatTable
}

var _ seat.Repository = (*seatRepository)(nil) // interface compliance check

func NewSeatRepository(db *DB) *seatRepository {
	return &seatRepository{tbl: db.seats}
}

func (repo *seatRepository) seatTakenLocked(room, section, seatNumber string, excluded []seat.Seat) bool {
	for _, row := range repo.tbl.rows {
		if row.Room != room || row.Section != section || row.SeatNumber != seatNumber {
			continue
		}
		var skip bool
		for _, ex := range excluded {
			if ex.ID == row.ID {
				skip = true
				break
			}
		}
		if !skip {
			return true
		}
	}
	return false
}

func (repo *seatRepository) CheckSeatUniqueness(room, section, seatNumber string, excludedSeats ...seat.Seat) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.seatTakenLocked(room, section, seatNumber, excludedSeats) {
		return seat.ErrSeatExists
	}
	return nil
}

func (repo *seatRepository) CreateSeat(s seat.Seat) (seat.Seat, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if repo.seatTakenLocked(s.Room, s.Section, s.SeatNumber, nil) {
		return seat.Seat{}, seat.ErrSeatExists
	}

	repo.tbl.seq++
	s.ID = nextID(seatIDPrefix, repo.tbl.seq)
	repo.tbl.rows = append(repo.tbl.rows, &s)
	return s, nil
}

func (repo *seatRepository) QueryAllSeats() ([]seat.Seat, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	seats := make([]seat.Seat, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		seats = append(seats, *row)
	}
	return seats, nil
}

func (repo *seatRepository) GetSeatByID(id string) (seat.Seat, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return seat.Seat{}, seat.ErrNotFound
}

func (repo *seatRepository) FilterSeats(filter seat.QueryFilter) ([]seat.Seat, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	seats := make([]seat.Seat, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			seats = append(seats, *row)
		}
	}
	return seats, nil
}

func (repo *seatRepository) UpdateSeat(id string, us seat.UpdateSeat) (seat.Seat, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID != id {
			continue
		}
		if us.Status != "" {
			row.Status = us.Status
			if row.Status != seat.StatusOccupied {
				row.StudentID = ""
			}
		}
		if us.HasLocker != nil {
			row.HasLocker = *us.HasLocker
		}
		return *row, nil
	}
	return seat.Seat{}, seat.ErrNotFound
}

func (repo *seatRepository) AssignSeat(id, studentID string) (seat.Seat, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID != id {
			continue
		}
		if row.Status != seat.StatusAvailable {
			return seat.Seat{}, seat.ErrNotAvailable
		}
		row.Status = seat.StatusOccupied
		row.StudentID = studentID
		return *row, nil
	}
	return seat.Seat{}, seat.ErrNotFound
}

func (repo *seatRepository) ReleaseSeat(id string) (seat.Seat, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.rows {
		if row.ID != id {
			continue
		}
		if row.Status != seat.StatusOccupied {
			return seat.Seat{}, seat.ErrNotOccupied
		}
		row.Status = seat.StatusAvailable
		row.StudentID = ""
		return *row, nil
	}
	return seat.Seat{}, seat.ErrNotFound
}

func (repo *seatRepository) DeleteSeat(id string) (seat.Seat, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return seat.Seat{}, seat.ErrNotFound
}
