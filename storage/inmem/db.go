// Package inmem implements every domain repository over process-local
// collections. Each table guards its rows with an RWMutex and keeps
// insertion order, so uniqueness check and append happen under one
// write lock and list results preserve the collection's original
// relative order. Identifiers come from a per-table monotonic counter
// that is never rewound, not from the collection length, so a deleted
// record's sequence number is never reused.
package inmem

import "fmt"

// ID prefixes
const (
	studentIDPrefix    = "STU"
	attendanceIDPrefix = "ATT"
	feeIDPrefix        = "FEE"
	bookIDPrefix       = "BOOK"
	issueIDPrefix      = "ISS"
	seatIDPrefix       = "SEAT"
	userIDPrefix       = "USR"
)

type DB struct {
	students   *studentTable
	attendance *attendanceTable
	fees       *feeTable
	library    *libraryTable
	seats      *seatTable
	reports    *reportTable
	users      *userTable
}

func NewDB() *DB {
	return &DB{
		students:   new(studentTable),
		attendance: new(attendanceTable),
		fees:       new(feeTable),
		library:    new(libraryTable),
		seats:      new(seatTable),
		reports:    new(reportTable),
		users:      new(userTable),
	}
}

func nextID(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}
