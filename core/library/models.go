package library

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

// Issue statuses. Status is derived from the issue's dates and is never
// stored: returned when ReturnDate is set, overdue once DueDate has
// passed, issued otherwise.
const (
	StatusIssued   = "issued"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

type Book struct {
	ID              string `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	ISBN            string `json:"isbn" db:"isbn"`
	Edition         string `json:"edition,omitempty" db:"edition"`
	Publisher       string `json:"publisher,omitempty" db:"publisher"`
	Category        string `json:"category,omitempty" db:"category"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type NewBook struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	ISBN        string `json:"isbn" validate:"required"`
	Edition     string `json:"edition"`
	Publisher   string `json:"publisher"`
	Category    string `json:"category"`
	TotalCopies int    `json:"totalCopies" validate:"omitempty,gt=0"`
}

func (nb *NewBook) Validate(validate *validator.Validate, svc *Service) error {
	nb.Title = core.CleanString(nb.Title)
	nb.Author = core.CleanString(nb.Author)
	nb.ISBN = core.CleanString(nb.ISBN)

	if err := validate.Struct(nb); err != nil {
		return err
	}
	return svc.repo.CheckISBNUniqueness(nb.ISBN)
}

type UpdateBook struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Edition     string `json:"edition"`
	Publisher   string `json:"publisher"`
	Category    string `json:"category"`
	TotalCopies *int   `json:"totalCopies" validate:"omitempty,gt=0"`
}

func (ub *UpdateBook) Validate(validate *validator.Validate) error {
	ub.Title = core.CleanString(ub.Title)
	ub.Author = core.CleanString(ub.Author)
	return validate.Struct(ub)
}

type BookQueryFilter struct {
	Search   string `query:"search"`
	Category string `query:"category"`
}

func (qf *BookQueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == ""
}

func (qf *BookQueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Match does a case-insensitive substring search on Title, Author or
// ISBN and an exact match on Category.
func (qf *BookQueryFilter) Match(b Book) bool {
	if qf.Search != "" {
		search := strings.ToLower(qf.Search)
		if !(strings.Contains(strings.ToLower(b.Title), search) ||
			strings.Contains(strings.ToLower(b.Author), search) ||
			strings.Contains(strings.ToLower(b.ISBN), search)) {
			return false
		}
	}
	if qf.Category != "" && b.Category != qf.Category {
		return false
	}
	return true
}

type Issue struct {
	ID         string `json:"id" db:"id"`
	BookID     string `json:"bookId" db:"book_id"`
	StudentID  string `json:"studentId" db:"student_id"`
	IssueDate  string `json:"issueDate" db:"issue_date"`
	DueDate    string `json:"dueDate" db:"due_date"`
	ReturnDate string `json:"returnDate,omitempty" db:"return_date"`
	// Derived on every read; repositories do not persist it.
	Status string `json:"status" db:"-"`
}

// deriveStatus computes the issue status as of `now`.
func (i Issue) deriveStatus(now time.Time) string {
	if i.ReturnDate != "" {
		return StatusReturned
	}
	if i.DueDate != "" && i.DueDate < now.UTC().Format(core.DateFormat) {
		return StatusOverdue
	}
	return StatusIssued
}

type NewIssue struct {
	BookID    string `json:"bookId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	IssueDate string `json:"issueDate" validate:"omitempty,dateonly"`
	DueDate   string `json:"dueDate" validate:"omitempty,dateonly"`
}

func (ni *NewIssue) Validate(validate *validator.Validate, svc *Service) error {
	ni.BookID = core.CleanString(ni.BookID)
	ni.StudentID = core.CleanString(ni.StudentID)

	if err := validate.Struct(ni); err != nil {
		return err
	}
	if _, err := svc.students.GetByID(ni.StudentID); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "studentId", Error: "unknown student"})
	}
	return nil
}

type IssueQueryFilter struct {
	BookID    string `query:"bookId"`
	StudentID string `query:"studentId"`
	Status    string `query:"status"`
}

func (qf *IssueQueryFilter) IsEmpty() bool {
	return qf.BookID == "" && qf.StudentID == "" && qf.Status == ""
}

// Match checks the stored fields; Status is matched against the derived
// value, so callers must derive before filtering on it.
func (qf *IssueQueryFilter) Match(i Issue) bool {
	if qf.BookID != "" && i.BookID != qf.BookID {
		return false
	}
	if qf.StudentID != "" && i.StudentID != qf.StudentID {
		return false
	}
	if qf.Status != "" && i.Status != qf.Status {
		return false
	}
	return true
}
