package library

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
)

// issues default to a two-week loan when no due date is supplied
const defaultLoanDays = 14

var (
	// errors
	ErrBookNotFound    = core.NewNotFoundError("book not found")
	ErrIssueNotFound   = core.NewNotFoundError("book issue not found")
	ErrISBNExists      = core.NewConflictError("a book with this ISBN already exists")
	ErrNoCopies        = core.NewConflictError("no copies of this book are available")
	ErrAlreadyReturned = core.NewConflictError("this issue has already been returned")
	ErrCopiesExceeded  = core.NewConflictError("available copies cannot exceed total copies")
)

type (
	Repository interface {
		CheckISBNUniqueness(isbn string, excludedBooks ...Book) error
		CreateBook(b Book) (Book, error)
		QueryAllBooks() ([]Book, error)
		GetBookByID(id string) (Book, error)
		FilterBooks(filter BookQueryFilter) ([]Book, error)
		// UpdateBook merges set fields; growing TotalCopies grows
		// AvailableCopies by the same amount, shrinking below the
		// number of outstanding copies is a conflict.
		UpdateBook(id string, ub UpdateBook) (Book, error)
		DeleteBook(id string) (Book, error)

		// CreateIssue atomically checks availability, decrements the
		// book's AvailableCopies and appends the issue record.
		CreateIssue(i Issue) (Issue, error)
		// ReturnIssue atomically sets ReturnDate and increments the
		// book's AvailableCopies.
		ReturnIssue(id, returnDate string) (Issue, error)
		QueryAllIssues() ([]Issue, error)
		GetIssueByID(id string) (Issue, error)
		// FilterIssues matches the stored fields only; status is
		// derived and filtered by the service.
		FilterIssues(filter IssueQueryFilter) ([]Issue, error)
	}

	Service struct {
		repo     Repository
		students *student.Service
		mailSvc  core.EmailService
		conf     *core.Config
	}
)

func NewService(repo Repository, students *student.Service, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, students: students, mailSvc: mailSvc, conf: conf}
}

// Books

func (svc *Service) CreateBook(nb NewBook) (Book, error) {
	b := Book{
		Title:       nb.Title,
		Author:      nb.Author,
		ISBN:        nb.ISBN,
		Edition:     nb.Edition,
		Publisher:   nb.Publisher,
		Category:    nb.Category,
		TotalCopies: nb.TotalCopies,
	}
	if b.TotalCopies == 0 {
		b.TotalCopies = 1
	}
	b.AvailableCopies = b.TotalCopies
	return svc.repo.CreateBook(b)
}

func (svc *Service) GetBookByID(id string) (Book, error) {
	return svc.repo.GetBookByID(id)
}

func (svc *Service) FilterBooks(filter BookQueryFilter) ([]Book, error) {
	return svc.repo.FilterBooks(filter)
}

func (svc *Service) UpdateBook(id string, ub UpdateBook) (Book, error) {
	return svc.repo.UpdateBook(id, ub)
}

func (svc *Service) DeleteBook(id string) (Book, error) {
	return svc.repo.DeleteBook(id)
}

// Issues

func (svc *Service) IssueBook(ni NewIssue) (Issue, error) {
	issueDate := ni.IssueDate
	if issueDate == "" {
		issueDate = core.Today()
	}
	dueDate := ni.DueDate
	if dueDate == "" {
		day, _ := time.Parse(core.DateFormat, issueDate) // validated upstream
		dueDate = day.AddDate(0, 0, defaultLoanDays).Format(core.DateFormat)
	}

	i := Issue{
		BookID:    ni.BookID,
		StudentID: ni.StudentID,
		IssueDate: issueDate,
		DueDate:   dueDate,
	}
	i, err := svc.repo.CreateIssue(i)
	if err != nil {
		return Issue{}, err
	}
	i.Status = i.deriveStatus(core.NowFunc())
	return i, nil
}

func (svc *Service) ReturnBook(id string) (Issue, error) {
	i, err := svc.repo.ReturnIssue(id, core.Today())
	if err != nil {
		return Issue{}, err
	}
	i.Status = i.deriveStatus(core.NowFunc())
	return i, nil
}

func (svc *Service) GetIssueByID(id string) (Issue, error) {
	i, err := svc.repo.GetIssueByID(id)
	if err != nil {
		return Issue{}, err
	}
	i.Status = i.deriveStatus(core.NowFunc())
	return i, nil
}

func (svc *Service) FilterIssues(filter IssueQueryFilter) ([]Issue, error) {
	stored := filter
	stored.Status = "" // derived below, not stored
	issues, err := svc.repo.FilterIssues(stored)
	if err != nil {
		return nil, err
	}

	now := core.NowFunc()
	result := make([]Issue, 0, len(issues))
	for _, i := range issues {
		i.Status = i.deriveStatus(now)
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		result = append(result, i)
	}
	return result, nil
}

// NotifyOverdue emails every student holding an overdue issue and
// returns the issues a notice was sent for.
func (svc *Service) NotifyOverdue() ([]Issue, error) {
	overdue, err := svc.FilterIssues(IssueQueryFilter{Status: StatusOverdue})
	if err != nil {
		return nil, err
	}

	notified := make([]Issue, 0, len(overdue))
	messages := make([]*core.EmailMessage, 0, len(overdue))
	for _, i := range overdue {
		stu, err := svc.students.GetByID(i.StudentID)
		if err != nil || stu.Email == "" {
			continue
		}
		book, err := svc.repo.GetBookByID(i.BookID)
		if err != nil {
			continue
		}
		messages = append(messages, &core.EmailMessage{
			To:      []mail.Address{{Name: stu.Name, Address: stu.Email}},
			Subject: "Overdue book: " + book.Title,
			Body: fmt.Sprintf(
				"Hi %s,\n\n%q by %s was due on %s. Please return it to the library.\n",
				stu.Name, book.Title, book.Author, i.DueDate,
			),
		})
		notified = append(notified, i)
	}
	if svc.mailSvc != nil && len(messages) > 0 {
		svc.mailSvc.SendMessages(messages...)
	}
	return notified, nil
}
