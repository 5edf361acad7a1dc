package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/library"
)

// libraryTable holds books and issues under a single mutex: issuing and
// returning mutate an issue row and its book's copy count atomically.
type libraryTable struct {
	mu       sync.RWMutex
	books    []*library.Book
	issues   []*library.Issue
	bookSeq  int
	issueSeq int
}

type libraryRepository struct {
	tbl *libraryTable
}

var _ library.Repository = (*libraryRepository)(nil) // interface compliance check

func NewLibraryRepository(db *DB) *libraryRepository {
	return &libraryRepository{tbl: db.library}
}

// Books

func (repo *libraryRepository) isbnTakenLocked(isbn string, excluded []library.Book) bool {
	for _, row := range repo.tbl.books {
		if row.ISBN != isbn {
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

func (repo *libraryRepository) getBookLocked(id string) *library.Book {
	for _, row := range repo.tbl.books {
		if row.ID == id {
			return row
		}
	}
	return nil
}

func (repo *libraryRepository) CheckISBNUniqueness(isbn string, excludedBooks ...library.Book) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.isbnTakenLocked(isbn, excludedBooks) {
		return library.ErrISBNExists
	}
	return nil
}

func (repo *libraryRepository) CreateBook(b library.Book) (library.Book, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if repo.isbnTakenLocked(b.ISBN, nil) {
		return library.Book{}, library.ErrISBNExists
	}

	repo.tbl.bookSeq++
	b.ID = nextID(bookIDPrefix, repo.tbl.bookSeq)
	repo.tbl.books = append(repo.tbl.books, &b)
	return b, nil
}

func (repo *libraryRepository) QueryAllBooks() ([]library.Book, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	books := make([]library.Book, 0, len(repo.tbl.books))
	for _, row := range repo.tbl.books {
		books = append(books, *row)
	}
	return books, nil
}

func (repo *libraryRepository) GetBookByID(id string) (library.Book, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if row := repo.getBookLocked(id); row != nil {
		return *row, nil
	}
	return library.Book{}, library.ErrBookNotFound
}

func (repo *libraryRepository) FilterBooks(filter library.BookQueryFilter) ([]library.Book, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	books := make([]library.Book, 0, len(repo.tbl.books))
	for _, row := range repo.tbl.books {
		if filter.Match(*row) {
			books = append(books, *row)
		}
	}
	return books, nil
}

func (repo *libraryRepository) UpdateBook(id string, ub library.UpdateBook) (library.Book, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	row := repo.getBookLocked(id)
	if row == nil {
		return library.Book{}, library.ErrBookNotFound
	}

	if ub.Title != "" {
		row.Title = ub.Title
	}
	if ub.Author != "" {
		row.Author = ub.Author
	}
	if ub.Edition != "" {
		row.Edition = ub.Edition
	}
	if ub.Publisher != "" {
		row.Publisher = ub.Publisher
	}
	if ub.Category != "" {
		row.Category = ub.Category
	}
	if ub.TotalCopies != nil {
		outstanding := row.TotalCopies - row.AvailableCopies
		if *ub.TotalCopies < outstanding {
			return library.Book{}, library.ErrCopiesExceeded
		}
		row.AvailableCopies = *ub.TotalCopies - outstanding
		row.TotalCopies = *ub.TotalCopies
	}
	return *row, nil
}

func (repo *libraryRepository) DeleteBook(id string) (library.Book, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.books {
		if row.ID == id {
			removed := *row
			repo.tbl.books = append(repo.tbl.books[:i], repo.tbl.books[i+1:]...)
			return removed, nil
		}
	}
	return library.Book{}, library.ErrBookNotFound
}

// Issues

func (repo *libraryRepository) CreateIssue(i library.Issue) (library.Issue, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	book := repo.getBookLocked(i.BookID)
	if book == nil {
		return library.Issue{}, library.ErrBookNotFound
	}
	if book.AvailableCopies <= 0 {
		return library.Issue{}, library.ErrNoCopies
	}
	book.AvailableCopies--

	repo.tbl.issueSeq++
	i.ID = nextID(issueIDPrefix, repo.tbl.issueSeq)
	repo.tbl.issues = append(repo.tbl.issues, &i)
	return i, nil
}

func (repo *libraryRepository) ReturnIssue(id, returnDate string) (library.Issue, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for _, row := range repo.tbl.issues {
		if row.ID != id {
			continue
		}
		if row.ReturnDate != "" {
			return library.Issue{}, library.ErrAlreadyReturned
		}
		row.ReturnDate = returnDate
		if book := repo.getBookLocked(row.BookID); book != nil && book.AvailableCopies < book.TotalCopies {
			book.AvailableCopies++
		}
		return *row, nil
	}
	return library.Issue{}, library.ErrIssueNotFound
}

func (repo *libraryRepository) QueryAllIssues() ([]library.Issue, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	issues := make([]library.Issue, 0, len(repo.tbl.issues))
	for _, row := range repo.tbl.issues {
		issues = append(issues, *row)
	}
	return issues, nil
}

func (repo *libraryRepository) GetIssueByID(id string) (library.Issue, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.issues {
		if row.ID == id {
			return *row, nil
		}
	}
	return library.Issue{}, library.ErrIssueNotFound
}

func (repo *libraryRepository) FilterIssues(filter library.IssueQueryFilter) ([]library.Issue, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	issues := make([]library.Issue, 0, len(repo.tbl.issues))
	for _, row := range repo.tbl.issues {
		if filter.Match(*row) {
			issues = append(issues, *row)
		}
	}
	return issues, nil
}
