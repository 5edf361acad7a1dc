package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type userTable struct {
	mu   sync.RWMutex
	rows []*user.User
	seq  int
}

type userRepository struct {
	tbl *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{tbl: db.users}
}

func (repo *userRepository) emailTakenLocked(email string, excluded []user.User) bool {
	for _, row := range repo.tbl.rows {
		if row.Email != email {
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

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if repo.emailTakenLocked(email, excludedUsers) {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if repo.emailTakenLocked(usr.Email, nil) {
		return user.User{}, user.ErrEmailExists
	}

	repo.tbl.seq++
	usr.ID = nextID(userIDPrefix, repo.tbl.seq)
	repo.tbl.rows = append(repo.tbl.rows, &usr)
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	users := make([]user.User, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		users = append(users, *row)
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.Email == email {
			return *row, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) FilterUsers(filter user.QueryFilter) ([]user.User, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	users := make([]user.User, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			users = append(users, *row)
		}
	}
	return users, nil
}

func (repo *userRepository) UpdateUser(usr user.User, isActive *bool) (user.User, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	var orig *user.User
	for _, row := range repo.tbl.rows {
		if row.ID == usr.ID {
			orig = row
			break
		}
	}
	if orig == nil {
		return user.User{}, user.ErrNotFound
	}
	if usr.Email != "" && usr.Email != orig.Email {
		if repo.emailTakenLocked(usr.Email, []user.User{*orig}) {
			return user.User{}, user.ErrEmailExists
		}
		orig.Email = usr.Email
	}

	// only save set fields; the ID never changes
	if usr.Name != "" {
		orig.Name = usr.Name
	}
	if usr.Role != "" {
		orig.Role = usr.Role
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if isActive != nil {
		orig.SetActive(*isActive)
	}
	if !usr.LastLogin.IsZero() {
		orig.LastLogin = usr.LastLogin
	}
	if !usr.UpdatedAt.IsZero() {
		orig.UpdatedAt = usr.UpdatedAt
	}
	return *orig, nil
}

func (repo *userRepository) DeleteUser(id string) (user.User, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
