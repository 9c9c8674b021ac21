package repository

import "github.com/oksasatya/portfolio-cms/internal/domain/entity"

// UserRepository defines the persistence operations for admin accounts.
type UserRepository interface {
	List() ([]entity.User, error)
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Count() (int, error)
	Create(u *entity.User) error
	// CreateIfEmpty inserts u only when no user exists yet and reports
	// whether it did, atomically with respect to other writers.
	CreateIfEmpty(u *entity.User) (bool, error)
	// Update is reserved for operator tooling; the HTTP core never edits users.
	Update(id string, fn func(*entity.User) error) (*entity.User, error)
}
