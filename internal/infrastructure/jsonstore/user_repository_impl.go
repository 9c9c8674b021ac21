package jsonstore

import (
	"errors"
	"fmt"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/domain/repository"
)

type UserRepository struct {
	users *Collection[[]entity.User]
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{
		users: NewCollection(s, CollectionUsers, func() []entity.User { return []entity.User{} }),
	}
}

func (r *UserRepository) List() ([]entity.User, error) {
	return r.users.Load()
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	users, err := r.users.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// GetByUsername matches exactly; no case folding.
func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	users, err := r.users.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *UserRepository) Count() (int, error) {
	users, err := r.users.Load()
	return len(users), err
}

func (r *UserRepository) Create(u *entity.User) error {
	_, err := r.users.Update(func(users *[]entity.User) error {
		for _, existing := range *users {
			if existing.Username == u.Username {
				return apperr.Invalid("username", fmt.Sprintf("%q already exists", u.Username))
			}
		}
		*users = append(*users, *u)
		return nil
	})
	return err
}

func (r *UserRepository) CreateIfEmpty(u *entity.User) (bool, error) {
	created := false
	_, err := r.users.Update(func(users *[]entity.User) error {
		if len(*users) > 0 {
			return errSkipWrite
		}
		*users = append(*users, *u)
		created = true
		return nil
	})
	if errors.Is(err, errSkipWrite) {
		return false, nil
	}
	return created, err
}

func (r *UserRepository) Update(id string, fn func(*entity.User) error) (*entity.User, error) {
	var out *entity.User
	_, err := r.users.Update(func(users *[]entity.User) error {
		for i := range *users {
			if (*users)[i].ID == id {
				if err := fn(&(*users)[i]); err != nil {
					return err
				}
				u := (*users)[i]
				out = &u
				return nil
			}
		}
		return apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
