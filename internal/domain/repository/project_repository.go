package repository

import "github.com/oksasatya/portfolio-cms/internal/domain/entity"

// ProjectRepository stores projects in insertion order.
// Update and Delete return apperr.ErrNotFound for unknown ids.
type ProjectRepository interface {
	List() ([]entity.Project, error)
	GetByID(id string) (*entity.Project, error)
	Create(p *entity.Project) error
	Update(id string, fn func(*entity.Project) error) (*entity.Project, error)
	Delete(id string) error
}
