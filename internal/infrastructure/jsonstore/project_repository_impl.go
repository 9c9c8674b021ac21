package jsonstore

import (
	"slices"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/domain/repository"
)

type ProjectRepository struct {
	projects *Collection[[]entity.Project]
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{
		projects: NewCollection(s, CollectionProjects, func() []entity.Project { return []entity.Project{} }),
	}
}

func (r *ProjectRepository) List() ([]entity.Project, error) {
	return r.projects.Load()
}

func (r *ProjectRepository) GetByID(id string) (*entity.Project, error) {
	projects, err := r.projects.Load()
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(projects, func(p entity.Project) bool { return p.ID == id })
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	p := projects[i]
	return &p, nil
}

func (r *ProjectRepository) Create(p *entity.Project) error {
	_, err := r.projects.Update(func(projects *[]entity.Project) error {
		*projects = append(*projects, *p)
		return nil
	})
	return err
}

func (r *ProjectRepository) Update(id string, fn func(*entity.Project) error) (*entity.Project, error) {
	var out entity.Project
	_, err := r.projects.Update(func(projects *[]entity.Project) error {
		i := slices.IndexFunc(*projects, func(p entity.Project) bool { return p.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		if err := fn(&(*projects)[i]); err != nil {
			return err
		}
		out = (*projects)[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the first entry with the given id.
func (r *ProjectRepository) Delete(id string) error {
	_, err := r.projects.Update(func(projects *[]entity.Project) error {
		i := slices.IndexFunc(*projects, func(p entity.Project) bool { return p.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		*projects = slices.Delete(*projects, i, i+1)
		return nil
	})
	return err
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
