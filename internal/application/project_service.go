package application

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

type ProjectService struct {
	Repo   repo.ProjectRepository
	Logger *logrus.Logger
	Now    helpers.Clock
}

func NewProjectService(r repo.ProjectRepository, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Repo: r, Logger: logger, Now: helpers.UTCNow}
}

type CreateProjectInput struct {
	Title            string
	ShortDescription string
	LongDescription  string
	Category         string
	Tags             []string
	Thumbnail        entity.AssetRef
	Visibility       entity.Visibility
	Order            int
}

func (s *ProjectService) Create(in CreateProjectInput) (*entity.Project, error) {
	if err := errors.Join(
		required("title", in.Title),
		required("shortDescription", in.ShortDescription),
		required("longDescription", in.LongDescription),
	); err != nil {
		return nil, err
	}
	if in.Visibility == "" {
		in.Visibility = entity.VisibilityPublic
	}
	if !in.Visibility.Valid() {
		return nil, apperr.Invalid("visibility", "must be one of public, unlisted, private")
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	now := clockOrDefault(s.Now)()
	p := &entity.Project{
		ID:               uuid.NewString(),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Category:         in.Category,
		Tags:             in.Tags,
		Thumbnail:        in.Thumbnail,
		Visibility:       in.Visibility,
		Order:            in.Order,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"project_id": p.ID, "title": p.Title}).Info("project created")
	}
	return p, nil
}

// Update merges the non-nil patch fields and refreshes updatedAt. replaced is
// the thumbnail the patch displaced, read under the collection lock, or ""
// when the thumbnail did not change.
func (s *ProjectService) Update(id string, patch entity.ProjectPatch) (updated *entity.Project, replaced entity.AssetRef, err error) {
	if err := errors.Join(
		requiredIfSet("title", patch.Title),
		requiredIfSet("shortDescription", patch.ShortDescription),
		requiredIfSet("longDescription", patch.LongDescription),
	); err != nil {
		return nil, "", err
	}
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return nil, "", apperr.Invalid("visibility", "must be one of public, unlisted, private")
	}
	now := clockOrDefault(s.Now)()
	updated, err = s.Repo.Update(id, func(p *entity.Project) error {
		if patch.Thumbnail != nil && *patch.Thumbnail != p.Thumbnail {
			replaced = p.Thumbnail
		}
		patch.Apply(p)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return updated, replaced, nil
}

func (s *ProjectService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("project_id", id).Info("project deleted")
	}
	return nil
}

// ListAll is the admin view: every project, sorted by order.
func (s *ProjectService) ListAll() ([]entity.Project, error) {
	projects, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	sortByOrder(projects, func(p *entity.Project) int { return p.Order })
	return projects, nil
}

// ListPublic returns public projects only, sorted by order.
func (s *ProjectService) ListPublic() ([]entity.Project, error) {
	projects, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Project, 0, len(projects))
	for _, p := range projects {
		if p.Visibility == entity.VisibilityPublic {
			out = append(out, p)
		}
	}
	sortByOrder(out, func(p *entity.Project) int { return p.Order })
	return out, nil
}

func (s *ProjectService) Get(id string) (*entity.Project, error) {
	return s.Repo.GetByID(id)
}

// GetPublic hides private projects. Unlisted ones stay reachable by id.
func (s *ProjectService) GetPublic(id string) (*entity.Project, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p.Visibility == entity.VisibilityPrivate {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (s *ProjectService) Count() (int, error) {
	projects, err := s.Repo.List()
	return len(projects), err
}
