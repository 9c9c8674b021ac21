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

const publishDateLayout = "2006-01-02"

type BlogService struct {
	Repo   repo.BlogPostRepository
	Logger *logrus.Logger
	Now    helpers.Clock
}

func NewBlogService(r repo.BlogPostRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Repo: r, Logger: logger, Now: helpers.UTCNow}
}

type CreateBlogPostInput struct {
	Title            string
	ShortDescription string
	Content          string
	PublishDate      string
	Published        bool
	Tags             []string
	CoverImage       entity.AssetRef
	Order            int
}

func (s *BlogService) Create(in CreateBlogPostInput) (*entity.BlogPost, error) {
	if err := errors.Join(required("title", in.Title), required("content", in.Content)); err != nil {
		return nil, err
	}
	now := clockOrDefault(s.Now)()
	if in.PublishDate == "" {
		in.PublishDate = now.Format(publishDateLayout)
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	b := &entity.BlogPost{
		ID:               uuid.NewString(),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		PublishDate:      in.PublishDate,
		Published:        in.Published,
		Tags:             in.Tags,
		CoverImage:       in.CoverImage,
		Order:            in.Order,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": b.ID, "title": b.Title}).Info("blog post created")
	}
	return b, nil
}

// Update works like ProjectService.Update; replaced is the displaced cover
// image.
func (s *BlogService) Update(id string, patch entity.BlogPostPatch) (updated *entity.BlogPost, replaced entity.AssetRef, err error) {
	if err := errors.Join(requiredIfSet("title", patch.Title), requiredIfSet("content", patch.Content)); err != nil {
		return nil, "", err
	}
	now := clockOrDefault(s.Now)()
	updated, err = s.Repo.Update(id, func(b *entity.BlogPost) error {
		if patch.CoverImage != nil && *patch.CoverImage != b.CoverImage {
			replaced = b.CoverImage
		}
		patch.Apply(b)
		b.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return updated, replaced, nil
}

func (s *BlogService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("post_id", id).Info("blog post deleted")
	}
	return nil
}

func (s *BlogService) ListAll() ([]entity.BlogPost, error) {
	posts, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	sortByOrder(posts, func(b *entity.BlogPost) int { return b.Order })
	return posts, nil
}

// ListPublished returns published posts only, sorted by order.
func (s *BlogService) ListPublished() ([]entity.BlogPost, error) {
	posts, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]entity.BlogPost, 0, len(posts))
	for _, b := range posts {
		if b.Published {
			out = append(out, b)
		}
	}
	sortByOrder(out, func(b *entity.BlogPost) int { return b.Order })
	return out, nil
}

func (s *BlogService) Get(id string) (*entity.BlogPost, error) {
	return s.Repo.GetByID(id)
}

func (s *BlogService) GetPublished(id string) (*entity.BlogPost, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !b.Published {
		return nil, apperr.ErrNotFound
	}
	return b, nil
}

func (s *BlogService) Count() (int, error) {
	posts, err := s.Repo.List()
	return len(posts), err
}
