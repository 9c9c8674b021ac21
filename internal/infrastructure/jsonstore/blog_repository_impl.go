package jsonstore

import (
	"slices"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/domain/repository"
)

type BlogPostRepository struct {
	posts *Collection[[]entity.BlogPost]
}

func NewBlogPostRepository(s *Store) *BlogPostRepository {
	return &BlogPostRepository{
		posts: NewCollection(s, CollectionBlogPosts, func() []entity.BlogPost { return []entity.BlogPost{} }),
	}
}

func (r *BlogPostRepository) List() ([]entity.BlogPost, error) {
	return r.posts.Load()
}

func (r *BlogPostRepository) GetByID(id string) (*entity.BlogPost, error) {
	posts, err := r.posts.Load()
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(posts, func(b entity.BlogPost) bool { return b.ID == id })
	if i < 0 {
		return nil, apperr.ErrNotFound
	}
	b := posts[i]
	return &b, nil
}

func (r *BlogPostRepository) Create(b *entity.BlogPost) error {
	_, err := r.posts.Update(func(posts *[]entity.BlogPost) error {
		*posts = append(*posts, *b)
		return nil
	})
	return err
}

func (r *BlogPostRepository) Update(id string, fn func(*entity.BlogPost) error) (*entity.BlogPost, error) {
	var out entity.BlogPost
	_, err := r.posts.Update(func(posts *[]entity.BlogPost) error {
		i := slices.IndexFunc(*posts, func(b entity.BlogPost) bool { return b.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		if err := fn(&(*posts)[i]); err != nil {
			return err
		}
		out = (*posts)[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the post with the given id.
func (r *BlogPostRepository) Delete(id string) error {
	_, err := r.posts.Update(func(posts *[]entity.BlogPost) error {
		i := slices.IndexFunc(*posts, func(b entity.BlogPost) bool { return b.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		*posts = slices.Delete(*posts, i, i+1)
		return nil
	})
	return err
}

var _ repository.BlogPostRepository = (*BlogPostRepository)(nil)
