package repository

import "github.com/oksasatya/portfolio-cms/internal/domain/entity"

type BlogPostRepository interface {
	List() ([]entity.BlogPost, error)
	GetByID(id string) (*entity.BlogPost, error)
	Create(b *entity.BlogPost) error
	Update(id string, fn func(*entity.BlogPost) error) (*entity.BlogPost, error)
	Delete(id string) error
}
