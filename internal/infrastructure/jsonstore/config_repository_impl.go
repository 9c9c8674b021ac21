package jsonstore

import (
	"time"

	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/domain/repository"
)

type ConfigRepository struct {
	config *Collection[entity.SiteConfig]
}

func NewConfigRepository(s *Store) *ConfigRepository {
	return &ConfigRepository{
		config: NewCollection(s, CollectionConfig, func() entity.SiteConfig {
			return entity.DefaultSiteConfig(time.Now().UTC())
		}),
	}
}

func (r *ConfigRepository) Get() (*entity.SiteConfig, error) {
	c, err := r.config.Load()
	if err != nil {
		return nil, err
	}
	if c.SocialNetworks == nil {
		c.SocialNetworks = []entity.SocialNetwork{}
	}
	return &c, nil
}

func (r *ConfigRepository) Update(fn func(*entity.SiteConfig) error) (*entity.SiteConfig, error) {
	c, err := r.config.Update(fn)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ repository.ConfigRepository = (*ConfigRepository)(nil)
