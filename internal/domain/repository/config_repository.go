package repository

import "github.com/oksasatya/portfolio-cms/internal/domain/entity"

// ConfigRepository holds the singleton site configuration.
type ConfigRepository interface {
	Get() (*entity.SiteConfig, error)
	// Update runs fn on the current value and persists the result; returning
	// an error from fn aborts without writing.
	Update(fn func(*entity.SiteConfig) error) (*entity.SiteConfig, error)
}
