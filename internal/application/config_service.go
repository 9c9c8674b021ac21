package application

import (
	"errors"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// ConfigService mutates the site configuration singleton. Every mutation is a
// single read-modify-write under the config collection lock.
type ConfigService struct {
	Repo   repo.ConfigRepository
	Logger *logrus.Logger
	Now    helpers.Clock
}

func NewConfigService(r repo.ConfigRepository, logger *logrus.Logger) *ConfigService {
	return &ConfigService{Repo: r, Logger: logger, Now: helpers.UTCNow}
}

func (s *ConfigService) Get() (*entity.SiteConfig, error) {
	cfg, err := s.Repo.Get()
	if err != nil {
		return nil, err
	}
	sortByOrder(cfg.SocialNetworks, func(n *entity.SocialNetwork) int { return n.Order })
	return cfg, nil
}

func (s *ConfigService) UpdateHomePage(patch entity.HomePagePatch) (*entity.HomePage, error) {
	now := clockOrDefault(s.Now)()
	cfg, err := s.Repo.Update(func(c *entity.SiteConfig) error {
		patch.Apply(&c.HomePage)
		c.HomePage.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cfg.HomePage, nil
}

// SetHomeHeroBackground stores ref and returns the reference it replaced.
func (s *ConfigService) SetHomeHeroBackground(ref entity.AssetRef) (previous entity.AssetRef, err error) {
	now := clockOrDefault(s.Now)()
	_, err = s.Repo.Update(func(c *entity.SiteConfig) error {
		previous = c.HomePage.HeroBackgroundImage
		c.HomePage.HeroBackgroundImage = ref
		c.HomePage.UpdatedAt = now
		return nil
	})
	return previous, err
}

func (s *ConfigService) ClearHomeHeroBackground() (entity.AssetRef, error) {
	return s.SetHomeHeroBackground("")
}

func (s *ConfigService) SetPortfolioHeroBackground(ref entity.AssetRef) (previous entity.AssetRef, err error) {
	now := clockOrDefault(s.Now)()
	_, err = s.Repo.Update(func(c *entity.SiteConfig) error {
		previous = c.PortfolioPage.HeroBackgroundImage
		c.PortfolioPage.HeroBackgroundImage = ref
		c.PortfolioPage.UpdatedAt = &now
		return nil
	})
	return previous, err
}

func (s *ConfigService) ClearPortfolioHeroBackground() (entity.AssetRef, error) {
	return s.SetPortfolioHeroBackground("")
}

type SocialNetworkInput struct {
	ID    string
	Name  string
	URL   string
	Icon  string
	Order int
}

func (in SocialNetworkInput) validate() error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	return required("url", in.URL)
}

// AddSocialNetwork appends a new entry with a fresh id.
func (s *ConfigService) AddSocialNetwork(in SocialNetworkInput) (*entity.SocialNetwork, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	n := entity.SocialNetwork{ID: uuid.NewString(), Name: in.Name, URL: in.URL, Icon: in.Icon, Order: in.Order}
	_, err := s.Repo.Update(func(c *entity.SiteConfig) error {
		c.SocialNetworks = append(c.SocialNetworks, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *ConfigService) UpdateSocialNetwork(id string, patch entity.SocialNetworkPatch) (*entity.SocialNetwork, error) {
	if err := requiredIfSet("name", patch.Name); err != nil {
		return nil, err
	}
	if err := requiredIfSet("url", patch.URL); err != nil {
		return nil, err
	}
	var out entity.SocialNetwork
	_, err := s.Repo.Update(func(c *entity.SiteConfig) error {
		i := slices.IndexFunc(c.SocialNetworks, func(n entity.SocialNetwork) bool { return n.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		patch.Apply(&c.SocialNetworks[i])
		out = c.SocialNetworks[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSocialNetwork removes by id, not by position.
func (s *ConfigService) DeleteSocialNetwork(id string) error {
	_, err := s.Repo.Update(func(c *entity.SiteConfig) error {
		i := slices.IndexFunc(c.SocialNetworks, func(n entity.SocialNetwork) bool { return n.ID == id })
		if i < 0 {
			return apperr.ErrNotFound
		}
		c.SocialNetworks = slices.Delete(c.SocialNetworks, i, i+1)
		return nil
	})
	return err
}

// ReplaceSocialNetworks swaps the whole list. Entries without an id get one.
func (s *ConfigService) ReplaceSocialNetworks(in []SocialNetworkInput) ([]entity.SocialNetwork, error) {
	list := make([]entity.SocialNetwork, 0, len(in))
	for i, n := range in {
		if err := n.validate(); err != nil {
			var ve *apperr.ValidationError
			if errors.As(err, &ve) {
				ve.Field = "socialNetworks[" + strconv.Itoa(i) + "]." + ve.Field
			}
			return nil, err
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		list = append(list, entity.SocialNetwork{ID: n.ID, Name: n.Name, URL: n.URL, Icon: n.Icon, Order: n.Order})
	}
	cfg, err := s.Repo.Update(func(c *entity.SiteConfig) error {
		c.SocialNetworks = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cfg.SocialNetworks, nil
}
