// Package container builds the application graph once at startup. Nothing
// here is global; main owns the Container and hands it to the router.
package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/config"
	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/storage"
	"github.com/oksasatya/portfolio-cms/pkg/assets"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

type Container struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Store    *jsonstore.Store
	Redis    *redis.Client // nil when REDIS_ADDR is empty
	Assets   storage.AssetStorage
	JWT      *helpers.JWTManager
	Resolver assets.Resolver
	Tags     application.TagParser

	Auth      *application.AuthService
	Projects  *application.ProjectService
	Blog      *application.BlogService
	SiteCfg   *application.ConfigService
	Uploads   *application.UploadService
	Dashboard *application.DashboardService
}

// New wires repositories and services on top of the given infrastructure.
func New(cfg *config.Config, logger *logrus.Logger, store *jsonstore.Store, rdb *redis.Client, files storage.AssetStorage) *Container {
	c := &Container{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Redis:  rdb,
		Assets: files,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName),
		Resolver: assets.Resolver{
			PublicURL:      cfg.PublicURL,
			Production:     cfg.IsProduction(),
			FallbackDomain: cfg.FallbackDomain,
		},
		Tags: application.TagParser{Lenient: cfg.TagsLenient, Logger: logger},
	}

	c.Auth = application.NewAuthService(jsonstore.NewUserRepository(store), c.JWT, logger)
	c.Projects = application.NewProjectService(jsonstore.NewProjectRepository(store), logger)
	c.Blog = application.NewBlogService(jsonstore.NewBlogPostRepository(store), logger)
	c.SiteCfg = application.NewConfigService(jsonstore.NewConfigRepository(store), logger)
	c.Uploads = application.NewUploadService(files, logger)
	c.Dashboard = application.NewDashboardService(c.Projects, c.Blog, c.Uploads)
	return c
}

// Bootstrap performs the first-run setup: the admin account.
func (c *Container) Bootstrap() error {
	_, err := c.Auth.EnsureBootstrapAdmin(application.BootstrapAdmin{
		Username: c.Config.AdminUsername,
		Password: c.Config.AdminPassword,
		Email:    c.Config.AdminEmail,
	})
	return err
}
