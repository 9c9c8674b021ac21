package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-cms/internal/container"
	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
	"github.com/oksasatya/portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/portfolio-cms/internal/router/modules"
)

// InitModules builds handlers from the container and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) error {
	cfg := c.Config
	// client IPs feed the login limiter; forwarding headers only count from
	// configured proxies
	if err := r.Engine.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	admin := []gin.HandlerFunc{middleware.Auth(c.Auth), middleware.RequireAdmin()}

	var allow middleware.AllowFunc
	if cfg.RateLimitSkipPrivate {
		allow = middleware.AllowPrivateIP()
	}

	r.Use(middleware.RealIP())
	if cfg.DebugMetricsEnabled {
		r.Use(middleware.Metrics())
	}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(cfg.Env)))
	r.Add(&modules.AuthModule{
		Handler: handlers.NewAuthHandler(c.Auth, c.Logger, cfg.CookieDomain, cfg.CookieSecure),
		Auth:    middleware.Auth(c.Auth),
		Limiter: middleware.RateLimit(c.Redis, cfg.LoginRateLimit, cfg.LoginRateWindow, middleware.KeyByIPAndPath(), allow),
	})
	r.Add(modules.NewProjectModule(
		handlers.NewProjectHandler(c.Projects, c.Uploads, c.Tags, c.Resolver, c.Logger), admin))
	r.Add(modules.NewBlogModule(
		handlers.NewBlogHandler(c.Blog, c.Uploads, c.Tags, c.Resolver, c.Logger), admin))
	r.Add(modules.NewConfigModule(
		handlers.NewConfigHandler(c.SiteCfg, c.Uploads, c.Resolver, c.Logger), admin))
	r.Add(modules.NewUploadModule(
		handlers.NewUploadHandler(c.Uploads, c.Resolver, c.Logger, cfg.CVDownloadName), admin))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(c.Dashboard, c.Logger), admin))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(middleware.RateLimit(c.Redis, 120, time.Minute, middleware.KeyByIP(), nil)))
	}
	return nil
}
