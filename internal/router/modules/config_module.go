package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type ConfigModule struct {
	Handler *handlers.ConfigHandler
	Admin   []gin.HandlerFunc
}

func NewConfigModule(h *handlers.ConfigHandler, admin []gin.HandlerFunc) *ConfigModule {
	return &ConfigModule{Handler: h, Admin: admin}
}

func (m *ConfigModule) Register(rg *gin.RouterGroup) {
	rg.GET("/config", m.Handler.Get)

	admin := rg.Group("/admin/config", m.Admin...)
	{
		admin.PUT("/homepage", m.Handler.UpdateHomePage)
		admin.POST("/homepage/hero-background", m.Handler.UploadHomeHero)
		admin.DELETE("/homepage/hero-background", m.Handler.ClearHomeHero)
		admin.POST("/portfolio/hero-background", m.Handler.UploadPortfolioHero)
		admin.DELETE("/portfolio/hero-background", m.Handler.ClearPortfolioHero)

		admin.PUT("/social", m.Handler.ReplaceSocial)
		admin.POST("/social", m.Handler.AddSocial)
		admin.PUT("/social/:id", m.Handler.UpdateSocial)
		admin.DELETE("/social/:id", m.Handler.DeleteSocial)
	}
}
