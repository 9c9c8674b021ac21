package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Admin   []gin.HandlerFunc
}

func NewDashboardModule(h *handlers.DashboardHandler, admin []gin.HandlerFunc) *DashboardModule {
	return &DashboardModule{Handler: h, Admin: admin}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/dashboard", m.Admin...)
	admin.GET("/stats", m.Handler.Stats)
}
