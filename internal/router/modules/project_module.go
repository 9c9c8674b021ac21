package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Admin   []gin.HandlerFunc
}

func NewProjectModule(h *handlers.ProjectHandler, admin []gin.HandlerFunc) *ProjectModule {
	return &ProjectModule{Handler: h, Admin: admin}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", m.Handler.ListPublic)
	rg.GET("/projects/:id", m.Handler.GetPublic)

	admin := rg.Group("/admin/projects", m.Admin...)
	{
		admin.GET("", m.Handler.List)
		admin.POST("", m.Handler.Create)
		admin.GET("/:id", m.Handler.Get)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
