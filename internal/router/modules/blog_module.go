package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type BlogModule struct {
	Handler *handlers.BlogHandler
	Admin   []gin.HandlerFunc
}

func NewBlogModule(h *handlers.BlogHandler, admin []gin.HandlerFunc) *BlogModule {
	return &BlogModule{Handler: h, Admin: admin}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/blog", m.Handler.ListPublished)
	rg.GET("/blog/:id", m.Handler.GetPublished)

	admin := rg.Group("/admin/blog", m.Admin...)
	{
		admin.GET("", m.Handler.List)
		admin.POST("", m.Handler.Create)
		admin.GET("/:id", m.Handler.Get)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
