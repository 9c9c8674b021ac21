package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type UploadModule struct {
	Handler *handlers.UploadHandler
	Admin   []gin.HandlerFunc
}

func NewUploadModule(h *handlers.UploadHandler, admin []gin.HandlerFunc) *UploadModule {
	return &UploadModule{Handler: h, Admin: admin}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rg.GET("/cv/download", m.Handler.DownloadCV)

	admin := rg.Group("/admin", m.Admin...)
	{
		admin.POST("/upload", m.Handler.Upload)
		admin.POST("/cv/upload", m.Handler.UploadCV)
		admin.DELETE("/cv", m.Handler.DeleteCV)
	}
}
