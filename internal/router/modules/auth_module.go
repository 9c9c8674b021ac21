package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-cms/internal/interface/http"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
	Limiter gin.HandlerFunc
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// login is throttled per IP and path
	rg.POST("/auth/login", m.Limiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
	rg.GET("/auth/me", m.Auth, m.Handler.Me)
}
