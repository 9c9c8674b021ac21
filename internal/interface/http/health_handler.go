package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-cms/pkg/response"
)

type HealthHandler struct {
	Env string
}

func NewHealthHandler(env string) *HealthHandler { return &HealthHandler{Env: env} }

// Health GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":    "ok",
		"env":       h.Env,
		"timestamp": time.Now().UTC(),
	})
}
