package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Stats GET /api/admin/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	loginAt := time.Now()
	if claims := middleware.ClaimsFrom(c); claims != nil && claims.IssuedAt != nil {
		loginAt = claims.IssuedAt.Time
	}
	stats, err := h.Svc.Stats(c.Request.Context(), loginAt)
	if err != nil {
		writeError(c, h.Logger, err, "not found")
		return
	}
	response.Success(c, http.StatusOK, stats)
}
