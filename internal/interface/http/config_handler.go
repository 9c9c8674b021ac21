package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/pkg/assets"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

const socialNotFound = "social network not found"

type ConfigHandler struct {
	Svc      *application.ConfigService
	Uploads  *application.UploadService
	Resolver assets.Resolver
	Logger   *logrus.Logger
}

func NewConfigHandler(svc *application.ConfigService, uploads *application.UploadService, resolver assets.Resolver, logger *logrus.Logger) *ConfigHandler {
	return &ConfigHandler{Svc: svc, Uploads: uploads, Resolver: resolver, Logger: logger}
}

// Get GET /api/config
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.Svc.Get()
	if err != nil {
		writeError(c, h.Logger, err, "config not found")
		return
	}
	out := cfg.Clone()
	h.Resolver.Normalize(&out, originFrom(c))
	response.Success(c, http.StatusOK, out)
}

type homePageRequest struct {
	Greeting         *string `json:"greeting"`
	ShortDescription *string `json:"shortDescription"`
	ContactEmail     *string `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone     *string `json:"contactPhone"`
	MarkdownContent  *string `json:"markdownContent"`
}

// UpdateHomePage PUT /api/admin/config/homepage
func (h *ConfigHandler) UpdateHomePage(c *gin.Context) {
	var req homePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	home, err := h.Svc.UpdateHomePage(entity.HomePagePatch{
		Greeting:         req.Greeting,
		ShortDescription: req.ShortDescription,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		MarkdownContent:  req.MarkdownContent,
	})
	if err != nil {
		writeError(c, h.Logger, err, "config not found")
		return
	}
	out := *home
	h.Resolver.Normalize(&out, originFrom(c))
	response.Success(c, http.StatusOK, out)
}

type heroResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Message  string `json:"message"`
}

func (h *ConfigHandler) uploadHero(c *gin.Context, set func(entity.AssetRef) (entity.AssetRef, error), message string) {
	f, err := saveFormFile(c, h.Uploads, application.KindHeroBackground, "heroBackground")
	if err == nil && f == nil {
		err = apperr.Invalid("heroBackground", "no file uploaded")
	}
	if err != nil {
		writeError(c, h.Logger, err, "config not found")
		return
	}
	previous, err := set(f.Ref)
	if err != nil {
		h.Uploads.Remove(c.Request.Context(), f.Ref)
		writeError(c, h.Logger, err, "config not found")
		return
	}
	h.Uploads.Remove(c.Request.Context(), previous)
	response.Success(c, http.StatusOK, heroResponse{
		Filename: f.Filename,
		URL:      h.Resolver.Absolute(f.Ref, originFrom(c)).String(),
		Message:  message,
	})
}

func (h *ConfigHandler) clearHero(c *gin.Context, clear func() (entity.AssetRef, error), message string) {
	previous, err := clear()
	if err != nil {
		writeError(c, h.Logger, err, "config not found")
		return
	}
	h.Uploads.Remove(c.Request.Context(), previous)
	response.OK(c, message)
}

// UploadHomeHero POST /api/admin/config/homepage/hero-background
func (h *ConfigHandler) UploadHomeHero(c *gin.Context) {
	h.uploadHero(c, h.Svc.SetHomeHeroBackground, "home page background updated")
}

// ClearHomeHero DELETE /api/admin/config/homepage/hero-background
func (h *ConfigHandler) ClearHomeHero(c *gin.Context) {
	h.clearHero(c, h.Svc.ClearHomeHeroBackground, "home page background removed")
}

// UploadPortfolioHero POST /api/admin/config/portfolio/hero-background
func (h *ConfigHandler) UploadPortfolioHero(c *gin.Context) {
	h.uploadHero(c, h.Svc.SetPortfolioHeroBackground, "portfolio background updated")
}

// ClearPortfolioHero DELETE /api/admin/config/portfolio/hero-background
func (h *ConfigHandler) ClearPortfolioHero(c *gin.Context) {
	h.clearHero(c, h.Svc.ClearPortfolioHeroBackground, "portfolio background removed")
}

type socialNetworkRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	URL   string `json:"url" binding:"required,link"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
}

func (r socialNetworkRequest) input() application.SocialNetworkInput {
	return application.SocialNetworkInput{ID: r.ID, Name: r.Name, URL: r.URL, Icon: r.Icon, Order: r.Order}
}

type replaceSocialRequest struct {
	SocialNetworks []socialNetworkRequest `json:"socialNetworks" binding:"dive"`
}

// ReplaceSocial PUT /api/admin/config/social
func (h *ConfigHandler) ReplaceSocial(c *gin.Context) {
	var req replaceSocialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := make([]application.SocialNetworkInput, 0, len(req.SocialNetworks))
	for _, n := range req.SocialNetworks {
		in = append(in, n.input())
	}
	list, err := h.Svc.ReplaceSocialNetworks(in)
	if err != nil {
		writeError(c, h.Logger, err, socialNotFound)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// AddSocial POST /api/admin/config/social
func (h *ConfigHandler) AddSocial(c *gin.Context) {
	var req socialNetworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.Svc.AddSocialNetwork(req.input())
	if err != nil {
		writeError(c, h.Logger, err, socialNotFound)
		return
	}
	response.Success(c, http.StatusCreated, n)
}

type socialPatchRequest struct {
	Name  *string `json:"name"`
	URL   *string `json:"url" binding:"omitempty,link"`
	Icon  *string `json:"icon"`
	Order *int    `json:"order"`
}

// UpdateSocial PUT /api/admin/config/social/:id
func (h *ConfigHandler) UpdateSocial(c *gin.Context) {
	var req socialPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	n, err := h.Svc.UpdateSocialNetwork(c.Param("id"), entity.SocialNetworkPatch{
		Name: req.Name, URL: req.URL, Icon: req.Icon, Order: req.Order,
	})
	if err != nil {
		writeError(c, h.Logger, err, socialNotFound)
		return
	}
	response.Success(c, http.StatusOK, n)
}

// DeleteSocial DELETE /api/admin/config/social/:id
func (h *ConfigHandler) DeleteSocial(c *gin.Context) {
	if err := h.Svc.DeleteSocialNetwork(c.Param("id")); err != nil {
		writeError(c, h.Logger, err, socialNotFound)
		return
	}
	response.OK(c, "social network deleted")
}
