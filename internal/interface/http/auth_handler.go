package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/interface/middleware"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Login(req.Username, req.Password)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithFields(logrus.Fields{
				"username": req.Username,
				"ip":       c.GetString("real_ip"),
			}).Info("login rejected")
		}
		writeError(c, h.Logger, err, "user not found")
		return
	}
	h.Cookies.SetAccess(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, loginResponse{
		Token: res.Token,
		User:  loginUser{ID: res.User.ID, Username: res.User.Username, Role: string(res.User.Role)},
	})
}

// Logout POST /api/auth/logout clears the cookie; bearer tokens simply expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, "logged out")
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	response.Success(c, http.StatusOK, gin.H{
		"id":        claims.UserID,
		"username":  claims.Username,
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt.Time,
	})
}
