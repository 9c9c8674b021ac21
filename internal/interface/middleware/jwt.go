package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// tokenFromRequest reads "Authorization: Bearer <token>" and falls back to the
// access_token cookie.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	token, err := c.Cookie(helpers.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return token
}
