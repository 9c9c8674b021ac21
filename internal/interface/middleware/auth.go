package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

const CtxClaimsKey = "claims"

// TokenVerifier is satisfied by application.AuthService.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// Auth validates the access token and stores its claims in the Gin context.
// Rejected requests never reach a handler.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := v.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := application.Authorize(ClaimsFrom(c))
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, apperr.ErrForbidden):
			response.AbortError(c, http.StatusForbidden, "admin role required", nil)
		default:
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
		}
	}
}

func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}
