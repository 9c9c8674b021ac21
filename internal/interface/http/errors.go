package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/response"
	"github.com/oksasatya/portfolio-cms/pkg/validation"
)

// writeError maps domain errors onto HTTP status codes. notFound is the
// message used for apperr.ErrNotFound, e.g. "project not found".
func writeError(c *gin.Context, logger *logrus.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		response.AbortError(c, http.StatusBadRequest, "invalid payload", validationDetails(err))
	case errors.Is(err, apperr.ErrNotFound):
		response.AbortError(c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		response.AbortError(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, apperr.ErrForbidden):
		response.AbortError(c, http.StatusForbidden, "forbidden", nil)
	default:
		fields := logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}
		var se *apperr.StorageError
		if errors.As(err, &se) {
			fields["collection"] = se.Collection
			fields["op"] = se.Op
		}
		helpers.LogError(logger, "request failed", err, fields)
		response.AbortError(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// bindError reports a request body that could not be decoded.
func bindError(c *gin.Context, err error) {
	response.AbortError(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// validationDetails flattens one or more joined ValidationErrors.
func validationDetails(err error) map[string]string {
	out := map[string]string{}
	var walk func(error)
	walk = func(e error) {
		var ve *apperr.ValidationError
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		if errors.As(e, &ve) {
			field := ve.Field
			if field == "" {
				field = "payload"
			}
			out[field] = ve.Msg
		}
	}
	walk(err)
	if len(out) == 0 {
		return nil
	}
	return out
}
