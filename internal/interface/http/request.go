package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/pkg/assets"
)

// multipart bodies are buffered in memory up to this size; larger parts
// spill to temp files.
const multipartMemory = 12 << 20

func originFrom(c *gin.Context) assets.Origin {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return assets.Origin{
		Scheme:         scheme,
		Host:           c.Request.Host,
		ForwardedHost:  c.GetHeader("X-Forwarded-Host"),
		ForwardedProto: c.GetHeader("X-Forwarded-Proto"),
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formFile returns the named upload or nil when the field is absent.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, apperr.Invalid(field, "malformed multipart body")
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Invalid(field, err.Error())
	}
	return fh, nil
}

// saveFormFile stores the named upload with kind's rules; it returns nil when
// the request carries no such file.
func saveFormFile(c *gin.Context, uploads *application.UploadService, kind application.UploadKind, field string) (*application.UploadedFile, error) {
	fh, err := formFile(c, field)
	if err != nil || fh == nil {
		return nil, err
	}
	if fh.Size > kind.MaxBytes {
		return nil, apperr.Invalid(field, "file exceeds "+strconv.FormatInt(kind.MaxBytes/application.MiB, 10)+" MiB")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return uploads.SaveNamed(c.Request.Context(), kind, field, fh.Filename, f)
}

// formString returns a pointer to the form value, or nil when the field is
// not present at all.
func formString(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func formInt(c *gin.Context, key string) (*int, error) {
	v, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil, apperr.Invalid(key, "must be an integer")
	}
	return &i, nil
}

func formBool(c *gin.Context, key string) (*bool, error) {
	v, ok := c.GetPostForm(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil, apperr.Invalid(key, "must be a boolean")
	}
	return &b, nil
}
