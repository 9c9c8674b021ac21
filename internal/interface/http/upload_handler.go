package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/pkg/assets"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

const cvNotFound = "cv not found"

type UploadHandler struct {
	Svc            *application.UploadService
	Resolver       assets.Resolver
	Logger         *logrus.Logger
	CVDownloadName string
}

func NewUploadHandler(svc *application.UploadService, resolver assets.Resolver, logger *logrus.Logger, cvName string) *UploadHandler {
	return &UploadHandler{Svc: svc, Resolver: resolver, Logger: logger, CVDownloadName: cvName}
}

type uploadResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	URL          string `json:"url"`
	Message      string `json:"message,omitempty"`
}

func (h *UploadHandler) save(c *gin.Context, kind application.UploadKind, message string) {
	f, err := saveFormFile(c, h.Svc, kind, "file")
	if err == nil && f == nil {
		err = apperr.Invalid("file", "no file uploaded")
	}
	if err != nil {
		writeError(c, h.Logger, err, "file not found")
		return
	}
	response.Success(c, http.StatusOK, uploadResponse{
		Filename:     f.Filename,
		OriginalName: f.Original,
		URL:          h.Resolver.Absolute(f.Ref, originFrom(c)).String(),
		Message:      message,
	})
}

// Upload POST /api/admin/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	h.save(c, application.KindImage, "")
}

// UploadCV POST /api/admin/cv/upload replaces the stored résumé.
func (h *UploadHandler) UploadCV(c *gin.Context) {
	h.save(c, application.KindCV, "cv uploaded")
}

// DownloadCV GET /api/cv/download
func (h *UploadHandler) DownloadCV(c *gin.Context) {
	rc, err := h.Svc.OpenCV(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err, cvNotFound)
		return
	}
	defer func() { _ = rc.Close() }()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": h.CVDownloadName}))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		helpers.LogWarn(h.Logger, "cv download interrupted", logrus.Fields{"error": err.Error()})
	}
}

// DeleteCV DELETE /api/admin/cv
func (h *UploadHandler) DeleteCV(c *gin.Context) {
	if err := h.Svc.DeleteCV(c.Request.Context()); err != nil {
		writeError(c, h.Logger, err, cvNotFound)
		return
	}
	response.OK(c, "cv deleted")
}
