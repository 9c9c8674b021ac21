package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-cms/internal/application"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/pkg/assets"
	"github.com/oksasatya/portfolio-cms/pkg/response"
)

const projectNotFound = "project not found"

type ProjectHandler struct {
	Svc      *application.ProjectService
	Uploads  *application.UploadService
	Tags     application.TagParser
	Resolver assets.Resolver
	Logger   *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, uploads *application.UploadService, tags application.TagParser, resolver assets.Resolver, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Uploads: uploads, Tags: tags, Resolver: resolver, Logger: logger}
}

// projectPayload is accepted as JSON or as multipart form fields plus an
// optional "thumbnail" file.
type projectPayload struct {
	Title            *string         `json:"title"`
	ShortDescription *string         `json:"shortDescription"`
	LongDescription  *string         `json:"longDescription"`
	Category         *string         `json:"category"`
	Tags             json.RawMessage `json:"tags"`
	Thumbnail        *string         `json:"thumbnail"`
	Visibility       *string         `json:"visibility" binding:"omitempty,visibility"`
	Order            *int            `json:"order"`

	tags     *[]string
	uploaded *application.UploadedFile
}

func (h *ProjectHandler) readPayload(c *gin.Context) (*projectPayload, bool) {
	var p projectPayload
	if isMultipart(c) {
		var err error
		if err = c.Request.ParseMultipartForm(multipartMemory); err != nil {
			bindError(c, err)
			return nil, false
		}
		p.Title = formString(c, "title")
		p.ShortDescription = formString(c, "shortDescription")
		p.LongDescription = formString(c, "longDescription")
		p.Category = formString(c, "category")
		p.Thumbnail = formString(c, "thumbnail")
		p.Visibility = formString(c, "visibility")
		if p.Order, err = formInt(c, "order"); err != nil {
			writeError(c, h.Logger, err, projectNotFound)
			return nil, false
		}
		if raw := formString(c, "tags"); raw != nil {
			tags, err := h.Tags.ParseString(*raw)
			if err != nil {
				writeError(c, h.Logger, err, projectNotFound)
				return nil, false
			}
			p.tags = &tags
		}
	} else {
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return nil, false
		}
		if p.Tags != nil {
			tags, err := h.Tags.Parse(p.Tags)
			if err != nil {
				writeError(c, h.Logger, err, projectNotFound)
				return nil, false
			}
			p.tags = &tags
		}
	}
	if p.Thumbnail != nil {
		ref := h.Resolver.Relative(entity.AssetRef(*p.Thumbnail), originFrom(c))
		s := ref.String()
		p.Thumbnail = &s
	}
	return &p, true
}

// saveThumbnail stores an uploaded thumbnail, if any, after the payload has
// been validated.
func (h *ProjectHandler) saveThumbnail(c *gin.Context, p *projectPayload) bool {
	if !isMultipart(c) {
		return true
	}
	f, err := saveFormFile(c, h.Uploads, application.KindImage, "thumbnail")
	if err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return false
	}
	if f != nil {
		p.uploaded = f
		s := f.Ref.String()
		p.Thumbnail = &s
	}
	return true
}

func (h *ProjectHandler) render(c *gin.Context, status int, p *entity.Project) {
	out := *p
	h.Resolver.Normalize(&out, originFrom(c))
	response.Success(c, status, out)
}

// ListPublic GET /api/projects
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	projects, err := h.Svc.ListPublic()
	if err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	response.Success(c, http.StatusOK, assets.NormalizeAll(h.Resolver, projects, originFrom(c)))
}

// GetPublic GET /api/projects/:id
func (h *ProjectHandler) GetPublic(c *gin.Context) {
	p, err := h.Svc.GetPublic(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	h.render(c, http.StatusOK, p)
}

// List GET /api/admin/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.Svc.ListAll()
	if err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	response.Success(c, http.StatusOK, assets.NormalizeAll(h.Resolver, projects, originFrom(c)))
}

// Get GET /api/admin/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	h.render(c, http.StatusOK, p)
}

// Create POST /api/admin/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	p, ok := h.readPayload(c)
	if !ok || !h.saveThumbnail(c, p) {
		return
	}
	in := application.CreateProjectInput{
		Title:            deref(p.Title),
		ShortDescription: deref(p.ShortDescription),
		LongDescription:  deref(p.LongDescription),
		Category:         deref(p.Category),
		Thumbnail:        entity.AssetRef(deref(p.Thumbnail)),
		Visibility:       entity.Visibility(deref(p.Visibility)),
	}
	if p.tags != nil {
		in.Tags = *p.tags
	}
	if p.Order != nil {
		in.Order = *p.Order
	}
	created, err := h.Svc.Create(in)
	if err != nil {
		h.discard(c, p)
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	h.render(c, http.StatusCreated, created)
}

// Update PUT /api/admin/projects/:id merges only the fields present.
func (h *ProjectHandler) Update(c *gin.Context) {
	id := c.Param("id")
	p, ok := h.readPayload(c)
	if !ok {
		return
	}
	// no upload is accepted for a project that does not exist
	if _, err := h.Svc.Get(id); err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	if !h.saveThumbnail(c, p) {
		return
	}
	patch := entity.ProjectPatch{
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Category:         p.Category,
		Tags:             p.tags,
		Order:            p.Order,
	}
	if p.Thumbnail != nil {
		ref := entity.AssetRef(*p.Thumbnail)
		patch.Thumbnail = &ref
	}
	if p.Visibility != nil {
		v := entity.Visibility(*p.Visibility)
		patch.Visibility = &v
	}
	updated, replaced, err := h.Svc.Update(id, patch)
	if err != nil {
		h.discard(c, p)
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	if p.uploaded != nil {
		h.Uploads.Remove(c.Request.Context(), replaced)
	}
	h.render(c, http.StatusOK, updated)
}

// Delete DELETE /api/admin/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		writeError(c, h.Logger, err, projectNotFound)
		return
	}
	response.OK(c, "project deleted")
}

// discard removes a file uploaded for a request that then failed.
func (h *ProjectHandler) discard(c *gin.Context, p *projectPayload) {
	if p.uploaded != nil {
		h.Uploads.Remove(c.Request.Context(), p.uploaded.Ref)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
