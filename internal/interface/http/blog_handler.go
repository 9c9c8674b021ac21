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

const postNotFound = "blog post not found"

type BlogHandler struct {
	Svc      *application.BlogService
	Uploads  *application.UploadService
	Tags     application.TagParser
	Resolver assets.Resolver
	Logger   *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, uploads *application.UploadService, tags application.TagParser, resolver assets.Resolver, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Uploads: uploads, Tags: tags, Resolver: resolver, Logger: logger}
}

type blogPayload struct {
	Title            *string         `json:"title"`
	ShortDescription *string         `json:"shortDescription"`
	Content          *string         `json:"content"`
	PublishDate      *string         `json:"publishDate" binding:"omitempty,datetime=2006-01-02"`
	Published        *bool           `json:"published"`
	Tags             json.RawMessage `json:"tags"`
	CoverImage       *string         `json:"coverImage"`
	Order            *int            `json:"order"`

	tags     *[]string
	uploaded *application.UploadedFile
}

func (h *BlogHandler) readPayload(c *gin.Context) (*blogPayload, bool) {
	var p blogPayload
	var err error
	if isMultipart(c) {
		if err = c.Request.ParseMultipartForm(multipartMemory); err != nil {
			bindError(c, err)
			return nil, false
		}
		p.Title = formString(c, "title")
		p.ShortDescription = formString(c, "shortDescription")
		p.Content = formString(c, "content")
		p.PublishDate = formString(c, "publishDate")
		p.CoverImage = formString(c, "coverImage")
		if p.Order, err = formInt(c, "order"); err == nil {
			p.Published, err = formBool(c, "published")
		}
		if err == nil {
			if raw := formString(c, "tags"); raw != nil {
				var tags []string
				if tags, err = h.Tags.ParseString(*raw); err == nil {
					p.tags = &tags
				}
			}
		}
	} else {
		if err := c.ShouldBindJSON(&p); err != nil {
			bindError(c, err)
			return nil, false
		}
		if p.Tags != nil {
			var tags []string
			if tags, err = h.Tags.Parse(p.Tags); err == nil {
				p.tags = &tags
			}
		}
	}
	if err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return nil, false
	}
	if p.CoverImage != nil {
		s := h.Resolver.Relative(entity.AssetRef(*p.CoverImage), originFrom(c)).String()
		p.CoverImage = &s
	}
	if isMultipart(c) {
		f, err := saveFormFile(c, h.Uploads, application.KindImage, "coverImage")
		if err != nil {
			writeError(c, h.Logger, err, postNotFound)
			return nil, false
		}
		if f != nil {
			p.uploaded = f
			s := f.Ref.String()
			p.CoverImage = &s
		}
	}
	return &p, true
}

func (h *BlogHandler) render(c *gin.Context, status int, b *entity.BlogPost) {
	out := *b
	h.Resolver.Normalize(&out, originFrom(c))
	response.Success(c, status, out)
}

// ListPublished GET /api/blog
func (h *BlogHandler) ListPublished(c *gin.Context) {
	posts, err := h.Svc.ListPublished()
	if err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	response.Success(c, http.StatusOK, assets.NormalizeAll(h.Resolver, posts, originFrom(c)))
}

// GetPublished GET /api/blog/:id
func (h *BlogHandler) GetPublished(c *gin.Context) {
	b, err := h.Svc.GetPublished(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	h.render(c, http.StatusOK, b)
}

// List GET /api/admin/blog
func (h *BlogHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListAll()
	if err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	response.Success(c, http.StatusOK, assets.NormalizeAll(h.Resolver, posts, originFrom(c)))
}

// Get GET /api/admin/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	h.render(c, http.StatusOK, b)
}

// Create POST /api/admin/blog
func (h *BlogHandler) Create(c *gin.Context) {
	p, ok := h.readPayload(c)
	if !ok {
		return
	}
	in := application.CreateBlogPostInput{
		Title:            deref(p.Title),
		ShortDescription: deref(p.ShortDescription),
		Content:          deref(p.Content),
		PublishDate:      deref(p.PublishDate),
		Published:        deref(p.Published),
		CoverImage:       entity.AssetRef(deref(p.CoverImage)),
		Order:            deref(p.Order),
	}
	if p.tags != nil {
		in.Tags = *p.tags
	}
	created, err := h.Svc.Create(in)
	if err != nil {
		h.discard(c, p)
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	h.render(c, http.StatusCreated, created)
}

// Update PUT /api/admin/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id := c.Param("id")
	// no upload is accepted for a post that does not exist
	if _, err := h.Svc.Get(id); err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	p, ok := h.readPayload(c)
	if !ok {
		return
	}
	patch := entity.BlogPostPatch{
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Content:          p.Content,
		PublishDate:      p.PublishDate,
		Published:        p.Published,
		Tags:             p.tags,
		Order:            p.Order,
	}
	if p.CoverImage != nil {
		ref := entity.AssetRef(*p.CoverImage)
		patch.CoverImage = &ref
	}
	updated, replaced, err := h.Svc.Update(id, patch)
	if err != nil {
		h.discard(c, p)
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	if p.uploaded != nil {
		h.Uploads.Remove(c.Request.Context(), replaced)
	}
	h.render(c, http.StatusOK, updated)
}

// Delete DELETE /api/admin/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("id")); err != nil {
		writeError(c, h.Logger, err, postNotFound)
		return
	}
	response.OK(c, "blog post deleted")
}

func (h *BlogHandler) discard(c *gin.Context, p *blogPayload) {
	if p.uploaded != nil {
		h.Uploads.Remove(c.Request.Context(), p.uploaded.Ref)
	}
}
