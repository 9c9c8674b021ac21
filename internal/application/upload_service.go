package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp" // WebP decoder for imaging.Decode

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/storage"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

const (
	MiB = 1 << 20

	// CVKey is the fixed storage key of the résumé; a new upload replaces it.
	CVKey = "cv.pdf"
)

// UploadKind describes what a given upload endpoint accepts.
type UploadKind struct {
	Name       string
	Dir        string
	NamePrefix string // overrides the form field name in generated filenames
	FixedKey   string
	MaxBytes   int64
	Types      []string
	Image      bool
	MaxWidth   int
}

var (
	KindImage = UploadKind{
		Name:     "image",
		MaxBytes: 5 * MiB,
		Types:    []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		Image:    true,
	}
	KindHeroBackground = UploadKind{
		Name:       "hero background",
		Dir:        "hero-backgrounds",
		NamePrefix: "hero-bg",
		MaxBytes:   10 * MiB,
		Types:      []string{"image/jpeg", "image/png", "image/webp"},
		Image:      true,
		MaxWidth:   2560,
	}
	KindCV = UploadKind{
		Name:     "cv",
		FixedKey: CVKey,
		MaxBytes: 5 * MiB,
		Types:    []string{"application/pdf"},
	}
)

type UploadedFile struct {
	Filename string
	Original string // client supplied base name, may be empty
	Ref      entity.AssetRef
	Size     int
	MIME     string
}

type UploadService struct {
	Storage storage.AssetStorage
	Logger  *logrus.Logger
	Now     helpers.Clock
}

func NewUploadService(st storage.AssetStorage, logger *logrus.Logger) *UploadService {
	return &UploadService{Storage: st, Logger: logger, Now: helpers.UTCNow}
}

// Save validates r against kind and stores it. field is the form field name,
// used as the generated filename prefix.
func (s *UploadService) Save(ctx context.Context, kind UploadKind, field string, r io.Reader) (*UploadedFile, error) {
	return s.SaveNamed(ctx, kind, field, "", r)
}

// SaveNamed is Save for multipart files; clientName is only reduced to its
// base name and recorded, never used as the storage key.
func (s *UploadService) SaveNamed(ctx context.Context, kind UploadKind, field, clientName string, r io.Reader) (*UploadedFile, error) {
	original := ""
	if clientName != "" {
		original, _ = storage.SanitizeFilename(clientName)
	}
	data, err := io.ReadAll(io.LimitReader(r, kind.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, apperr.Invalid(field, "no file uploaded")
	}
	if int64(len(data)) > kind.MaxBytes {
		return nil, apperr.Invalid(field, fmt.Sprintf("file exceeds %d MiB", kind.MaxBytes/MiB))
	}

	mt := mimetype.Detect(data)
	if !allowed(mt, kind.Types) {
		return nil, apperr.Invalid(field, fmt.Sprintf("%s is not an accepted %s type", mt.String(), kind.Name))
	}
	ext := mt.Extension()
	contentType := mt.String()

	if kind.Image {
		data, ext, contentType, err = s.checkImage(data, ext, contentType, kind.MaxWidth)
		if err != nil {
			return nil, apperr.Invalid(field, err.Error())
		}
	}

	key := kind.FixedKey
	if key == "" {
		prefix := kind.NamePrefix
		if prefix == "" {
			prefix = field
		}
		key = s.generateName(prefix, ext)
		if kind.Dir != "" {
			key = path.Join(kind.Dir, key)
		}
	}

	ref, err := s.Storage.Save(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"key":      key,
			"original": original,
			"size":     len(data),
			"mime":     contentType,
		}).Info("file uploaded")
	}
	return &UploadedFile{Filename: path.Base(key), Original: original, Ref: ref, Size: len(data), MIME: contentType}, nil
}

// generateName follows "<prefix>-<unix ms>-<random>.<ext>".
func (s *UploadService) generateName(prefix, ext string) string {
	ms := clockOrDefault(s.Now)().UnixMilli()
	return fmt.Sprintf("%s-%d-%d%s", sanitizePrefix(prefix), ms, rand.Int63n(1e9), ext)
}

// checkImage decodes the payload so disguised files are rejected, and
// downscales images wider than maxWidth.
func (s *UploadService) checkImage(data []byte, ext, contentType string, maxWidth int) ([]byte, string, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", errors.New("file is not a decodable image")
	}
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return data, ext, contentType, nil
	}
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	format := imaging.JPEG
	if contentType == "image/png" {
		format = imaging.PNG
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", "", fmt.Errorf("re-encode image: %w", err)
	}
	if format == imaging.JPEG {
		ext, contentType = ".jpg", "image/jpeg"
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"from_width": img.Bounds().Dx(),
			"to_width":   maxWidth,
		}).Info("image downscaled")
	}
	return buf.Bytes(), ext, contentType, nil
}

// Remove deletes a previously stored asset. References the storage backend
// does not own (external URLs) are ignored.
func (s *UploadService) Remove(ctx context.Context, ref entity.AssetRef) {
	if ref.IsZero() {
		return
	}
	key, ok := s.Storage.KeyOf(ref)
	if !ok {
		return
	}
	if err := s.Storage.Delete(ctx, key); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		helpers.LogError(s.Logger, "remove replaced asset failed", err, logrus.Fields{"key": key})
	}
}

func (s *UploadService) OpenCV(ctx context.Context) (io.ReadCloser, error) {
	return s.Storage.Open(ctx, CVKey)
}

func (s *UploadService) HasCV(ctx context.Context) (bool, error) {
	return s.Storage.Exists(ctx, CVKey)
}

// DeleteCV returns apperr.ErrNotFound when no CV was uploaded.
func (s *UploadService) DeleteCV(ctx context.Context) error {
	return s.Storage.Delete(ctx, CVKey)
}

func allowed(mt *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

func sanitizePrefix(p string) string {
	p = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, p)
	if p == "" {
		return "file"
	}
	return p
}
