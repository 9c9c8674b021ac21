package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/pkg/helpers"
)

// GCS stores files in a bucket under an optional object prefix. References
// are public storage.googleapis.com URLs, which the URL resolver leaves
// untouched.
type GCS struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func NewGCS(client *storage.Client, bucket, prefix string) *GCS {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &GCS{Client: client, Bucket: bucket, Prefix: prefix}
}

func (g *GCS) object(key string) (string, error) {
	k, err := CleanKey(key)
	if err != nil {
		return "", apperr.Invalid("file", err.Error())
	}
	return g.Prefix + k, nil
}

func (g *GCS) Save(ctx context.Context, key string, r io.Reader, contentType string) (entity.AssetRef, error) {
	obj, err := g.object(key)
	if err != nil {
		return "", err
	}
	url, err := helpers.UploadObject(ctx, g.Client, g.Bucket, obj, contentType, r)
	if err != nil {
		return "", err
	}
	return entity.AssetRef(url), nil
}

func (g *GCS) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := g.object(key)
	if err != nil {
		return nil, err
	}
	rc, err := g.Client.Bucket(g.Bucket).Object(obj).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, apperr.ErrNotFound
	}
	return rc, err
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	obj, err := g.object(key)
	if err != nil {
		return err
	}
	err = g.Client.Bucket(g.Bucket).Object(obj).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return apperr.ErrNotFound
	}
	return err
}

func (g *GCS) Exists(ctx context.Context, key string) (bool, error) {
	obj, err := g.object(key)
	if err != nil {
		return false, err
	}
	_, err = g.Client.Bucket(g.Bucket).Object(obj).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (g *GCS) KeyOf(ref entity.AssetRef) (string, bool) {
	base := helpers.PublicURL(g.Bucket, g.Prefix)
	s := ref.String()
	if !strings.HasPrefix(s, base) {
		return "", false
	}
	k, err := CleanKey(strings.TrimPrefix(s, base))
	return k, err == nil
}

var _ AssetStorage = (*GCS)(nil)
