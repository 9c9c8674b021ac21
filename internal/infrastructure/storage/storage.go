// Package storage persists uploaded files. Files live either under the local
// uploads directory (served at /uploads/) or in a Google Cloud Storage bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
)

// AssetStorage saves and retrieves uploaded files by key. Keys use forward
// slashes and never start with one, e.g. "hero-backgrounds/hero-bg-1.webp".
type AssetStorage interface {
	// Save writes r under key and returns the reference to store in documents.
	Save(ctx context.Context, key string, r io.Reader, contentType string) (entity.AssetRef, error)
	// Open returns apperr.ErrNotFound when key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete returns apperr.ErrNotFound when key does not exist.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// KeyOf maps a stored reference back to its key; ok is false for
	// references this backend does not own.
	KeyOf(ref entity.AssetRef) (key string, ok bool)
}

// CleanKey rejects keys that would escape the storage root.
func CleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(key, "\\", "/")), "/")
	if k == "" || k == "." || strings.HasPrefix(k, "..") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return k, nil
}
