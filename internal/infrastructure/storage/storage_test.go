package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "cv.pdf", want: "cv.pdf"},
		{in: "/hero-backgrounds/a.png", want: "hero-backgrounds/a.png"},
		{in: "a\\b.png", want: "a/b.png"},
		{in: "../etc/passwd", wantErr: true},
		{in: "a/../../b", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	got, err := SanitizeFilename("../../photo.png")
	require.NoError(t, err)
	assert.Equal(t, "photo.png", got)

	_, err = SanitizeFilename("..")
	assert.Error(t, err)
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()
	p, err := SafeJoinPath(base, "a", "b.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "a", "b.png"), p)

	_, err = SafeJoinPath(base, "..", "x")
	assert.Error(t, err)
}

func TestLocal_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(root, "/uploads")
	require.NoError(t, err)

	ref, err := l.Save(ctx, "hero-backgrounds/bg.png", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, entity.AssetRef("/uploads/hero-backgrounds/bg.png"), ref)

	ok, err := l.Exists(ctx, "hero-backgrounds/bg.png")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := l.Open(ctx, "hero-backgrounds/bg.png")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "png", string(b))

	key, ok := l.KeyOf(ref)
	assert.True(t, ok)
	assert.Equal(t, "hero-backgrounds/bg.png", key)

	require.NoError(t, l.Delete(ctx, key))
	assert.ErrorIs(t, l.Delete(ctx, key), apperr.ErrNotFound)
	_, err = l.Open(ctx, key)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	entries, err := os.ReadDir(filepath.Join(root, "hero-backgrounds"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestLocal_RejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	_, err = l.Save(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLocal_KeyOfForeignRef(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	_, ok := l.KeyOf("https://cdn.example.com/a.png")
	assert.False(t, ok)
}

func TestGCS_KeyOf(t *testing.T) {
	g := NewGCS(nil, "bucket", "/site/")
	key, ok := g.KeyOf("https://storage.googleapis.com/bucket/site/hero-backgrounds/a.png")
	assert.True(t, ok)
	assert.Equal(t, "hero-backgrounds/a.png", key)

	_, ok = g.KeyOf("/uploads/a.png")
	assert.False(t, ok)
}
