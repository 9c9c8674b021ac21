package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-cms/internal/domain/apperr"
	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/portfolio-cms/internal/infrastructure/jsonstore"
)

func newBlogService(t *testing.T) *BlogService {
	t.Helper()
	svc := NewBlogService(jsonstore.NewBlogPostRepository(newTestStore(t)), quietLogger())
	svc.Now = stepClock(t0)
	return svc
}

func TestBlogService_CreateDefaults(t *testing.T) {
	svc := newBlogService(t)

	b, err := svc.Create(CreateBlogPostInput{Title: "Hello", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", b.PublishDate)
	assert.False(t, b.Published)
	assert.Equal(t, []string{}, b.Tags)

	_, err = svc.Create(CreateBlogPostInput{Title: "no content"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestBlogService_PublishedGate(t *testing.T) {
	svc := newBlogService(t)
	draft, err := svc.Create(CreateBlogPostInput{Title: "draft", Content: "x", Order: 1})
	require.NoError(t, err)
	live, err := svc.Create(CreateBlogPostInput{Title: "live", Content: "x", Published: true, Order: 2})
	require.NoError(t, err)

	list, err := svc.ListPublished()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, live.ID, list[0].ID)

	_, err = svc.GetPublished(draft.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, _, err = svc.Update(draft.ID, entity.BlogPostPatch{Published: ptr(true)})
	require.NoError(t, err)
	list, err = svc.ListPublished()
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "draft", list[0].Title)
}

func TestBlogService_UpdateAndDelete(t *testing.T) {
	svc := newBlogService(t)
	b, err := svc.Create(CreateBlogPostInput{Title: "t", Content: "c", Tags: []string{"a"}})
	require.NoError(t, err)

	up, _, err := svc.Update(b.ID, entity.BlogPostPatch{Content: ptr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", up.Content)
	assert.Equal(t, "t", up.Title)
	assert.Equal(t, []string{"a"}, up.Tags)

	require.NoError(t, svc.Delete(b.ID))
	n, err := svc.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBlogService_UpdateReportsReplacedCover(t *testing.T) {
	svc := newBlogService(t)
	b, err := svc.Create(CreateBlogPostInput{Title: "t", Content: "c", CoverImage: "/uploads/c1.png"})
	require.NoError(t, err)

	next := entity.AssetRef("/uploads/c2.png")
	up, replaced, err := svc.Update(b.ID, entity.BlogPostPatch{CoverImage: &next})
	require.NoError(t, err)
	assert.Equal(t, next, up.CoverImage)
	assert.Equal(t, entity.AssetRef("/uploads/c1.png"), replaced)

	_, replaced, err = svc.Update(b.ID, entity.BlogPostPatch{Title: ptr("t2")})
	require.NoError(t, err)
	assert.Empty(t, replaced)
}
