package cms

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/labs-web/internal/sitemap"
)

func TestEmbeddedComparisonPagesCoverSitemap(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)
	for _, slug := range sitemap.ComparisonSlugs {
		page, err := store.Get(KindCompare, slug)
		require.NoError(t, err, slug)
		assert.NotEmpty(t, page.Title, slug)
		assert.NotEmpty(t, page.Competitor, slug)
		assert.NotEmpty(t, page.Rows, slug)
		assert.NotEmpty(t, page.SEO.Description, slug)
	}
	assert.Len(t, store.List(KindCompare), len(sitemap.ComparisonSlugs))
}

func TestEmbeddedLegalPages(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)
	for _, slug := range []string{"privacy", "terms"} {
		page, err := store.Get(KindLegal, slug)
		require.NoError(t, err, slug)
		assert.False(t, page.EffectiveDate.IsZero(), slug)
		assert.Contains(t, page.Body, "## ")
	}
}

func TestParseFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"compare/foo-alternative.md": {Data: []byte("---\ntitle: Foo Alternative\nsummary: Better than Foo.\ncompetitor: Foo\nupdated_at: 2025-02-03\nrows:\n  - feature: Price\n    ours: Free\n    theirs: No\n---\n\nBody text.\n")},
		"legal/untitled-page.md":     {Data: []byte("no front matter here")},
		"stray.md":                   {Data: []byte("ignored")},
	}
	store, err := LoadFS(fsys)
	require.NoError(t, err)

	page, err := store.Get(KindCompare, "Foo-Alternative")
	require.NoError(t, err)
	assert.Equal(t, "Foo Alternative", page.Title)
	assert.Equal(t, "Foo Alternative", page.SEO.Title)
	assert.Equal(t, "Better than Foo.", page.SEO.Description)
	assert.Equal(t, "Body text.\n", page.Body)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	assert.Equal(t, []Row{{Feature: "Price", Ours: "Free", Theirs: "No"}}, page.Rows)

	legal, err := store.Get(KindLegal, "untitled-page")
	require.NoError(t, err)
	assert.Equal(t, "Untitled Page", legal.Title)
	assert.Equal(t, "no front matter here", legal.Body)
}

func TestGetNotFound(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)
	for _, slug := range []string{"", "missing", "../legal/privacy", "a/b"} {
		_, err := store.Get(KindCompare, slug)
		assert.True(t, errors.Is(err, ErrNotFound), slug)
	}
	var nilStore *Store
	_, err = nilStore.Get(KindLegal, "privacy")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFSRejectsBadFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{"legal/bad.md": {Data: []byte("---\ntitle: [unterminated\n---\n")}}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legal/bad")
}

func TestListReturnsCopies(t *testing.T) {
	store, err := Load()
	require.NoError(t, err)
	pages := store.List(KindCompare)
	require.NotEmpty(t, pages)
	pages[0].Rows[0].Ours = "changed"
	again, err := store.Get(KindCompare, pages[0].Slug)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Rows[0].Ours)
}
