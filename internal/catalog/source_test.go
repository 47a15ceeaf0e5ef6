package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalogSize(t *testing.T) {
	reg := loadEmbedded(t)
	assert.Len(t, reg.Tools(), 36)
	assert.Len(t, reg.Conversions(), 376)
	assert.Equal(t, 412, reg.Len())
}

func TestGeneratedConversionCopy(t *testing.T) {
	reg := loadEmbedded(t)

	def, ok := reg.BySlug("mp4-to-gif")
	require.True(t, ok)
	conv, ok := def.(Conversion)
	require.True(t, ok)
	assert.Equal(t, "mp4", conv.From)
	assert.Equal(t, "gif", conv.To)
	assert.Equal(t, "video", conv.Category)
	assert.Equal(t, "MP4 to GIF Converter", conv.Title)
	assert.Equal(t, "MP4 to GIF Converter - Free, Private, No Upload", conv.SEOTitle)
	// shared questions plus the video-specific one
	require.Len(t, conv.FAQ, 4)
	assert.Equal(t, "Are my MP4 files uploaded anywhere?", conv.FAQ[0].Question)
	assert.Equal(t, "Will converting MP4 to GIF reduce quality?", conv.FAQ[3].Question)
}

func TestDecodeOnlyFormatsAreNeverTargets(t *testing.T) {
	reg := loadEmbedded(t)

	_, ok := reg.BySlug("jpg-to-heic")
	assert.False(t, ok)
	_, ok = reg.BySlug("png-to-svg")
	assert.False(t, ok)
	_, ok = reg.BySlug("heic-to-png")
	assert.True(t, ok)
	_, ok = reg.BySlug("svg-to-pdf")
	assert.True(t, ok)
}

func TestOverrides(t *testing.T) {
	reg := loadEmbedded(t)

	heic, ok := reg.BySlug("heic-to-jpg")
	require.True(t, ok)
	assert.Len(t, heic.Base().FAQ, 2)
	assert.Contains(t, heic.Base().SEOTitle, "iPhone")

	webm, ok := reg.BySlug("gif-to-webm")
	require.True(t, ok)
	assert.Empty(t, webm.Base().FAQ)
	assert.Equal(t, "video", webm.(Conversion).Category)

	pdf, ok := reg.BySlug("pdf-to-jpg")
	require.True(t, ok)
	assert.Equal(t, "document", pdf.(Conversion).Category)
	assert.Len(t, pdf.Base().FAQ, 1)
}

func TestLoadFSErrors(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{}, nil)
	require.Error(t, err)

	fsys := fstest.MapFS{
		"conversions.yaml": {Data: []byte("families: [")},
		"tools.yaml":       {Data: []byte("tools: []")},
		"popular.yaml":     {Data: []byte("conversions: []")},
	}
	_, err = LoadFS(fsys, nil)
	require.ErrorContains(t, err, "parse conversions.yaml")
}

func TestLoadFSMinimalSource(t *testing.T) {
	fsys := fstest.MapFS{
		"conversions.yaml": {Data: []byte(`
copy:
  title: "{FROM} to {TO}"
  description: "Convert {from} to {to}."
  seo_title: "{FROM} to {TO} online"
  seo_description: "Convert {FROM} to {TO} for free."
families:
  - category: audio
    formats: [mp3, wav]
overrides:
  - slug: broken
`)},
		"tools.yaml": {Data: []byte(`
tools:
  - slug: word-counter
    title: Word Counter
    popular: true
`)},
		"popular.yaml": {Data: []byte("conversions: [wav-to-mp3]")},
	}

	reg, err := LoadFS(fsys, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())
	require.Len(t, reg.Problems(), 1, "override without formats is skipped")

	def, ok := reg.BySlug("wav-to-mp3")
	require.True(t, ok)
	assert.Equal(t, "WAV to MP3", def.Base().Title)
	assert.Equal(t, "Convert wav to mp3.", def.Base().Description)
	assert.Empty(t, def.Base().FAQ)

	res := NewResolver(reg, nil)
	assert.Equal(t, []string{"wav-to-mp3", "word-counter"}, res.PopularSlugs())
}
