package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDefs() []Definition {
	return []Definition{
		Conversion{
			Entry: Entry{
				Slug:           "mp4-to-gif",
				Title:          "MP4 to GIF Converter",
				Description:    "Convert MP4 to GIF.",
				SEOTitle:       "MP4 to GIF Converter - Free",
				SEODescription: "Convert MP4 to GIF in your browser.",
			},
			From:     "mp4",
			To:       "gif",
			Category: "video",
		},
		Tool{
			Entry: Entry{
				Slug:           "json-formatter",
				Title:          "JSON Formatter",
				Description:    "Format JSON.",
				SEOTitle:       "JSON Formatter - Free",
				SEODescription: "Format JSON locally.",
				FAQ:            []FAQ{{Question: "Is it free?", Answer: "Yes."}},
			},
			Category: "developer",
			Popular:  true,
		},
	}
}

func TestNewKeepsLoadOrder(t *testing.T) {
	reg, err := New(sampleDefs(), nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	all := reg.All()
	assert.Equal(t, "mp4-to-gif", all[0].Base().Slug)
	assert.Equal(t, "json-formatter", all[1].Base().Slug)

	// All returns a copy
	all[0] = nil
	def, ok := reg.BySlug("mp4-to-gif")
	require.True(t, ok)
	assert.Equal(t, KindConversion, def.Kind())
}

func TestNewRejectsDuplicateAcrossVariants(t *testing.T) {
	defs := append(sampleDefs(), Tool{Entry: Entry{Slug: "mp4-to-gif", Title: "Clash"}})

	_, err := New(defs, nil, nil)
	require.Error(t, err)

	var dup *DuplicateSlugError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "mp4-to-gif", dup.Slug)
	assert.Equal(t, KindConversion, dup.First)
	assert.Equal(t, KindTool, dup.Second)
}

func TestNewSkipsMalformedEntries(t *testing.T) {
	defs := append(sampleDefs(),
		Tool{Entry: Entry{Slug: "no-title"}},
		Conversion{Entry: Entry{Slug: "Bad Slug", Title: "Bad"}, From: "a", To: "b"},
		Conversion{Entry: Entry{Slug: "missing-formats", Title: "Missing"}},
	)

	reg, err := New(defs, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	problems := reg.Problems()
	require.Len(t, problems, 3)
	for _, p := range problems {
		assert.True(t, IsMalformed(p), "expected malformed entry error, got %v", p)
	}
	_, ok := reg.BySlug("no-title")
	assert.False(t, ok)
}

func TestNewEmptyCatalog(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New([]Definition{Tool{Entry: Entry{Slug: "x"}}}, nil, nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestNewDerivesMissingSEOFields(t *testing.T) {
	reg, err := New([]Definition{
		Tool{Entry: Entry{Slug: "word-counter", Title: "Word Counter", Description: "Count words."}},
	}, nil, nil)
	require.NoError(t, err)

	def, ok := reg.BySlug("word-counter")
	require.True(t, ok)
	assert.Equal(t, "Word Counter", def.Base().SEOTitle)
	assert.Equal(t, "Count words.", def.Base().SEODescription)
}

func TestPopularConversionsListing(t *testing.T) {
	reg, err := New(sampleDefs(), []string{"mp4-to-gif", "mp4-to-gif", "json-formatter", "unknown"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mp4-to-gif"}, reg.PopularConversions())
}

func TestCategories(t *testing.T) {
	reg, err := New(sampleDefs(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"video"}, reg.Categories(KindConversion))
	assert.Equal(t, []string{"developer"}, reg.Categories(KindTool))
}

func TestPathRouting(t *testing.T) {
	defs := sampleDefs()
	assert.Equal(t, "/labs/convert/mp4-to-gif", Path(defs[0]))
	assert.Equal(t, "/labs/tools/json-formatter", Path(defs[1]))
	assert.Equal(t, "", Path(nil))
	assert.False(t, IsTool(defs[0]))
	assert.True(t, IsTool(defs[1]))
}
