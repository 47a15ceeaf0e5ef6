package seo

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/labs-web/internal/catalog"
)

var testSite = Site{
	Origin:        "https://labs.example.com/",
	Name:          "Example Labs",
	Image:         "/assets/og-default.png",
	TwitterHandle: "@examplelabs",
}

func mp4ToGIF() catalog.Conversion {
	return catalog.Conversion{
		Entry: catalog.Entry{
			Slug:           "mp4-to-gif",
			Title:          "MP4 to GIF Converter",
			Description:    "Convert MP4 to GIF.",
			SEOTitle:       "MP4 to GIF Converter - Free, Private, No Upload",
			SEODescription: "Convert MP4 to GIF online for free.",
		},
		From: "mp4", To: "gif", Category: "video",
	}
}

func jsonFormatter() catalog.Tool {
	return catalog.Tool{
		Entry: catalog.Entry{
			Slug:           "json-formatter",
			Title:          "JSON Formatter",
			SEOTitle:       "JSON Formatter & Validator",
			SEODescription: "Format JSON locally.",
			FAQ: []catalog.FAQ{
				{Question: "Is my JSON sent to a server?", Answer: "No. It **stays** in your browser."},
				{Question: "How large a file?", Answer: "Hundreds of megabytes."},
			},
		},
		Category: "developer",
		Popular:  true,
	}
}

func TestKeywords(t *testing.T) {
	want := []string{
		"mp4 to gif",
		"mp4 to gif online",
		"mp4 to gif free",
		"mp4 to gif no upload",
		"online tool",
		"free tool",
		"private tool",
		"browser tool",
	}
	if diff := cmp.Diff(want, Keywords("mp4-to-gif")); diff != "" {
		t.Fatalf("Keywords mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "json formatter", Keywords("json_formatter")[0])
	assert.Equal(t, genericKeywords, Keywords(""))
}

func TestSynthesizeConversion(t *testing.T) {
	s := NewSynthesizer(testSite)
	m := s.Synthesize(mp4ToGIF())

	assert.Equal(t, "MP4 to GIF Converter - Free, Private, No Upload", m.Title)
	assert.Equal(t, "Convert MP4 to GIF online for free.", m.Description)
	assert.Equal(t, "https://labs.example.com/labs/convert/mp4-to-gif", m.Canonical)
	assert.Equal(t, "index, follow", m.Robots)
	assert.False(t, m.NotFound)

	assert.Equal(t, m.Title, m.OG.Title)
	assert.Equal(t, "website", m.OG.Type)
	assert.Equal(t, m.Canonical, m.OG.URL)
	assert.Equal(t, "Example Labs", m.OG.SiteName)
	require.Len(t, m.OG.Images, 1)
	assert.Equal(t, "https://labs.example.com/assets/og-default.png", m.OG.Images[0].URL)
	assert.Equal(t, 1200, m.OG.Images[0].Width)
	assert.Equal(t, "MP4 to GIF Converter", m.OG.Images[0].Alt)

	assert.Equal(t, "summary_large_image", m.Twitter.Card)
	assert.Equal(t, "@examplelabs", m.Twitter.Site)
	assert.Equal(t, []string{"https://labs.example.com/assets/og-default.png"}, m.Twitter.Images)
}

func TestSynthesizeToolCanonical(t *testing.T) {
	m := NewSynthesizer(testSite).Synthesize(jsonFormatter())
	assert.Equal(t, "https://labs.example.com/labs/tools/json-formatter", m.Canonical)
	assert.Equal(t, "json formatter no upload", m.Keywords[3])
}

func TestSynthesizeIsIdempotent(t *testing.T) {
	s := NewSynthesizer(testSite)
	for _, def := range []catalog.Definition{mp4ToGIF(), jsonFormatter(), nil} {
		if diff := cmp.Diff(s.Synthesize(def), s.Synthesize(def)); diff != "" {
			t.Fatalf("Synthesize not idempotent (-first +second):\n%s", diff)
		}
	}
}

func TestSynthesizeNotFound(t *testing.T) {
	s := NewSynthesizer(testSite)
	m := s.Synthesize(nil)
	assert.True(t, m.NotFound)
	assert.Equal(t, "Tool Not Found", m.Title)
	assert.Equal(t, "noindex, follow", m.Robots)
	assert.Empty(t, m.Canonical)
	assert.Equal(t, m, s.NotFound())
}

func TestSynthesizeWithoutImage(t *testing.T) {
	s := NewSynthesizer(Site{Origin: "https://labs.example.com"})
	m := s.Synthesize(mp4ToGIF())
	assert.Empty(t, m.OG.Images)
	assert.Empty(t, m.Twitter.Images)
	assert.Equal(t, "https://labs.example.com/", s.URL("/"))
}

func TestSoftwareApplication(t *testing.T) {
	out := SoftwareApplication(mp4ToGIF(), "https://labs.example.com/labs/convert/mp4-to-gif")

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(JSON(out)), &got))
	assert.Equal(t, "SoftwareApplication", got["@type"])
	assert.Equal(t, "MP4 to GIF Converter", got["name"])
	assert.Equal(t, "MultimediaApplication", got["applicationCategory"])
	assert.Equal(t, "https://labs.example.com/labs/convert/mp4-to-gif", got["url"])

	offer, ok := got["offers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0", offer["price"])
	assert.Equal(t, "USD", offer["priceCurrency"])

	features, ok := got["featureList"].([]any)
	require.True(t, ok)
	assert.Len(t, features, len(featureList))
	assert.Contains(t, features, "Files are never uploaded to a server")

	assert.Equal(t, "DeveloperApplication", SoftwareApplication(jsonFormatter(), "")["applicationCategory"])
	assert.Nil(t, SoftwareApplication(nil, ""))
}

func TestFAQPage(t *testing.T) {
	assert.Nil(t, FAQPage(mp4ToGIF()))
	assert.Nil(t, FAQPage(nil))

	tool := jsonFormatter()
	out := FAQPage(tool)
	require.NotNil(t, out)
	assert.Equal(t, "FAQPage", out["@type"])

	entities, ok := out["mainEntity"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, entities, len(tool.FAQ))
	for i, e := range entities {
		assert.Equal(t, "Question", e["@type"])
		assert.Equal(t, tool.FAQ[i].Question, e["name"])
	}
	answer := entities[0]["acceptedAnswer"].(map[string]any)
	assert.Equal(t, "No. It stays in your browser.", answer["text"])
}

func TestJSONEscapesScriptBreakout(t *testing.T) {
	out := JSON(map[string]any{"name": "</script><script>alert(1)</script>"})
	assert.NotContains(t, out, "</script>")
}

func TestBreadcrumbList(t *testing.T) {
	out := BreadcrumbList([]BreadcrumbItem{{Name: "Labs", Item: "https://x/labs"}, {Name: "Compare", Item: "https://x/compare"}})
	el := out["itemListElement"].([]map[string]any)
	require.Len(t, el, 2)
	assert.Equal(t, 2, el[1]["position"])
}
