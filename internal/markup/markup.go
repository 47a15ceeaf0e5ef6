// Package markup renders the small amount of markdown the catalog and content
// pages carry, and strips it back to plain text for metadata.
package markup

import (
	"bytes"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)
	ugc    = newUGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	p.RequireNoFollowOnLinks(false)
	return p
}

// Render converts markdown to sanitized HTML.
func Render(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(ugc.SanitizeBytes(buf.Bytes()))
}

// RenderInline renders a single markdown line without the wrapping paragraph.
func RenderInline(src string) template.HTML {
	out := strings.TrimSpace(string(Render(src)))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// PlainText strips markdown and HTML from src and collapses whitespace.
func PlainText(src string) string {
	rendered := Render(src)
	if rendered == "" {
		return ""
	}
	text := html.UnescapeString(strict.Sanitize(string(rendered)))
	return strings.Join(strings.Fields(text), " ")
}
