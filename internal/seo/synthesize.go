package seo

import (
	"strings"

	"finitefield.org/labs-web/internal/catalog"
)

const (
	ogImageWidth  = 1200
	ogImageHeight = 630

	notFoundTitle       = "Tool Not Found"
	notFoundDescription = "The tool you are looking for does not exist or has moved. Browse the full catalog of free, private browser tools."
)

// qualifiers expand the slug phrase into search variants, in order.
var qualifiers = []string{"", " online", " free", " no upload"}

// genericKeywords close every keyword list.
var genericKeywords = []string{"online tool", "free tool", "private tool", "browser tool"}

// Site carries the origin-wide settings metadata is derived from.
type Site struct {
	Origin        string
	Name          string
	Image         string
	TwitterHandle string
}

// Synthesizer derives page metadata from catalog definitions. It holds no
// mutable state and is safe for concurrent use.
type Synthesizer struct {
	site Site
}

// NewSynthesizer normalizes site settings and returns a Synthesizer.
func NewSynthesizer(site Site) *Synthesizer {
	site.Origin = strings.TrimRight(strings.TrimSpace(site.Origin), "/")
	site.Name = strings.TrimSpace(site.Name)
	site.Image = strings.TrimSpace(site.Image)
	return &Synthesizer{site: site}
}

// Site returns the normalized site settings.
func (s *Synthesizer) Site() Site { return s.site }

// URL joins path onto the site origin.
func (s *Synthesizer) URL(path string) string {
	if path == "" || path == "/" {
		return s.site.Origin + "/"
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.site.Origin + path
}

// Synthesize derives metadata for def. A nil definition yields NotFound().
func (s *Synthesizer) Synthesize(def catalog.Definition) Meta {
	if def == nil {
		return s.NotFound()
	}
	base := def.Base()
	title := strings.TrimSpace(base.SEOTitle)
	if title == "" {
		title = base.Title
	}
	description := strings.TrimSpace(base.SEODescription)
	if description == "" {
		description = base.Description
	}
	m := s.page(title, description, catalog.Path(def), base.Title)
	m.Keywords = Keywords(base.Slug)
	return m
}

// NotFound returns the metadata of the "Tool Not Found" page.
func (s *Synthesizer) NotFound() Meta {
	m := s.page(notFoundTitle, notFoundDescription, "", notFoundTitle)
	m.Canonical = ""
	m.OG.URL = ""
	m.Robots = "noindex, follow"
	m.NotFound = true
	return m
}

// Page derives metadata for a non-catalog page such as an index or comparison page.
func (s *Synthesizer) Page(title, description, path string) Meta {
	return s.page(title, description, path, title)
}

func (s *Synthesizer) page(title, description, path, alt string) Meta {
	canonical := s.URL(path)
	var images []Image
	var twitterImages []string
	if s.site.Image != "" {
		img := s.URL(s.site.Image)
		images = []Image{{URL: img, Width: ogImageWidth, Height: ogImageHeight, Alt: alt}}
		twitterImages = []string{img}
	}
	return Meta{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		Robots:      "index, follow",
		OG: OpenGraph{
			Title:       title,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    s.site.Name,
			Images:      images,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Site:        s.site.TwitterHandle,
			Title:       title,
			Description: description,
			Images:      twitterImages,
		},
	}
}

// Keywords derives the keyword list for a slug: the slug phrase with each
// qualifier, followed by the generic terms.
func Keywords(slug string) []string {
	phrase := strings.Join(strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	}), " ")
	out := make([]string, 0, len(qualifiers)+len(genericKeywords))
	if phrase != "" {
		for _, q := range qualifiers {
			out = append(out, phrase+q)
		}
	}
	return append(out, genericKeywords...)
}
