// Package sitemap builds the site's sitemap from the fixed static routes, the
// comparison pages and the full catalog.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"finitefield.org/labs-web/internal/catalog"
)

// ChangeFrequency is the sitemaps.org changefreq value.
type ChangeFrequency string

const (
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
	Yearly  ChangeFrequency = "yearly"
)

const (
	PopularPriority = 0.9
	DefaultPriority = 0.7
	ComparePriority = 0.8
)

// Entry is one sitemap URL.
type Entry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        float64
}

// Route is a static page with a hand-assigned priority.
type Route struct {
	Path            string
	Priority        float64
	ChangeFrequency ChangeFrequency
}

// StaticRoutes are emitted first, in this order.
var StaticRoutes = []Route{
	{Path: "/", Priority: 1.0, ChangeFrequency: Weekly},
	{Path: "/labs", Priority: 0.9, ChangeFrequency: Weekly},
	{Path: "/labs/tools", Priority: 0.8, ChangeFrequency: Weekly},
	{Path: "/labs/convert", Priority: 0.8, ChangeFrequency: Weekly},
	{Path: "/compare", Priority: 0.6, ChangeFrequency: Monthly},
	{Path: "/privacy", Priority: 0.3, ChangeFrequency: Yearly},
	{Path: "/terms", Priority: 0.3, ChangeFrequency: Yearly},
}

// ComparisonSlugs lists the comparison pages served under /compare/{slug}.
var ComparisonSlugs = []string{
	"loom-alternative",
	"obs-alternative",
	"camtasia-alternative",
	"screen-studio-alternative",
	"cleanshot-alternative",
	"snagit-alternative",
}

// ComparePath returns the route of a comparison page.
func ComparePath(slug string) string { return "/compare/" + slug }

// Enumerator supplies the catalog slugs and their popularity.
type Enumerator interface {
	EnumerateSlugs() []catalog.SlugRef
	IsPopular(slug string) bool
}

// Builder assembles sitemap entries. Now defaults to time.Now.
type Builder struct {
	Origin  string
	Catalog Enumerator
	Now     func() time.Time
}

// Build returns the static routes, then the comparison pages, then every
// catalog entry. All entries share one timestamp and URLs are unique.
func (b *Builder) Build() []Entry {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	ts := now().UTC().Truncate(time.Second)
	origin := strings.TrimRight(b.Origin, "/")

	var refs []catalog.SlugRef
	if b.Catalog != nil {
		refs = b.Catalog.EnumerateSlugs()
	}
	out := make([]Entry, 0, len(StaticRoutes)+len(ComparisonSlugs)+len(refs))
	seen := make(map[string]struct{}, cap(out))
	add := func(path string, priority float64, freq ChangeFrequency) {
		loc := origin + path
		if _, dup := seen[loc]; dup {
			return
		}
		seen[loc] = struct{}{}
		out = append(out, Entry{URL: loc, LastModified: ts, ChangeFrequency: freq, Priority: priority})
	}

	for _, r := range StaticRoutes {
		add(r.Path, r.Priority, r.ChangeFrequency)
	}
	for _, slug := range ComparisonSlugs {
		add(ComparePath(slug), ComparePriority, Monthly)
	}
	for _, ref := range refs {
		if b.Catalog.IsPopular(ref.Slug) {
			add(ref.Path(), PopularPriority, Weekly)
			continue
		}
		add(ref.Path(), DefaultPriority, Monthly)
	}
	return out
}

// Paths returns the site-relative paths of entries, in order.
func Paths(origin string, entries []Entry) []string {
	origin = strings.TrimRight(origin, "/")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		p := strings.TrimPrefix(e.URL, origin)
		if p == "" {
			p = "/"
		}
		out = append(out, p)
	}
	return out
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Marshal encodes entries as a sitemaps.org urlset document.
func Marshal(entries []Entry) ([]byte, error) {
	doc := urlset{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]url, 0, len(entries)),
	}
	for _, e := range entries {
		doc.URLs = append(doc.URLs, url{
			Loc:        e.URL,
			LastMod:    e.LastModified.Format(time.RFC3339),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   fmt.Sprintf("%.1f", e.Priority),
		})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("sitemap: encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Robots returns the robots.txt body: allow everything and point at the sitemap.
func Robots(origin string) string {
	origin = strings.TrimRight(origin, "/")
	return "User-agent: *\nAllow: /\n\nSitemap: " + origin + "/sitemap.xml\n"
}
