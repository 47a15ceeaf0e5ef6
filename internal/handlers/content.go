package handlers

import (
	"html/template"

	"finitefield.org/labs-web/internal/cms"
	"finitefield.org/labs-web/internal/format"
	"finitefield.org/labs-web/internal/markup"
	"finitefield.org/labs-web/internal/sitemap"
)

// ContentView renders a markdown page (legal or comparison).
type ContentView struct {
	Title         string
	Summary       string
	Body          template.HTML
	EffectiveDate string
	UpdatedAt     string
	UpdatedISO    string
	Competitor    string
	Verdict       string
	Rows          []cms.Row
}

// BuildContentView converts a cms page for rendering.
func BuildContentView(p cms.Page) ContentView {
	return ContentView{
		Title:         p.Title,
		Summary:       p.Summary,
		Body:          markup.Render(p.Body),
		EffectiveDate: format.FmtDate(p.EffectiveDate),
		UpdatedAt:     format.FmtDate(p.UpdatedAt),
		UpdatedISO:    format.ISODate(p.UpdatedAt),
		Competitor:    p.Competitor,
		Verdict:       p.Verdict,
		Rows:          p.Rows,
	}
}

// CompareIndexView lists the comparison pages.
type CompareIndexView struct {
	Links []Link
}

// BuildCompareIndex lists comparison pages in sitemap order, skipping any
// slug without content.
func BuildCompareIndex(store *cms.Store) CompareIndexView {
	var v CompareIndexView
	for _, slug := range sitemap.ComparisonSlugs {
		p, err := store.Get(cms.KindCompare, slug)
		if err != nil {
			continue
		}
		v.Links = append(v.Links, Link{Href: sitemap.ComparePath(slug), Title: p.Title, Description: p.Summary})
	}
	return v
}

// HomeView is the view model for the landing page.
type HomeView struct {
	Headline   string
	Tagline    string
	ToolCount  string
	Popular    []Link
	Categories []Link
	Compare    []Link
}
