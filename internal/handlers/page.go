package handlers

import (
	"html/template"

	"finitefield.org/labs-web/internal/config"
	"finitefield.org/labs-web/internal/nav"
	"finitefield.org/labs-web/internal/seo"
)

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
}

// AnalyticsFromConfig copies the tag identifiers out of the loaded config.
func AnalyticsFromConfig(cfg config.AnalyticsConfig) Analytics {
	return Analytics{GA4MeasurementID: cfg.GAMeasurementID, GTMContainerID: cfg.GTMContainerID}
}

// PageData is the view model every page renders through the shared layout.
type PageData struct {
	SiteName  string
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics Analytics

	// Content names the template that fills the layout's main block.
	Content string

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Exactly one payload is set, matching Content.
	Home    *HomeView
	Index   *IndexView
	Tool    *ToolView
	Page    *ContentView
	Compare *CompareIndexView
}

// NewPageData fills the layout fields shared by every page.
func NewPageData(siteName, path string, meta seo.Meta, analytics Analytics) PageData {
	return PageData{
		SiteName:  siteName,
		SEO:       meta,
		Analytics: analytics,
		Path:      path,
		Nav:       nav.Build(path),
	}
}

// AddJSONLD appends each non-nil schema as a script payload.
func (p *PageData) AddJSONLD(schemas ...map[string]any) {
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if js := seo.JSON(s); js != "" {
			p.JSONLD = append(p.JSONLD, template.JS(js))
		}
	}
}

// Link is a titled href used by listings.
type Link struct {
	Href        string
	Title       string
	Description string
	Badge       string
}
