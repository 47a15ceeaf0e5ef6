package seo

import (
	"encoding/json"

	"finitefield.org/labs-web/internal/catalog"
	"finitefield.org/labs-web/internal/markup"
)

// featureList is asserted by every catalog page: all processing is local.
var featureList = []string{
	"Runs entirely in your browser",
	"Files are never uploaded to a server",
	"Works offline once loaded",
	"No sign-up or watermark",
}

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ItemList builds a schema.org ItemList of page URLs, used on catalog indexes.
func ItemList(name string, urls []string) map[string]any {
	el := make([]map[string]any, 0, len(urls))
	for i, u := range urls {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      u,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"numberOfItems":   len(urls),
		"itemListElement": el,
	}
}

// SoftwareApplication describes a catalog page as a free, browser-based application.
func SoftwareApplication(def catalog.Definition, url string) map[string]any {
	if def == nil {
		return nil
	}
	base := def.Base()
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "SoftwareApplication",
		"name":                base.Title,
		"description":         base.SEODescription,
		"applicationCategory": applicationCategory(def),
		"operatingSystem":     "Any (web browser)",
		"browserRequirements": "Requires JavaScript and WebAssembly",
		"isAccessibleForFree": true,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
		},
		"featureList": append([]string(nil), featureList...),
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// FAQPage returns the FAQPage schema for def, or nil when def has no FAQ.
// Questions keep their source order; answers are reduced to plain text.
func FAQPage(def catalog.Definition) map[string]any {
	if def == nil {
		return nil
	}
	faq := def.Base().FAQ
	if len(faq) == 0 {
		return nil
	}
	entities := make([]map[string]any, 0, len(faq))
	for _, f := range faq {
		entities = append(entities, map[string]any{
			"@type": "Question",
			"name":  markup.PlainText(f.Question),
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  markup.PlainText(f.Answer),
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}

func applicationCategory(def catalog.Definition) string {
	switch d := def.(type) {
	case catalog.Conversion:
		if d.Category == "document" {
			return "BusinessApplication"
		}
		return "MultimediaApplication"
	case catalog.Tool:
		switch d.Category {
		case "developer":
			return "DeveloperApplication"
		case "security":
			return "SecurityApplication"
		case "design", "image", "video", "audio":
			return "MultimediaApplication"
		}
		return "UtilitiesApplication"
	}
	return "UtilitiesApplication"
}
