package handlers

import (
	"html/template"

	"finitefield.org/labs-web/internal/catalog"
	"finitefield.org/labs-web/internal/markup"
)

const relatedLimit = 6

// FAQItem is a question with its answer rendered to HTML.
type FAQItem struct {
	Question string
	Answer   template.HTML
}

// ToolView is the view model of a single catalog page.
type ToolView struct {
	Slug        string
	Title       string
	Description string
	Kind        string
	Category    string
	From        string
	To          string
	Popular     bool
	FAQ         []FAQItem
	Related     []Link
	BackHref    string
	BackLabel   string
}

// Group is a labelled run of links.
type Group struct {
	ID    string
	Label string
	Links []Link
}

// IndexView is the view model of a catalog listing page.
type IndexView struct {
	Heading string
	Intro   string
	Total   int
	Popular []Link
	Groups  []Group
}

// BuildToolView assembles the page view for def.
func BuildToolView(def catalog.Definition, reg *catalog.Registry, popular bool) ToolView {
	base := def.Base()
	v := ToolView{
		Slug:        base.Slug,
		Title:       base.Title,
		Description: base.Description,
		Kind:        def.Kind().String(),
		Popular:     popular,
	}
	for _, f := range base.FAQ {
		v.FAQ = append(v.FAQ, FAQItem{Question: f.Question, Answer: markup.Render(f.Answer)})
	}
	switch d := def.(type) {
	case catalog.Conversion:
		v.Category = catalog.CategoryLabel(d.Category)
		v.From = catalog.FormatLabel(d.From)
		v.To = catalog.FormatLabel(d.To)
		v.BackHref, v.BackLabel = "/labs/convert", "All converters"
		if reg != nil {
			for _, c := range reg.ConversionsFrom(d.From, d.Slug, relatedLimit) {
				v.Related = append(v.Related, linkFor(c, ""))
			}
		}
	case catalog.Tool:
		v.Category = catalog.CategoryLabel(d.Category)
		v.BackHref, v.BackLabel = "/labs/tools", "All tools"
	}
	return v
}

// BuildToolsIndex lists every tool grouped by category.
func BuildToolsIndex(reg *catalog.Registry, isPopular func(string) bool) IndexView {
	tools := reg.Tools()
	v := IndexView{
		Heading: "Browser tools",
		Intro:   "Developer, text, image and media utilities that run entirely on your device.",
		Total:   len(tools),
	}
	byCategory := map[string][]Link{}
	for _, t := range tools {
		l := linkFor(t, badge(isPopular(t.Slug)))
		byCategory[t.Category] = append(byCategory[t.Category], l)
		if isPopular(t.Slug) {
			v.Popular = append(v.Popular, l)
		}
	}
	for _, c := range reg.Categories(catalog.KindTool) {
		v.Groups = append(v.Groups, Group{ID: c, Label: catalog.CategoryLabel(c), Links: byCategory[c]})
	}
	return v
}

// BuildConvertIndex lists every conversion grouped by category.
func BuildConvertIndex(reg *catalog.Registry, isPopular func(string) bool) IndexView {
	conversions := reg.Conversions()
	v := IndexView{
		Heading: "File converters",
		Intro:   "Convert video, audio, image and document files without uploading them.",
		Total:   len(conversions),
	}
	byCategory := map[string][]Link{}
	for _, c := range conversions {
		byCategory[c.Category] = append(byCategory[c.Category], linkFor(c, badge(isPopular(c.Slug))))
	}
	for _, slug := range reg.PopularConversions() {
		if def, ok := reg.BySlug(slug); ok {
			v.Popular = append(v.Popular, linkFor(def, ""))
		}
	}
	for _, c := range reg.Categories(catalog.KindConversion) {
		v.Groups = append(v.Groups, Group{ID: c, Label: catalog.CategoryLabel(c), Links: byCategory[c]})
	}
	return v
}

// BuildLabsIndex is the /labs landing: popular picks from both variants and
// the category overview.
func BuildLabsIndex(reg *catalog.Registry, popularSlugs []string) IndexView {
	v := IndexView{
		Heading: "Labs",
		Intro:   "Free, private tools and converters. Your files never leave your browser.",
		Total:   reg.Len(),
	}
	for _, slug := range popularSlugs {
		if def, ok := reg.BySlug(slug); ok {
			v.Popular = append(v.Popular, linkFor(def, ""))
		}
	}
	var tools, conversions []Link
	for _, c := range reg.Categories(catalog.KindTool) {
		tools = append(tools, Link{Href: "/labs/tools#" + c, Title: catalog.CategoryLabel(c)})
	}
	for _, c := range reg.Categories(catalog.KindConversion) {
		conversions = append(conversions, Link{Href: "/labs/convert#" + c, Title: catalog.CategoryLabel(c)})
	}
	v.Groups = []Group{
		{ID: "tools", Label: "Tools", Links: tools},
		{ID: "convert", Label: "Converters", Links: conversions},
	}
	return v
}

func linkFor(def catalog.Definition, badge string) Link {
	base := def.Base()
	return Link{Href: catalog.Path(def), Title: base.Title, Description: base.Description, Badge: badge}
}

func badge(popular bool) string {
	if popular {
		return "Popular"
	}
	return ""
}
