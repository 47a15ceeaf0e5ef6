package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/labs/tools"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/labs", Label: "Labs"},
	{Path: "/labs/tools", Label: "Tools"},
	{Path: "/labs/convert", Label: "Converters"},
	{Path: "/compare", Label: "Compare"},
}

// sectionLabels names path prefixes that are not leaf pages.
var sectionLabels = map[string]string{
	"/labs":         "Labs",
	"/labs/tools":   "Tools",
	"/labs/convert": "Converters",
	"/compare":      "Compare",
	"/privacy":      "Privacy",
	"/terms":        "Terms",
}

// Build renders navigation items with active state given the current path.
// Only the most specific matching item is active.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	best := -1
	for i, it := range Main {
		if isActive(it.Path, currentPath) && (best < 0 || len(it.Path) > len(Main[best].Path)) {
			best = i
		}
	}
	items := make([]RenderedItem, 0, len(Main))
	for i, it := range Main {
		items = append(items, RenderedItem{Href: it.Path, Label: it.Label, Active: i == best})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/labs" or "/labs/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path, starting at Home.
// leaf, when set, labels the final segment (e.g. a tool title).
func Breadcrumbs(currentPath, leaf string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	clean := path.Clean(currentPath)
	if clean == "/" || clean == "." {
		return crumbs
	}
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		href += "/" + seg
		last := i == len(parts)-1
		label, ok := sectionLabels[href]
		if !ok {
			label = titleFromSegment(seg)
		}
		if last && leaf != "" {
			label = leaf
		}
		crumbs = append(crumbs, Crumb{Href: href, Label: label, Active: last})
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
