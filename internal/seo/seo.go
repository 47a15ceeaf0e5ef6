package seo

// Image is an Open Graph image reference.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

type OpenGraph struct {
	Title       string
	Description string
	Type        string
	URL         string
	SiteName    string
	Images      []Image
}

type Twitter struct {
	Card        string
	Site        string
	Title       string
	Description string
	Images      []string
}

type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	// NotFound marks the metadata of an unresolved catalog slug.
	NotFound bool
}
