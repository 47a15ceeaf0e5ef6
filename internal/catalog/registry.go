package catalog

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry is the immutable, slug-indexed catalog. It is safe for concurrent reads.
type Registry struct {
	defs     []Definition
	index    map[string]int
	popular  []string
	problems []error
}

// New validates defs and builds a registry. Malformed entries are logged and
// skipped; a duplicate slug or an empty result is returned as an error.
// popularConversions lists the conversion slugs that get sitemap priority.
func New(defs []Definition, popularConversions []string, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for _, def := range defs {
		if def == nil {
			continue
		}
		if err := Validate(def); err != nil {
			logger.Warn("catalog entry skipped", zap.Error(err))
			r.problems = append(r.problems, err)
			continue
		}
		def = withSEOFallback(def, logger)
		slug := def.Base().Slug
		if i, dup := r.index[slug]; dup {
			return nil, &DuplicateSlugError{Slug: slug, First: r.defs[i].Kind(), Second: def.Kind()}
		}
		r.index[slug] = len(r.defs)
		r.defs = append(r.defs, def)
	}
	if len(r.defs) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(popularConversions))
	for _, raw := range popularConversions {
		slug := strings.TrimSpace(raw)
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		def, ok := r.BySlug(slug)
		if !ok {
			logger.Warn("popular conversion not in catalog", zap.String("slug", slug))
			continue
		}
		if def.Kind() != KindConversion {
			logger.Warn("popular conversion listing names a tool", zap.String("slug", slug))
			continue
		}
		r.popular = append(r.popular, slug)
	}
	return r, nil
}

// All returns every definition in load order. The slice is a copy.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len reports the number of definitions.
func (r *Registry) Len() int { return len(r.defs) }

// BySlug looks up an exact, canonical slug.
func (r *Registry) BySlug(slug string) (Definition, bool) {
	i, ok := r.index[slug]
	if !ok {
		return nil, false
	}
	return r.defs[i], true
}

// PopularConversions returns the validated popular conversions listing.
func (r *Registry) PopularConversions() []string {
	out := make([]string, len(r.popular))
	copy(out, r.popular)
	return out
}

// Problems returns the load-time errors for entries that were skipped.
func (r *Registry) Problems() []error {
	out := make([]error, len(r.problems))
	copy(out, r.problems)
	return out
}

// Tools returns tool definitions in load order.
func (r *Registry) Tools() []Tool {
	var out []Tool
	for _, def := range r.defs {
		if t, ok := def.(Tool); ok {
			out = append(out, t)
		}
	}
	return out
}

// Conversions returns conversion definitions in load order.
func (r *Registry) Conversions() []Conversion {
	var out []Conversion
	for _, def := range r.defs {
		if c, ok := def.(Conversion); ok {
			out = append(out, c)
		}
	}
	return out
}

// ConversionsFrom lists conversions reading the given source format, excluding exclude.
func (r *Registry) ConversionsFrom(format, exclude string, limit int) []Conversion {
	var out []Conversion
	for _, def := range r.defs {
		c, ok := def.(Conversion)
		if !ok || c.From != format || c.Slug == exclude {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Categories returns the distinct categories of the given kind, sorted.
func (r *Registry) Categories(kind Kind) []string {
	set := map[string]struct{}{}
	for _, def := range r.defs {
		switch d := def.(type) {
		case Tool:
			if kind == KindTool {
				set[d.Category] = struct{}{}
			}
		case Conversion:
			if kind == KindConversion {
				set[d.Category] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Validate checks the required fields of a definition.
func Validate(def Definition) error {
	if def == nil {
		return &MalformedEntryError{Fields: []string{"definition"}}
	}
	base := def.Base()
	var fields []string
	if !ValidSlug(base.Slug) {
		fields = append(fields, "slug")
	}
	if strings.TrimSpace(base.Title) == "" {
		fields = append(fields, "title")
	}
	for _, f := range base.FAQ {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			fields = append(fields, "faq")
			break
		}
	}
	if c, ok := def.(Conversion); ok {
		if strings.TrimSpace(c.From) == "" || strings.TrimSpace(c.To) == "" {
			fields = append(fields, "formats")
		}
	}
	if len(fields) > 0 {
		return &MalformedEntryError{Kind: def.Kind(), Slug: base.Slug, Fields: fields}
	}
	return nil
}

// IsMalformed reports whether err marks a skipped source entry.
func IsMalformed(err error) bool {
	var target *MalformedEntryError
	return errors.As(err, &target)
}

func withSEOFallback(def Definition, logger *zap.Logger) Definition {
	base := def.Base()
	if strings.TrimSpace(base.SEOTitle) != "" && strings.TrimSpace(base.SEODescription) != "" {
		return def
	}
	logger.Warn("catalog entry missing seo fields; deriving from display copy", zap.String("slug", base.Slug))
	if strings.TrimSpace(base.SEOTitle) == "" {
		base.SEOTitle = base.Title
	}
	if strings.TrimSpace(base.SEODescription) == "" {
		base.SEODescription = base.Description
	}
	if strings.TrimSpace(base.SEODescription) == "" {
		base.SEODescription = base.Title
	}
	switch d := def.(type) {
	case Tool:
		d.Entry = base
		return d
	case Conversion:
		d.Entry = base
		return d
	}
	return def
}
