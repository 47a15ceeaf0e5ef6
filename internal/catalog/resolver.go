package catalog

import (
	"sort"

	"go.uber.org/zap"
)

// Resolver answers slug lookups and enumerations against a Registry.
type Resolver struct {
	reg     *Registry
	logger  *zap.Logger
	popular map[string]struct{}
}

// NewResolver builds a resolver. The popular set is the union of the registry's
// popular conversions listing and every tool flagged Popular.
func NewResolver(reg *Registry, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	popular := make(map[string]struct{})
	for _, slug := range reg.PopularConversions() {
		popular[slug] = struct{}{}
	}
	for _, t := range reg.Tools() {
		if t.Popular {
			popular[t.Slug] = struct{}{}
		}
	}
	return &Resolver{reg: reg, logger: logger, popular: popular}
}

// Registry exposes the underlying registry.
func (r *Resolver) Registry() *Registry { return r.reg }

// Resolve returns the definition for slug, or ErrNotFound.
func (r *Resolver) Resolve(slug string) (Definition, error) {
	canonical := NormalizeSlug(slug)
	if canonical == "" {
		return nil, ErrNotFound
	}
	def, ok := r.reg.BySlug(canonical)
	if !ok {
		return nil, ErrNotFound
	}
	return def, nil
}

// EnumerateSlugs lists every resolvable entry exactly once, in registry order.
// An entry that fails validation is logged and skipped instead of aborting.
func (r *Resolver) EnumerateSlugs() []SlugRef {
	defs := r.reg.All()
	out := make([]SlugRef, 0, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if err := Validate(def); err != nil {
			r.logger.Warn("enumeration skipped entry", zap.Error(err))
			continue
		}
		ref := refOf(def)
		if _, dup := seen[ref.Slug]; dup {
			r.logger.Warn("enumeration skipped duplicate slug", zap.String("slug", ref.Slug))
			continue
		}
		seen[ref.Slug] = struct{}{}
		out = append(out, ref)
	}
	return out
}

// IsPopular reports whether slug is in the popular set.
func (r *Resolver) IsPopular(slug string) bool {
	_, ok := r.popular[slug]
	return ok
}

// PopularSlugs returns the popular set, sorted.
func (r *Resolver) PopularSlugs() []string {
	out := make([]string, 0, len(r.popular))
	for slug := range r.popular {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
