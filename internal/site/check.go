package site

import (
	"fmt"

	"finitefield.org/labs-web/internal/catalog"
	"finitefield.org/labs-web/internal/cms"
	"finitefield.org/labs-web/internal/sitemap"
)

// Finding is the outcome of one consistency check.
type Finding struct {
	Name    string
	OK      bool
	Details []string
}

// Report groups the findings of Check.
type Report struct {
	Findings []Finding
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	for _, f := range r.Findings {
		if !f.OK {
			return false
		}
	}
	return true
}

// Check verifies the invariants the generated pages depend on.
func (s *Site) Check() Report {
	refs := s.resolver.EnumerateSlugs()
	return Report{Findings: []Finding{
		s.checkLoad(),
		checkUnique(refs),
		s.checkRoundTrip(refs),
		s.checkMetadata(refs),
		s.checkComparisons(),
		s.checkSitemap(refs),
	}}
}

func (s *Site) checkLoad() Finding {
	f := Finding{Name: "catalog entries load cleanly", OK: true}
	for _, err := range s.registry.Problems() {
		f.OK = false
		f.Details = append(f.Details, err.Error())
	}
	return f
}

func checkUnique(refs []catalog.SlugRef) Finding {
	f := Finding{Name: "slugs are unique", OK: true}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Slug] {
			f.OK = false
			f.Details = append(f.Details, "duplicate slug "+ref.Slug)
		}
		seen[ref.Slug] = true
	}
	return f
}

func (s *Site) checkRoundTrip(refs []catalog.SlugRef) Finding {
	f := Finding{Name: "every enumerated slug resolves", OK: true}
	for _, ref := range refs {
		def, err := s.resolver.Resolve(ref.Slug)
		switch {
		case err != nil:
			f.Details = append(f.Details, fmt.Sprintf("%s: %v", ref.Slug, err))
		case catalog.IsTool(def) != ref.IsTool:
			f.Details = append(f.Details, fmt.Sprintf("%s: variant mismatch", ref.Slug))
		case def.Base().Slug != ref.Slug:
			f.Details = append(f.Details, fmt.Sprintf("%s: resolved to %s", ref.Slug, def.Base().Slug))
		}
	}
	f.OK = len(f.Details) == 0
	return f
}

func (s *Site) checkMetadata(refs []catalog.SlugRef) Finding {
	f := Finding{Name: "metadata is complete", OK: true}
	for _, ref := range refs {
		def, err := s.resolver.Resolve(ref.Slug)
		if err != nil {
			continue
		}
		meta := s.synth.Synthesize(def)
		if meta.Title == "" || meta.Description == "" {
			f.Details = append(f.Details, ref.Slug+": empty title or description")
		}
		if meta.Canonical != s.synth.URL(ref.Path()) {
			f.Details = append(f.Details, ref.Slug+": canonical "+meta.Canonical)
		}
	}
	f.OK = len(f.Details) == 0
	return f
}

func (s *Site) checkComparisons() Finding {
	f := Finding{Name: "comparison pages have content", OK: true}
	for _, slug := range sitemap.ComparisonSlugs {
		if _, err := s.content.Get(cms.KindCompare, slug); err != nil {
			f.Details = append(f.Details, slug+": "+err.Error())
		}
	}
	f.OK = len(f.Details) == 0
	return f
}

func (s *Site) checkSitemap(refs []catalog.SlugRef) Finding {
	f := Finding{Name: "sitemap covers every page", OK: true}
	entries := s.sitemap.Build()
	want := len(sitemap.StaticRoutes) + len(sitemap.ComparisonSlugs) + len(refs)
	if len(entries) != want {
		f.Details = append(f.Details, fmt.Sprintf("%d entries, want %d", len(entries), want))
	}
	f.OK = len(f.Details) == 0
	return f
}
