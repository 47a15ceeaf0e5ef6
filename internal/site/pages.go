package site

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/labs-web/internal/catalog"
	"finitefield.org/labs-web/internal/cms"
	"finitefield.org/labs-web/internal/format"
	"finitefield.org/labs-web/internal/handlers"
	"finitefield.org/labs-web/internal/nav"
	"finitefield.org/labs-web/internal/observability"
	"finitefield.org/labs-web/internal/seo"
	"finitefield.org/labs-web/internal/sitemap"
)

const (
	homeTitle       = "Free, Private Browser Tools and Converters"
	homeDescription = "Convert video, audio, images and documents and use developer utilities right in your browser. No uploads, no sign-up."
)

func (s *Site) page(r *http.Request, meta seo.Meta, content string) handlers.PageData {
	p := handlers.NewPageData(s.synth.Site().Name, r.URL.Path, meta, s.analytics)
	p.Content = content
	return p
}

func (s *Site) write(w http.ResponseWriter, r *http.Request, status int, data handlers.PageData) {
	if err := s.renderer.HTML(w, status, data); err != nil {
		observability.FromContext(r.Context()).Error("render page", zap.String("content", data.Content), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) home(w http.ResponseWriter, r *http.Request) {
	meta := s.synth.Page(homeTitle, homeDescription, "/")
	p := s.page(r, meta, "home")
	view := &handlers.HomeView{
		Headline:  s.synth.Site().Name,
		Tagline:   homeDescription,
		ToolCount: format.Count(s.registry.Len()),
	}
	for _, slug := range s.resolver.PopularSlugs() {
		if def, ok := s.registry.BySlug(slug); ok {
			view.Popular = append(view.Popular, handlers.Link{Href: catalog.Path(def), Title: def.Base().Title, Description: def.Base().Description})
		}
	}
	for _, c := range s.registry.Categories(catalog.KindConversion) {
		view.Categories = append(view.Categories, handlers.Link{Href: "/labs/convert#" + c, Title: catalog.CategoryLabel(c) + " converters"})
	}
	for _, c := range s.registry.Categories(catalog.KindTool) {
		view.Categories = append(view.Categories, handlers.Link{Href: "/labs/tools#" + c, Title: catalog.CategoryLabel(c) + " tools"})
	}
	view.Compare = handlers.BuildCompareIndex(s.content).Links
	p.Home = view
	origin := s.synth.URL("/")
	p.AddJSONLD(
		seo.Organization(s.synth.Site().Name, origin, s.logoURL()),
		seo.WebSite(s.synth.Site().Name, origin),
	)
	s.write(w, r, http.StatusOK, p)
}

func (s *Site) logoURL() string {
	if img := s.synth.Site().Image; img != "" {
		return s.synth.URL(img)
	}
	return ""
}

func (s *Site) index(w http.ResponseWriter, r *http.Request, title, description string, view handlers.IndexView) {
	p := s.page(r, s.synth.Page(title, description, r.URL.Path), "index")
	p.Breadcrumbs = nav.Breadcrumbs(r.URL.Path, "")
	p.Index = &view
	urls := make([]string, 0, len(view.Popular))
	for _, l := range view.Popular {
		urls = append(urls, s.synth.URL(l.Href))
	}
	if len(urls) > 0 {
		p.AddJSONLD(seo.ItemList(view.Heading, urls))
	}
	s.write(w, r, http.StatusOK, p)
}

func (s *Site) labsIndex(w http.ResponseWriter, r *http.Request) {
	s.index(w, r, "Labs - Free Private Browser Tools",
		"Every tool and converter in one place. Everything runs locally in your browser.",
		handlers.BuildLabsIndex(s.registry, s.resolver.PopularSlugs()))
}

func (s *Site) toolsIndex(w http.ResponseWriter, r *http.Request) {
	s.index(w, r, "Browser Tools - Free, Private, No Upload",
		"Developer, text, image and media utilities that never upload your data.",
		handlers.BuildToolsIndex(s.registry, s.resolver.IsPopular))
}

func (s *Site) convertIndex(w http.ResponseWriter, r *http.Request) {
	s.index(w, r, "File Converters - Free, Private, No Upload",
		"Convert video, audio, image and document formats locally in your browser.",
		handlers.BuildConvertIndex(s.registry, s.resolver.IsPopular))
}

// catalogPage serves the page of one catalog variant. A slug that belongs to
// the other variant, or that only matches after normalization, is redirected
// to its canonical path.
func (s *Site) catalogPage(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "slug")
		ctx, span := s.tracer.Start(r.Context(), "catalog.page",
			trace.WithAttributes(attribute.String("catalog.slug", raw), attribute.String("catalog.kind", kind.String())))
		defer span.End()
		r = r.WithContext(ctx)

		def, err := s.resolver.Resolve(raw)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				s.recordNotFound(ctx, kind, raw)
				span.SetAttributes(attribute.Bool("catalog.found", false))
				s.notFoundPage(w, r)
				return
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		span.SetAttributes(attribute.Bool("catalog.found", true))

		if canonical := catalog.Path(def); def.Kind() != kind || def.Base().Slug != raw {
			http.Redirect(w, r, canonical, http.StatusMovedPermanently)
			return
		}
		s.write(w, r, http.StatusOK, s.catalogPageData(r, def))
	}
}

func (s *Site) catalogPageData(r *http.Request, def catalog.Definition) handlers.PageData {
	meta := s.synth.Synthesize(def)
	p := s.page(r, meta, "tool")
	p.Breadcrumbs = nav.Breadcrumbs(catalog.Path(def), def.Base().Title)
	view := handlers.BuildToolView(def, s.registry, s.resolver.IsPopular(def.Base().Slug))
	p.Tool = &view
	p.AddJSONLD(seo.SoftwareApplication(def, meta.Canonical), seo.FAQPage(def))
	return p
}

func (s *Site) recordNotFound(ctx context.Context, kind catalog.Kind, slug string) {
	s.notFound.Add(ctx, 1, metric.WithAttributes(attribute.String("catalog.kind", kind.String())))
	observability.FromContext(ctx).Info("catalog slug not found", zap.String("slug", slug), zap.Stringer("kind", kind))
}

func (s *Site) notFoundPage(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, s.synth.NotFound(), "notfound")
	s.write(w, r, http.StatusNotFound, p)
}

func (s *Site) compareIndex(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, s.synth.Page("Compare Labs with Other Screen Recorders",
		"Side-by-side comparisons of Labs with popular screen recording and editing tools.", "/compare"), "compare_index")
	p.Breadcrumbs = nav.Breadcrumbs(r.URL.Path, "")
	view := handlers.BuildCompareIndex(s.content)
	p.Compare = &view
	s.write(w, r, http.StatusOK, p)
}

func (s *Site) comparePage(w http.ResponseWriter, r *http.Request) {
	slug := strings.ToLower(chi.URLParam(r, "slug"))
	page, err := s.content.Get(cms.KindCompare, slug)
	if err != nil {
		s.notFoundPage(w, r)
		return
	}
	path := sitemap.ComparePath(page.Slug)
	p := s.page(r, s.synth.Page(page.SEO.Title, page.SEO.Description, path), "compare")
	p.Breadcrumbs = nav.Breadcrumbs(path, page.Title)
	view := handlers.BuildContentView(page)
	p.Page = &view
	p.AddJSONLD(seo.BreadcrumbList(s.breadcrumbItems(p.Breadcrumbs)))
	s.write(w, r, http.StatusOK, p)
}

func (s *Site) legalPage(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.content.Get(cms.KindLegal, slug)
		if err != nil {
			s.notFoundPage(w, r)
			return
		}
		p := s.page(r, s.synth.Page(page.SEO.Title, page.SEO.Description, "/"+slug), "page")
		view := handlers.BuildContentView(page)
		p.Page = &view
		s.write(w, r, http.StatusOK, p)
	}
}

func (s *Site) breadcrumbItems(crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: s.synth.URL(c.Href)})
	}
	return items
}

func (s *Site) sitemapXML(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "sitemap.build")
	defer span.End()

	v, err, shared := s.sitemapGroup.Do("sitemap", func() (any, error) {
		return sitemap.Marshal(s.sitemap.Build())
	})
	span.SetAttributes(attribute.Bool("sitemap.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.FromContext(ctx).Error("build sitemap", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v.([]byte))
}

func (s *Site) robotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sitemap.Robots(s.Origin())))
}
