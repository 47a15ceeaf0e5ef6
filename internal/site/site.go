// Package site wires the catalog, metadata, sitemap and content stores into
// the HTTP surface of the labs site.
package site

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"finitefield.org/labs-web/internal/catalog"
	"finitefield.org/labs-web/internal/cms"
	"finitefield.org/labs-web/internal/handlers"
	mw "finitefield.org/labs-web/internal/middleware"
	"finitefield.org/labs-web/internal/render"
	"finitefield.org/labs-web/internal/seo"
	"finitefield.org/labs-web/internal/sitemap"
)

const instrumentationName = "finitefield.org/labs-web/internal/site"

// Options configures a Site. Registry and Content default to the embedded data.
type Options struct {
	Site         seo.Site
	Analytics    handlers.Analytics
	Dev          bool
	TemplatesDir string
	Timeout      time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
	Registry     *catalog.Registry
	Content      *cms.Store
}

// Site serves every page of the labs site.
type Site struct {
	logger    *zap.Logger
	registry  *catalog.Registry
	resolver  *catalog.Resolver
	synth     *seo.Synthesizer
	sitemap   *sitemap.Builder
	content   *cms.Store
	renderer  *render.Renderer
	analytics handlers.Analytics
	timeout   time.Duration

	sitemapGroup singleflight.Group

	tracer   trace.Tracer
	notFound metric.Int64Counter
}

// New loads whatever Options leaves unset and returns a ready Site.
func New(opts Options) (*Site, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		var err error
		if reg, err = catalog.Load(logger); err != nil {
			return nil, fmt.Errorf("site: load catalog: %w", err)
		}
	}
	content := opts.Content
	if content == nil {
		var err error
		if content, err = cms.Load(); err != nil {
			return nil, fmt.Errorf("site: load content: %w", err)
		}
	}
	renderer, err := render.New(render.Options{Dev: opts.Dev, Dir: opts.TemplatesDir, Now: opts.Now})
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}

	synth := seo.NewSynthesizer(opts.Site)
	resolver := catalog.NewResolver(reg, logger)
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"labs.catalog.not_found",
		metric.WithDescription("Catalog lookups that resolved to no definition."),
	)
	if err != nil {
		return nil, fmt.Errorf("site: create not-found counter: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Site{
		logger:   logger,
		registry: reg,
		resolver: resolver,
		synth:    synth,
		sitemap: &sitemap.Builder{
			Origin:  synth.Site().Origin,
			Catalog: resolver,
			Now:     opts.Now,
		},
		content:   content,
		renderer:  renderer,
		analytics: opts.Analytics,
		timeout:   timeout,
		tracer:    otel.Tracer(instrumentationName),
		notFound:  counter,
	}, nil
}

// Resolver exposes the slug resolver.
func (s *Site) Resolver() *catalog.Resolver { return s.resolver }

// Sitemap builds the current sitemap entries.
func (s *Site) Sitemap() []sitemap.Entry { return s.sitemap.Build() }

// Origin returns the normalized site origin.
func (s *Site) Origin() string { return s.synth.Site().Origin }

// StaticParam is one pre-renderable catalog route.
type StaticParam struct {
	Route string `json:"route"`
	Slug  string `json:"slug"`
}

// Route patterns of the catalog pages.
const (
	ToolRoute    = "/labs/tools/{slug}"
	ConvertRoute = "/labs/convert/{slug}"
)

// StaticParams enumerates every catalog page for static generation.
func (s *Site) StaticParams() []StaticParam {
	refs := s.resolver.EnumerateSlugs()
	out := make([]StaticParam, 0, len(refs))
	for _, ref := range refs {
		route := ConvertRoute
		if ref.IsTool {
			route = ToolRoute
		}
		out = append(out, StaticParam{Route: route, Slug: ref.Slug})
	}
	return out
}

// Routes builds the chi router.
func (s *Site) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chiMid.RealIP)
	r.Use(mw.Logger(s.logger))
	r.Use(chiMid.Recoverer)
	r.Use(chiMid.Compress(5))
	r.Use(chiMid.Timeout(s.timeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(render.Assets())))

	r.Get("/", s.home)
	r.Get("/labs", s.labsIndex)
	r.Get("/labs/tools", s.toolsIndex)
	r.Get("/labs/convert", s.convertIndex)
	r.Get(ToolRoute, s.catalogPage(catalog.KindTool))
	r.Get(ConvertRoute, s.catalogPage(catalog.KindConversion))
	r.Get("/compare", s.compareIndex)
	r.Get("/compare/{slug}", s.comparePage)
	r.Get("/privacy", s.legalPage("privacy"))
	r.Get("/terms", s.legalPage("terms"))
	r.Get("/sitemap.xml", s.sitemapXML)
	r.Get("/robots.txt", s.robotsTxt)
	r.NotFound(s.notFoundPage)
	return r
}

// NotFoundPath is a catalog route that never resolves, used to export 404.html.
const NotFoundPath = "/labs/tools/__not-found__"

// ExportPaths lists every path a static export writes: each sitemap page plus
// the sitemap and robots files.
func (s *Site) ExportPaths() []string {
	paths := sitemap.Paths(s.Origin(), s.sitemap.Build())
	return append(paths, "/sitemap.xml", "/robots.txt")
}
