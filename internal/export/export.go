// Package export renders the site to a directory of static files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// GenerationError records a page that could not be produced.
type GenerationError struct {
	Path   string
	Status int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("export: %s: unexpected status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("export: %s: %v", e.Path, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Options configures Run.
type Options struct {
	Handler http.Handler
	// Paths are site-relative page paths, e.g. "/" or "/labs/tools/json-formatter".
	Paths  []string
	OutDir string
	// NotFoundPath, when set, is fetched expecting 404 and written to 404.html.
	NotFoundPath string
	Concurrency  int
	Logger       *zap.Logger
}

// Result lists what Run wrote and which pages failed.
type Result struct {
	Written  []string
	Failures []*GenerationError
}

// Err joins the failures, or returns nil when every page was written.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

type job struct {
	path   string
	file   string
	status int
}

// Run fetches every path from the handler and writes the bodies under OutDir.
// A failing page is recorded and the rest continue. The returned error is
// non-nil only when the run itself could not proceed.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Handler == nil {
		return Result{}, errors.New("export: handler is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return Result{}, errors.New("export: output directory is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: create %s: %w", opts.OutDir, err)
	}

	jobs := make([]job, 0, len(opts.Paths)+1)
	seen := map[string]bool{}
	for _, p := range opts.Paths {
		file, err := FileFor(p)
		if err != nil {
			return Result{}, err
		}
		if seen[file] {
			continue
		}
		seen[file] = true
		jobs = append(jobs, job{path: p, file: file, status: http.StatusOK})
	}
	if opts.NotFoundPath != "" {
		jobs = append(jobs, job{path: opts.NotFoundPath, file: "404.html", status: http.StatusNotFound})
	}

	var (
		mu  sync.Mutex
		res Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			genErr := generate(gctx, opts.Handler, opts.OutDir, j)
			mu.Lock()
			defer mu.Unlock()
			if genErr != nil {
				logger.Warn("export page failed", zap.String("path", j.path), zap.Error(genErr))
				res.Failures = append(res.Failures, genErr)
				return nil
			}
			res.Written = append(res.Written, j.file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	sort.Strings(res.Written)
	sort.Slice(res.Failures, func(i, k int) bool { return res.Failures[i].Path < res.Failures[k].Path })
	logger.Info("export finished", zap.Int("written", len(res.Written)), zap.Int("failed", len(res.Failures)))
	return res, nil
}

func generate(ctx context.Context, h http.Handler, outDir string, j job) (genErr *GenerationError) {
	defer func() {
		if rec := recover(); rec != nil {
			genErr = &GenerationError{Path: j.path, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.path, nil)
	if err != nil {
		return &GenerationError{Path: j.path, Err: err}
	}
	w := newBufferWriter()
	h.ServeHTTP(w, req)
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.status != j.status {
		return &GenerationError{Path: j.path, Status: w.status}
	}
	dest := filepath.Join(outDir, filepath.FromSlash(j.file))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &GenerationError{Path: j.path, Err: err}
	}
	if err := os.WriteFile(dest, w.body.Bytes(), 0o644); err != nil {
		return &GenerationError{Path: j.path, Err: err}
	}
	return nil
}

// FileFor maps a site path to its output file: pages become dir/index.html,
// paths with an extension are written as-is.
func FileFor(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("export: path %q must be absolute", p)
	}
	clean := path.Clean(p)
	if clean != strings.TrimSuffix(p, "/") && clean != p {
		return "", fmt.Errorf("export: path %q is not clean", p)
	}
	if clean == "/" {
		return "index.html", nil
	}
	rel := strings.TrimPrefix(clean, "/")
	if path.Ext(rel) != "" {
		return rel, nil
	}
	return rel + "/index.html", nil
}

type bufferWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferWriter() *bufferWriter {
	return &bufferWriter{header: http.Header{}}
}

func (w *bufferWriter) Header() http.Header { return w.header }

func (w *bufferWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
}

func (w *bufferWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}
