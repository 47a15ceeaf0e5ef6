// Package cms loads the markdown pages that sit beside the catalog: the
// comparison pages and the legal pages. Content is embedded and parsed once.
package cms

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Page kinds.
const (
	KindCompare = "compare"
	KindLegal   = "legal"
)

// ErrNotFound reports a page that does not exist.
var ErrNotFound = errors.New("cms: not found")

//go:embed content
var embedded embed.FS

// Page is a static page sourced from markdown with YAML front matter.
type Page struct {
	Kind          string
	Slug          string
	Title         string
	Summary       string
	Body          string
	EffectiveDate time.Time
	UpdatedAt     time.Time
	SEO           SEO
	// Comparison pages only.
	Competitor string
	Verdict    string
	Rows       []Row
}

// SEO holds optional metadata overrides.
type SEO struct {
	Title       string
	Description string
}

// Row is one line of a comparison table.
type Row struct {
	Feature string
	Ours    string
	Theirs  string
}

type frontMatter struct {
	Title         string `yaml:"title"`
	Summary       string `yaml:"summary"`
	EffectiveDate string `yaml:"effective_date"`
	UpdatedAt     string `yaml:"updated_at"`
	Competitor    string `yaml:"competitor"`
	Verdict       string `yaml:"verdict"`
	SEO           struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
	Rows []struct {
		Feature string `yaml:"feature"`
		Ours    string `yaml:"ours"`
		Theirs  string `yaml:"theirs"`
	} `yaml:"rows"`
}

// Store holds every parsed page, keyed by kind then slug.
type Store struct {
	pages map[string]map[string]Page
}

// Load parses the embedded content.
func Load() (*Store, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, fmt.Errorf("cms: %w", err)
	}
	return LoadFS(sub)
}

// LoadFS parses every {kind}/{slug}.md file under fsys.
func LoadFS(fsys fs.FS) (*Store, error) {
	s := &Store{pages: map[string]map[string]Page{}}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		kind := path.Dir(p)
		if kind == "." || strings.Contains(kind, "/") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		page, err := parsePage(kind, strings.TrimSuffix(path.Base(p), ".md"), string(data))
		if err != nil {
			return err
		}
		if s.pages[kind] == nil {
			s.pages[kind] = map[string]Page{}
		}
		s.pages[kind][page.Slug] = page
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cms: load: %w", err)
	}
	return s, nil
}

// Get returns the page of kind with slug.
func (s *Store) Get(kind, slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if s == nil || slug == "" {
		return Page{}, ErrNotFound
	}
	page, ok := s.pages[kind][slug]
	if !ok {
		return Page{}, ErrNotFound
	}
	return clonePage(page), nil
}

// List returns every page of kind ordered by title.
func (s *Store) List(kind string) []Page {
	if s == nil {
		return nil
	}
	out := make([]Page, 0, len(s.pages[kind]))
	for _, p := range s.pages[kind] {
		out = append(out, clonePage(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title == out[j].Title {
			return out[i].Slug < out[j].Slug
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func parsePage(kind, slug, src string) (Page, error) {
	fm, body := splitFrontMatter(src)
	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("parse front matter %s/%s: %w", kind, slug, err)
		}
	}
	page := Page{
		Kind:          kind,
		Slug:          slug,
		Title:         strings.TrimSpace(front.Title),
		Summary:       strings.TrimSpace(front.Summary),
		Body:          body,
		EffectiveDate: parseContentDate(front.EffectiveDate),
		UpdatedAt:     parseContentDate(front.UpdatedAt),
		Competitor:    strings.TrimSpace(front.Competitor),
		Verdict:       strings.TrimSpace(front.Verdict),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	for _, r := range front.Rows {
		page.Rows = append(page.Rows, Row{
			Feature: strings.TrimSpace(r.Feature),
			Ours:    strings.TrimSpace(r.Ours),
			Theirs:  strings.TrimSpace(r.Theirs),
		})
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	if page.SEO.Title == "" {
		page.SEO.Title = page.Title
	}
	if page.SEO.Description == "" {
		page.SEO.Description = page.Summary
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func clonePage(src Page) Page {
	cp := src
	cp.Rows = append([]Row(nil), src.Rows...)
	return cp
}
