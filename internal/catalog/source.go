package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Embedded catalog source: conversion families, tool listing and popular picks.
//
//go:embed data/*.yaml
var dataFS embed.FS

const (
	conversionsFile = "conversions.yaml"
	toolsFile       = "tools.yaml"
	popularFile     = "popular.yaml"
)

type faqRecord struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type copyRecord struct {
	Title          string      `yaml:"title"`
	Description    string      `yaml:"description"`
	SEOTitle       string      `yaml:"seo_title"`
	SEODescription string      `yaml:"seo_description"`
	FAQ            []faqRecord `yaml:"faq"`
}

type familyRecord struct {
	Category   string   `yaml:"category"`
	Formats    []string `yaml:"formats"`
	DecodeOnly []string `yaml:"decode_only"`
}

type bridgeRecord struct {
	Category  string   `yaml:"category"`
	From      string   `yaml:"from"`
	To        string   `yaml:"to"`
	ToFormats []string `yaml:"to_formats"`
}

type conversionRecord struct {
	Slug           string      `yaml:"slug"`
	From           string      `yaml:"from"`
	To             string      `yaml:"to"`
	Category       string      `yaml:"category"`
	Title          string      `yaml:"title"`
	Description    string      `yaml:"description"`
	SEOTitle       string      `yaml:"seo_title"`
	SEODescription string      `yaml:"seo_description"`
	FAQ            []faqRecord `yaml:"faq"`
}

type conversionSource struct {
	Copy        copyRecord             `yaml:"copy"`
	CategoryFAQ map[string][]faqRecord `yaml:"category_faq"`
	Families    []familyRecord         `yaml:"families"`
	Bridges     []bridgeRecord         `yaml:"bridges"`
	Overrides   []conversionRecord     `yaml:"overrides"`
}

type toolRecord struct {
	Slug           string      `yaml:"slug"`
	Title          string      `yaml:"title"`
	Category       string      `yaml:"category"`
	Popular        bool        `yaml:"popular"`
	Description    string      `yaml:"description"`
	SEOTitle       string      `yaml:"seo_title"`
	SEODescription string      `yaml:"seo_description"`
	FAQ            []faqRecord `yaml:"faq"`
}

type toolSource struct {
	Tools []toolRecord `yaml:"tools"`
}

type popularSource struct {
	Conversions []string `yaml:"conversions"`
}

// DataFS exposes the embedded catalog source files.
func DataFS() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load builds the registry from the embedded source data.
func Load(logger *zap.Logger) (*Registry, error) {
	return LoadFS(DataFS(), logger)
}

// LoadFS builds the registry from conversions.yaml, tools.yaml and popular.yaml in fsys.
func LoadFS(fsys fs.FS, logger *zap.Logger) (*Registry, error) {
	var conv conversionSource
	if err := decodeYAML(fsys, conversionsFile, &conv); err != nil {
		return nil, err
	}
	var tools toolSource
	if err := decodeYAML(fsys, toolsFile, &tools); err != nil {
		return nil, err
	}
	var popular popularSource
	if err := decodeYAML(fsys, popularFile, &popular); err != nil {
		return nil, err
	}

	defs := expandConversions(conv)
	for _, t := range tools.Tools {
		defs = append(defs, Tool{
			Entry: Entry{
				Slug:           strings.TrimSpace(t.Slug),
				Title:          strings.TrimSpace(t.Title),
				Description:    strings.TrimSpace(t.Description),
				SEOTitle:       strings.TrimSpace(t.SEOTitle),
				SEODescription: strings.TrimSpace(t.SEODescription),
				FAQ:            toFAQ(t.FAQ),
			},
			Category: strings.TrimSpace(t.Category),
			Popular:  t.Popular,
		})
	}
	return New(defs, popular.Conversions, logger)
}

func decodeYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

// expandConversions turns format families and bridges into one definition per
// ordered format pair, then applies per-slug overrides.
func expandConversions(src conversionSource) []Definition {
	var out []Conversion
	families := make(map[string]familyRecord, len(src.Families))
	for _, fam := range src.Families {
		families[fam.Category] = fam
		targets := encodable(fam)
		for _, from := range fam.Formats {
			for _, to := range targets {
				if from == to {
					continue
				}
				out = append(out, src.generate(from, to, fam.Category))
			}
		}
	}
	for _, br := range src.Bridges {
		fromFam, ok := families[br.From]
		if !ok {
			continue
		}
		targets := br.ToFormats
		if toFam, ok := families[br.To]; ok && len(targets) == 0 {
			targets = encodable(toFam)
		}
		category := br.Category
		if category == "" {
			category = br.To
		}
		for _, from := range fromFam.Formats {
			for _, to := range targets {
				if from == to {
					continue
				}
				out = append(out, src.generate(from, to, category))
			}
		}
	}

	index := make(map[string]int, len(out))
	for i, c := range out {
		if _, ok := index[c.Slug]; !ok {
			index[c.Slug] = i
		}
	}
	for _, ov := range src.Overrides {
		slug := strings.TrimSpace(ov.Slug)
		if slug == "" && ov.From != "" && ov.To != "" {
			slug = conversionSlug(ov.From, ov.To)
		}
		if i, ok := index[slug]; ok {
			out[i] = applyOverride(out[i], ov)
			continue
		}
		base := src.generate(ov.From, ov.To, ov.Category)
		base.Slug = slug
		index[slug] = len(out)
		out = append(out, applyOverride(base, ov))
	}

	defs := make([]Definition, 0, len(out))
	for _, c := range out {
		defs = append(defs, c)
	}
	return defs
}

func (src conversionSource) generate(from, to, category string) Conversion {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	r := strings.NewReplacer(
		"{FROM}", FormatLabel(from),
		"{TO}", FormatLabel(to),
		"{from}", from,
		"{to}", to,
		"{CATEGORY}", strings.ToLower(CategoryLabel(category)),
	)
	faqs := make([]FAQ, 0, len(src.Copy.FAQ)+len(src.CategoryFAQ[category]))
	for _, f := range append(append([]faqRecord{}, src.Copy.FAQ...), src.CategoryFAQ[category]...) {
		faqs = append(faqs, FAQ{Question: r.Replace(f.Question), Answer: r.Replace(f.Answer)})
	}
	return Conversion{
		Entry: Entry{
			Slug:           conversionSlug(from, to),
			Title:          r.Replace(src.Copy.Title),
			Description:    r.Replace(src.Copy.Description),
			SEOTitle:       r.Replace(src.Copy.SEOTitle),
			SEODescription: r.Replace(src.Copy.SEODescription),
			FAQ:            faqs,
		},
		From:     from,
		To:       to,
		Category: category,
	}
}

func applyOverride(c Conversion, ov conversionRecord) Conversion {
	if v := strings.TrimSpace(ov.Title); v != "" {
		c.Title = v
	}
	if v := strings.TrimSpace(ov.Description); v != "" {
		c.Description = v
	}
	if v := strings.TrimSpace(ov.SEOTitle); v != "" {
		c.SEOTitle = v
	}
	if v := strings.TrimSpace(ov.SEODescription); v != "" {
		c.SEODescription = v
	}
	if v := strings.TrimSpace(ov.Category); v != "" {
		c.Category = v
	}
	// an explicit empty list clears the generated FAQ
	if ov.FAQ != nil {
		c.FAQ = toFAQ(ov.FAQ)
	}
	return c
}

func encodable(fam familyRecord) []string {
	skip := make(map[string]struct{}, len(fam.DecodeOnly))
	for _, f := range fam.DecodeOnly {
		skip[f] = struct{}{}
	}
	out := make([]string, 0, len(fam.Formats))
	for _, f := range fam.Formats {
		if _, ok := skip[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}

func conversionSlug(from, to string) string {
	return strings.ToLower(strings.TrimSpace(from)) + "-to-" + strings.ToLower(strings.TrimSpace(to))
}

func toFAQ(in []faqRecord) []FAQ {
	if len(in) == 0 {
		return nil
	}
	out := make([]FAQ, 0, len(in))
	for _, f := range in {
		out = append(out, FAQ{Question: strings.TrimSpace(f.Question), Answer: strings.TrimSpace(f.Answer)})
	}
	return out
}
