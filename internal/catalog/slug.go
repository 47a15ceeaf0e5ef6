package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	dashRun      = regexp.MustCompile(`-+`)
	titleCaser   = cases.Title(language.English)
	markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// ValidSlug reports whether s is already in canonical slug form.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// NormalizeSlug maps raw path input onto the canonical slug form. It returns ""
// when nothing usable remains or the input tries to escape its path segment.
func NormalizeSlug(input string) string {
	s := strings.TrimSpace(input)
	if s == "" || strings.ContainsAny(s, "/\\?#") || strings.Contains(s, "..") {
		return ""
	}
	if stripped, _, err := transform.String(markStripper, s); err == nil {
		s = stripped
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteByte('-')
		}
	}
	s = strings.Trim(dashRun.ReplaceAllString(b.String(), "-"), "-")
	if !ValidSlug(s) {
		return ""
	}
	return s
}

// CategoryLabel renders a category key for display, e.g. "developer" -> "Developer".
func CategoryLabel(category string) string {
	category = strings.TrimSpace(strings.ReplaceAll(category, "-", " "))
	if category == "" {
		return "Other"
	}
	return titleCaser.String(category)
}

// FormatLabel renders a file format key for display, e.g. "jpg" -> "JPG".
func FormatLabel(format string) string {
	return strings.ToUpper(strings.TrimSpace(format))
}
