package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a slug does not name any definition.
var ErrNotFound = errors.New("catalog: not found")

// ErrEmptyCatalog aborts loading when no well-formed definition remains.
var ErrEmptyCatalog = errors.New("catalog: no definitions loaded")

// MalformedEntryError describes a source entry missing required fields.
// Such entries are logged and left out of the registry.
type MalformedEntryError struct {
	Kind   Kind
	Slug   string
	Fields []string
}

func (e *MalformedEntryError) Error() string {
	slug := e.Slug
	if slug == "" {
		slug = "<empty>"
	}
	return fmt.Sprintf("catalog: malformed %s entry %q: invalid %s", e.Kind, slug, strings.Join(e.Fields, ", "))
}

// DuplicateSlugError is fatal at load: two definitions would map to one path.
type DuplicateSlugError struct {
	Slug   string
	First  Kind
	Second Kind
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("catalog: duplicate slug %q (%s and %s)", e.Slug, e.First, e.Second)
}
