package catalog

// Kind discriminates the two definition variants.
type Kind int

const (
	KindConversion Kind = iota + 1
	KindTool
)

func (k Kind) String() string {
	switch k {
	case KindConversion:
		return "conversion"
	case KindTool:
		return "tool"
	default:
		return "unknown"
	}
}

// Route prefixes for the two variants.
const (
	ToolsPrefix   = "/labs/tools/"
	ConvertPrefix = "/labs/convert/"
)

// FAQ is one question/answer pair shown on a catalog page.
type FAQ struct {
	Question string
	Answer   string
}

// Entry carries the fields shared by every definition.
type Entry struct {
	Slug           string
	Title          string
	Description    string
	SEOTitle       string
	SEODescription string
	FAQ            []FAQ
}

// Definition is a catalog record. It is implemented only by Conversion and Tool,
// so a type switch over those two is exhaustive.
type Definition interface {
	Base() Entry
	Kind() Kind
	definition()
}

// Conversion is a format-to-format converter page.
type Conversion struct {
	Entry
	From     string
	To       string
	Category string
}

func (c Conversion) Base() Entry { return c.Entry }
func (Conversion) Kind() Kind     { return KindConversion }
func (Conversion) definition()    {}

// Tool is a standalone utility page.
type Tool struct {
	Entry
	Category string
	Popular  bool
}

func (t Tool) Base() Entry { return t.Entry }
func (Tool) Kind() Kind     { return KindTool }
func (Tool) definition()    {}

// IsTool reports whether def routes under /labs/tools.
func IsTool(def Definition) bool {
	_, ok := def.(Tool)
	return ok
}

// Path returns the route path for def, or "" for a nil definition.
func Path(def Definition) string {
	switch d := def.(type) {
	case Tool:
		return ToolsPrefix + d.Slug
	case Conversion:
		return ConvertPrefix + d.Slug
	default:
		return ""
	}
}

// SlugRef is one element of the static-generation enumeration.
type SlugRef struct {
	Slug   string `json:"slug"`
	IsTool bool   `json:"isTool"`
}

// Path routes the reference to its variant prefix.
func (r SlugRef) Path() string {
	if r.IsTool {
		return ToolsPrefix + r.Slug
	}
	return ConvertPrefix + r.Slug
}

func refOf(def Definition) SlugRef {
	return SlugRef{Slug: def.Base().Slug, IsTool: IsTool(def)}
}
