package catalog

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := map[string]string{
		"mp4-to-gif":      "mp4-to-gif",
		"  MP4-To-GIF  ":  "mp4-to-gif",
		"json_formatter":  "json-formatter",
		"Word Counter":    "word-counter",
		"crème--brûlée":   "creme-brulee",
		"-leading-dash-":  "leading-dash",
		"3gp-to-mp4":      "3gp-to-mp4",
		"image.resizer":   "image-resizer",
	}
	for input, want := range tests {
		if got := NormalizeSlug(input); got != want {
			t.Fatalf("NormalizeSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeSlugRejects(t *testing.T) {
	for _, input := range []string{"", "   ", "../etc/passwd", "a/b", "a?b", "---", "Привет"} {
		if got := NormalizeSlug(input); got != "" {
			t.Fatalf("NormalizeSlug(%q) = %q, want empty", input, got)
		}
	}
}

func TestLabels(t *testing.T) {
	if got := CategoryLabel("developer"); got != "Developer" {
		t.Fatalf("CategoryLabel = %q", got)
	}
	if got := CategoryLabel(""); got != "Other" {
		t.Fatalf("CategoryLabel(empty) = %q", got)
	}
	if got := FormatLabel("jpg"); got != "JPG" {
		t.Fatalf("FormatLabel = %q", got)
	}
}
