package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildMarksMostSpecificItem(t *testing.T) {
	items := Build("/labs/tools/json-formatter")
	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Href)
		}
	}
	if diff := cmp.Diff([]string{"/labs/tools"}, active); diff != "" {
		t.Fatalf("active items mismatch (-want +got):\n%s", diff)
	}

	for _, it := range Build("/") {
		if it.Active {
			t.Fatalf("no item should be active on home, got %s", it.Href)
		}
	}
	if !Build("/labs")[0].Active {
		t.Fatalf("expected /labs active")
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := Breadcrumbs("/labs/convert/mp4-to-gif", "MP4 to GIF Converter")
	want := []Crumb{
		{Href: "/", Label: "Home"},
		{Href: "/labs", Label: "Labs"},
		{Href: "/labs/convert", Label: "Converters"},
		{Href: "/labs/convert/mp4-to-gif", Label: "MP4 to GIF Converter", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}

	got = Breadcrumbs("/compare/loom-alternative/", "")
	if got[len(got)-1].Label != "Loom alternative" {
		t.Fatalf("unexpected prettified label %q", got[len(got)-1].Label)
	}

	home := Breadcrumbs("", "")
	if len(home) != 1 || !home[0].Active {
		t.Fatalf("unexpected home crumbs %+v", home)
	}
}
