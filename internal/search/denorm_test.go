package search

import (
	"sort"
	"strings"
	"testing"

	"github.com/refstash/refstash-go/internal/model"
)

func TestTagSearchText(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"cinematic"}, "cinematic"},
		{"multiple", []string{"cinematic", "fast cuts"}, "cinematic fast cuts"},
		{"drops blanks", []string{"a", "", "  ", "b"}, "a b"},
		{"trims", []string{" neon "}, "neon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagSearchText(tt.names); got != tt.want {
				t.Errorf("TagSearchText(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}

// Attach(T1), attach(T2), detach(T1) must leave the same searchable words as
// attach(T2) alone: the document is a function of the current set only.
func TestTagSearchText_OrderIndependentContent(t *testing.T) {
	afterDetach := TagSearchText([]string{"retro"}) // T1 removed
	directly := TagSearchText([]string{"retro"})    // T2 attached alone
	if afterDetach != directly {
		t.Fatalf("detach path %q != direct path %q", afterDetach, directly)
	}

	a := strings.Fields(TagSearchText([]string{"retro", "vhs"}))
	b := strings.Fields(TagSearchText([]string{"vhs", "retro"}))
	sort.Strings(a)
	sort.Strings(b)
	if strings.Join(a, " ") != strings.Join(b, " ") {
		t.Errorf("word sets differ by insertion order: %v vs %v", a, b)
	}
}

func TestCategorySearchText(t *testing.T) {
	cats := []model.Category{
		{Name: "Advertising", Slug: "advertising"},
		{Name: "Product Demo", Slug: "product-demo"},
	}
	got := CategorySearchText(cats)
	want := "Advertising advertising Product Demo product-demo"
	if got != want {
		t.Errorf("CategorySearchText = %q, want %q", got, want)
	}

	if got := CategorySearchText(nil); got != "" {
		t.Errorf("empty categories = %q, want empty", got)
	}
}
