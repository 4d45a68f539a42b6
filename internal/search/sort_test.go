package search

import "testing"

func TestOrderBy(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		ranked bool
		want   string
	}{
		{"rating", SortRating, false, "vr.rating DESC, vr.created_at DESC"},
		{"rating ignores text query", SortRating, true, "vr.rating DESC, vr.created_at DESC"},
		{"quality", SortQuality, false, "vr.quality_score DESC, vr.rating DESC, vr.created_at DESC"},
		{"created_at", SortCreatedAt, false, "vr.created_at DESC, vr.rating DESC"},
		{"relevance with query", SortRelevance, true, "relevance_score DESC NULLS LAST, vr.rating DESC, vr.created_at DESC"},
		{"relevance without query degrades to quality", SortRelevance, false, "vr.quality_score DESC, vr.rating DESC, vr.created_at DESC"},
		{"default with query is relevance", "", true, "relevance_score DESC NULLS LAST, vr.rating DESC, vr.created_at DESC"},
		{"default without query is rating", "", false, "vr.rating DESC, vr.created_at DESC"},
		{"unknown key without query", "banana", false, "vr.rating DESC, vr.created_at DESC"},
		{"unknown key with query", "banana", true, "relevance_score DESC NULLS LAST, vr.rating DESC, vr.created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderBy(tt.key, tt.ranked); got != tt.want {
				t.Errorf("OrderBy(%q, %v) = %q, want %q", tt.key, tt.ranked, got, tt.want)
			}
		})
	}
}
