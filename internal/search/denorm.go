package search

import (
	"strings"

	"github.com/refstash/refstash-go/internal/model"
)

// The search vector is generated from search_tags and search_categories, so
// these builders define exactly what tag/category text is indexable. They run
// inside the same transaction as the association change (repository layer);
// the denormalized columns are never allowed to go stale.

// TagSearchText aggregates tag names into the search_tags document.
func TagSearchText(names []string) string {
	var kept []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

// CategorySearchText aggregates category names and slugs into the
// search_categories document. Slugs are indexed too so hyphenated forms
// ("product-demo") stay searchable.
func CategorySearchText(categories []model.Category) string {
	var parts []string
	for _, c := range categories {
		if name := strings.TrimSpace(c.Name); name != "" {
			parts = append(parts, name)
		}
		if slug := strings.TrimSpace(c.Slug); slug != "" {
			parts = append(parts, slug)
		}
	}
	return strings.Join(parts, " ")
}
