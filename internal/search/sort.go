package search

// Sort keys accepted by the search endpoint. An empty key falls back to
// relevance when a text query is active, otherwise to rating.
const (
	SortRelevance = "relevance"
	SortRating    = "rating"
	SortQuality   = "quality_score"
	SortCreatedAt = "created_at"
)

// Orderings end in multi-key tie-breaks so pagination stays stable when
// primary keys collide. Relevance ordering only exists when a ranked text
// query selected a relevance_score column; without one it degrades to the
// quality ordering.
const (
	orderRating    = "vr.rating DESC, vr.created_at DESC"
	orderQuality   = "vr.quality_score DESC, vr.rating DESC, vr.created_at DESC"
	orderCreatedAt = "vr.created_at DESC, vr.rating DESC"
	orderRelevance = "relevance_score DESC NULLS LAST, vr.rating DESC, vr.created_at DESC"
)

// OrderBy resolves the requested sort key to an ORDER BY column list.
func OrderBy(key string, ranked bool) string {
	switch key {
	case SortRating:
		return orderRating
	case SortQuality:
		return orderQuality
	case SortCreatedAt:
		return orderCreatedAt
	case SortRelevance:
		if ranked {
			return orderRelevance
		}
		return orderQuality
	default:
		if ranked {
			return orderRelevance
		}
		return orderRating
	}
}
