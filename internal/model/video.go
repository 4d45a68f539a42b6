package model

import (
	"encoding/json"
	"time"
)

// Platform, pacing and production level values accepted by the catalog.
var (
	Platforms        = []string{"youtube", "tiktok", "instagram"}
	Pacings          = []string{"slow", "fast", "mixed"}
	ProductionLevels = []string{"low", "mid", "high"}
)

// VideoReference is the searchable catalog entity.
type VideoReference struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	SourceURL     string          `json:"source_url"`
	PreviewEmbed  *string         `json:"preview_embed,omitempty"`
	PublicSummary *string         `json:"public_summary,omitempty"`
	DetailsPublic json.RawMessage `json:"details_public,omitempty"`
	DurationSec   *int            `json:"duration_sec,omitempty"`

	Platform        *string `json:"platform,omitempty"`
	Pacing          *string `json:"pacing,omitempty"`
	HookID          *int64  `json:"hook_id,omitempty"`
	ProductionLevel *string `json:"production_level,omitempty"`

	HasVisualEffects bool `json:"has_visual_effects"`
	Has3D            bool `json:"has_3d"`
	HasAnimations    bool `json:"has_animations"`
	HasTypography    bool `json:"has_typography"`
	HasSoundDesign   bool `json:"has_sound_design"`

	SearchProfile  string  `json:"search_profile"`
	SearchMetadata *string `json:"search_metadata,omitempty"`
	// Maintained denormalizations; the search vector is generated from them.
	SearchTags       string `json:"-"`
	SearchCategories string `json:"-"`

	QualityScore      int             `json:"quality_score"`
	CompletenessFlags json.RawMessage `json:"completeness_flags,omitempty"`
	Rating            int             `json:"rating"`

	// Populated only on the text-search path.
	RelevanceScore *float64 `json:"relevance_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
	Tutorials  []Tutorial `json:"tutorials"`
	Hook       *Hook      `json:"hook,omitempty"`
}

// PageMeta describes one page of a paginated result set.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// VideoPage is a page of search results plus pagination metadata.
type VideoPage struct {
	Data []VideoReference `json:"data"`
	Meta PageMeta         `json:"meta"`
}

// ValidEnum reports whether v is one of the allowed values.
func ValidEnum(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
