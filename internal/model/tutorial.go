package model

import "time"

// Tutorial links learning material to a video reference. A row must carry
// either TutorialURL or a complete (Label, StartSec, EndSec) segment.
type Tutorial struct {
	ID               int64     `json:"id"`
	VideoReferenceID int64     `json:"video_reference_id"`
	TutorialURL      *string   `json:"tutorial_url,omitempty"`
	Label            *string   `json:"label,omitempty"`
	StartSec         *int      `json:"start_sec,omitempty"`
	EndSec           *int      `json:"end_sec,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Valid reports whether the tutorial satisfies the URL-or-segment invariant.
func (t Tutorial) Valid() bool {
	hasURL := t.TutorialURL != nil && *t.TutorialURL != ""
	hasSegment := t.Label != nil && *t.Label != "" && t.StartSec != nil && t.EndSec != nil
	return hasURL || hasSegment
}
