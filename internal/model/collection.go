package model

import "time"

// VideoCollection is a named set of video references owned by a user.
// ShareToken makes the collection readable without authentication.
type VideoCollection struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	IsDefault  bool      `json:"is_default"`
	ShareToken string    `json:"share_token"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	VideoReferences []VideoReference `json:"video_references,omitempty"`
}
