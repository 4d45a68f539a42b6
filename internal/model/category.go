package model

import "time"

// Category is a node in the catalog's category tree. ParentID nil means root.
// The parent link graph must stay acyclic; the search-side expander defends
// against cycles anyway.
type Category struct {
	ID           int64     `json:"id"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Children []Category `json:"children,omitempty"`
}
