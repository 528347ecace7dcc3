package category

import "time"

// Category is a named classification tag for titles (film, book, music, ...).
//
// A title references at most one category, and the reference is weak: deleting
// a category clears the field on its titles instead of deleting them.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Filter holds the parameters for a paginated category search.
type Filter struct {
	Search string // case-insensitive substring match against name
}

// Global field names for validation
const (
	FieldName = "name"
	FieldSlug = "slug"
)
