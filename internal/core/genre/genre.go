package genre

import "time"

// Genre is a named tag attachable to titles. A title may carry any number of
// genres via the core.titlegenre join table; deleting a genre detaches it
// from its titles without deleting them.
type Genre struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Filter holds the parameters for a paginated genre search.
type Filter struct {
	Search string // case-insensitive substring match against name
}

// Global field names for validation
const (
	FieldName = "name"
	FieldSlug = "slug"
)
