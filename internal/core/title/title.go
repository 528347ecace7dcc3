package title

import "time"

// Title is a catalogued work (film, book, album, ...). It carries a weak
// reference to at most one category and any number of genres through the
// core.titlegenre join table.
type Title struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Category    *TagRef   `json:"category"`
	Genres      []TagRef  `json:"genres"`
	Rating      *float64  `json:"rating"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TagRef is the compact representation of a category or genre attached
// to a title.
type TagRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Input is the write payload for creating or updating a title. Category and
// genres are referenced by slug; both must resolve to existing rows.
type Input struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    *string  `json:"category"`
	Genres      []string `json:"genres"`
}

// Filter holds the parameters for a paginated title search.
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string // case-insensitive substring match
	Year         *int
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenres      = "genres"
)
