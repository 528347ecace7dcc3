package review

import "time"

// Review is a scored text opinion by a user about a title.
//
// A user may author at most one review per title; the (title, author) pair is
// unique at the storage layer. Reviews live and die with their title and
// their author.
type Review struct {
	ID        int       `json:"id"`
	TitleID   int       `json:"title_id"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Input is the write payload for creating or updating a review.
type Input struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Global field names for validation
const (
	FieldText  = "text"
	FieldScore = "score"
)
