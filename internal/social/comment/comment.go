package comment

import "time"

// Comment is a text reply by a user attached to a review. It lives and dies
// with its review and its author.
type Comment struct {
	ID        int       `json:"id"`
	ReviewID  int       `json:"review_id"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Input is the write payload for creating or updating a comment.
//
// Text is a pointer on purpose: an empty string is a valid comment body,
// while an absent field is a validation failure.
type Input struct {
	Text *string `json:"text"`
}

// Global field names for validation
const (
	FieldText = "text"
)
