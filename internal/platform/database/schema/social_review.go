package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	TitleID   string
	AuthorID  string
	Text      string
	Score     string
	CreatedAt string
	UpdatedAt string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	TitleID:   "titleid",
	AuthorID:  "authorid",
	Text:      "text",
	Score:     "score",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
