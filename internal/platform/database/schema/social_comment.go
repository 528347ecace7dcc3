package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	AuthorID  string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	AuthorID:  "authorid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
