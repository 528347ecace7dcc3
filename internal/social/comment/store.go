package comment

import "context"

type Repository interface {
	ListComments(context context.Context, titleID, reviewID int, limit, offset int) ([]*Comment, int, error)
	GetComment(context context.Context, reviewID, commentID int) (*Comment, error)
	CreateComment(context context.Context, c *Comment) error
	UpdateComment(context context.Context, c *Comment) error
	DeleteComment(context context.Context, reviewID, commentID int) error
}
