package review

import "context"

type Repository interface {
	ListReviews(context context.Context, titleID int, limit, offset int) ([]*Review, int, error)
	GetReview(context context.Context, titleID, reviewID int) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, titleID, reviewID int) error
}
