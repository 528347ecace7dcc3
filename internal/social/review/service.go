package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/constants"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
	"github.com/dmkoval/kinoteka/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListReviews(context context.Context, titleID, limit, offset int) ([]*Review, int, error) {
	return service.repo.ListReviews(context, titleID, limit, offset)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	return service.repo.GetReview(context, titleID, reviewID)
}

func (service *Service) CreateReview(context context.Context, titleID int, authorID string, input Input) (*Review, error) {
	if err := validateReview(input); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     input.Text,
		Score:    input.Score,
	}

	// The unique (title, author) index decides the race between two
	// concurrent first reviews; the loser surfaces as CONFLICT. A missing
	// title fails the foreign key and surfaces as NOT_FOUND.
	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int("review_id", review.ID),
		slog.Int("title_id", titleID),
	)
	return review, nil
}

func (service *Service) UpdateReview(context context.Context, titleID, reviewID int, actor *sec.AuthClaims, input Input) (*Review, error) {
	if err := validateReview(input); err != nil {
		return nil, err
	}

	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(review.AuthorID, actor); err != nil {
		return nil, err
	}

	review.Text = input.Text
	review.Score = input.Score

	// CreatedAt is never touched: creation timestamps are immutable.
	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int("review_id", reviewID))
	return review, nil
}

func (service *Service) DeleteReview(context context.Context, titleID, reviewID int, actor *sec.AuthClaims) error {
	review, err := service.repo.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(review.AuthorID, actor); err != nil {
		return err
	}

	// Comments on the review cascade away with it.
	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted", slog.Int("review_id", reviewID))
	return nil
}

// authorizeWrite allows the author plus moderators and admins.
func authorizeWrite(authorID string, actor *sec.AuthClaims) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.UserID == authorID {
		return nil
	}
	if sec.UserRole(actor.Role).AtLeast(sec.RoleModerator) {
		return nil
	}
	return apperr.Forbidden("You can only modify your own reviews")
}

func validateReview(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldText, input.Text)
	validator.Custom(FieldScore,
		input.Score < constants.MinScore || input.Score > constants.MaxScore,
		fmt.Sprintf("Must be between %d and %d", constants.MinScore, constants.MaxScore),
	)

	return validator.Err()
}
