package comment

import (
	"context"
	"log/slog"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
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

func (service *Service) ListComments(context context.Context, titleID, reviewID, limit, offset int) ([]*Comment, int, error) {
	return service.repo.ListComments(context, titleID, reviewID, limit, offset)
}

func (service *Service) GetComment(context context.Context, reviewID, commentID int) (*Comment, error) {
	return service.repo.GetComment(context, reviewID, commentID)
}

func (service *Service) CreateComment(context context.Context, reviewID int, authorID string, input Input) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Present(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     *input.Text,
	}

	// A missing review fails the foreign key and surfaces as NOT_FOUND.
	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int("comment_id", comment.ID),
		slog.Int("review_id", reviewID),
	)
	return comment, nil
}

func (service *Service) UpdateComment(context context.Context, reviewID, commentID int, actor *sec.AuthClaims, input Input) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Present(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment, err := service.repo.GetComment(context, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(comment.AuthorID, actor); err != nil {
		return nil, err
	}

	comment.Text = *input.Text

	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int("comment_id", commentID))
	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, reviewID, commentID int, actor *sec.AuthClaims) error {
	comment, err := service.repo.GetComment(context, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(comment.AuthorID, actor); err != nil {
		return err
	}

	if err := service.repo.DeleteComment(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted", slog.Int("comment_id", commentID))
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
	return apperr.Forbidden("You can only modify your own comments")
}
