package genre

import (
	"context"
	"log/slog"

	"github.com/dmkoval/kinoteka/internal/platform/constants"
	"github.com/dmkoval/kinoteka/internal/platform/validate"
	"github.com/dmkoval/kinoteka/pkg/slug"
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

func (service *Service) ListGenres(context context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, filter, limit, offset)
}

func (service *Service) GetGenre(context context.Context, genreSlug string) (*Genre, error) {
	return service.repo.GetGenreBySlug(context, genreSlug)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	if genre.Slug == "" {
		genre.Slug = slug.Truncate(slug.From(genre.Name), constants.MaxSlugLength)
	}

	if err := validateGenre(genre); err != nil {
		return err
	}

	// Duplicate slugs fail at the unique index and surface as CONFLICT.
	if err := service.repo.CreateGenre(context, genre); err != nil {
		return err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) UpdateGenre(context context.Context, currentSlug string, genre *Genre) error {
	if genre.Slug == "" {
		genre.Slug = currentSlug
	}

	if err := validateGenre(genre); err != nil {
		return err
	}

	if err := service.repo.UpdateGenre(context, currentSlug, genre); err != nil {
		return err
	}

	service.logger.Info("genre_updated", slog.String("slug", genre.Slug))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, genreSlug string) error {
	// Join rows in core.titlegenre go away with the genre (ON DELETE CASCADE
	// on the join table only); titles themselves are untouched.
	if err := service.repo.DeleteGenre(context, genreSlug); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("slug", genreSlug))
	return nil
}

func validateGenre(genre *Genre) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, constants.MaxNameLength)
	validator.Slug(FieldSlug, genre.Slug).MaxLen(FieldSlug, genre.Slug, constants.MaxSlugLength)

	return validator.Err()
}
