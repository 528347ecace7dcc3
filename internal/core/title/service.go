package title

import (
	"context"
	"log/slog"

	"github.com/dmkoval/kinoteka/internal/platform/constants"
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

func (service *Service) ListTitles(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.ListTitles(context, filter, limit, offset)
}

func (service *Service) GetTitle(context context.Context, id int) (*Title, error) {
	return service.repo.GetTitle(context, id)
}

func (service *Service) CreateTitle(context context.Context, input Input) (*Title, error) {
	if err := validateTitle(input); err != nil {
		return nil, err
	}

	// Category and genre slugs are resolved inside the store transaction;
	// an unknown slug comes back as NOT_FOUND.
	title, err := service.repo.CreateTitle(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int("title_id", title.ID),
		slog.String("name", title.Name),
	)
	return title, nil
}

func (service *Service) UpdateTitle(context context.Context, id int, input Input) (*Title, error) {
	if err := validateTitle(input); err != nil {
		return nil, err
	}

	// The genre list fully replaces the existing set.
	title, err := service.repo.UpdateTitle(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int("title_id", id))
	return title, nil
}

func (service *Service) DeleteTitle(context context.Context, id int) error {
	// Reviews of the title, and their comments, cascade away with it.
	if err := service.repo.DeleteTitle(context, id); err != nil {
		return err
	}

	service.logger.Warn("title_deleted", slog.Int("title_id", id))
	return nil
}

func validateTitle(input Input) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, constants.MaxNameLength)

	// The publication year is deliberately unbounded; only its presence as an
	// integer is enforced, which the JSON decoder already guarantees.

	if input.Category != nil {
		validator.Slug(FieldCategory, *input.Category)
	}
	for _, genreSlug := range input.Genres {
		validator.Slug(FieldGenres, genreSlug)
	}

	return validator.Err()
}
