package category

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

func (service *Service) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, filter, limit, offset)
}

func (service *Service) GetCategory(context context.Context, categorySlug string) (*Category, error) {
	return service.repo.GetCategoryBySlug(context, categorySlug)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	// Derive a slug from the name if the client didn't supply one.
	if category.Slug == "" {
		category.Slug = slug.Truncate(slug.From(category.Name), constants.MaxSlugLength)
	}

	if err := validateCategory(category); err != nil {
		return err
	}

	// Slug uniqueness is enforced by the unique index on core.category;
	// a duplicate insert surfaces as a CONFLICT from the store.
	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) UpdateCategory(context context.Context, currentSlug string, category *Category) error {
	if category.Slug == "" {
		category.Slug = currentSlug
	}

	if err := validateCategory(category); err != nil {
		return err
	}

	if err := service.repo.UpdateCategory(context, currentSlug, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.String("slug", category.Slug))
	return nil
}

func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	// Titles referencing this category keep existing; the database clears
	// their category field (ON DELETE SET NULL).
	if err := service.repo.DeleteCategory(context, categorySlug); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("slug", categorySlug))
	return nil
}

func validateCategory(category *Category) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, constants.MaxNameLength)
	validator.Slug(FieldSlug, category.Slug).MaxLen(FieldSlug, category.Slug, constants.MaxSlugLength)

	return validator.Err()
}
