package category

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository used to isolate service logic.
type fakeRepository struct {
	categories map[string]*Category
	createErr  error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: map[string]*Category{}}
}

func (f *fakeRepository) ListCategories(_ context.Context, _ Filter, _, _ int) ([]*Category, int, error) {
	out := make([]*Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetCategoryBySlug(_ context.Context, slug string) (*Category, error) {
	c, ok := f.categories[slug]
	if !ok {
		return nil, apperr.NotFound("Category")
	}
	return c, nil
}

func (f *fakeRepository) CreateCategory(_ context.Context, c *Category) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.categories[c.Slug]; exists {
		return apperr.Conflict("Category slug is already taken")
	}
	c.ID = len(f.categories) + 1
	f.categories[c.Slug] = c
	return nil
}

func (f *fakeRepository) UpdateCategory(_ context.Context, currentSlug string, c *Category) error {
	if _, ok := f.categories[currentSlug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(f.categories, currentSlug)
	f.categories[c.Slug] = c
	return nil
}

func (f *fakeRepository) DeleteCategory(_ context.Context, slug string) error {
	if _, ok := f.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(f.categories, slug)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	category := &Category{Name: "Science Fiction"}
	err := service.CreateCategory(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)
}

func TestCreateCategory_KeepsExplicitSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	category := &Category{Name: "Science Fiction", Slug: "sci-fi"}
	err := service.CreateCategory(context.Background(), category)

	require.NoError(t, err)
	assert.Equal(t, "sci-fi", category.Slug)
}

func TestCreateCategory_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		category *Category
		field    string
	}{
		{"missing_name", &Category{Slug: "drama"}, "name"},
		{"bad_slug", &Category{Name: "Drama", Slug: "Drama!"}, "slug"},
		{"slug_too_long", &Category{
			Name: "Drama",
			Slug: "an-extremely-long-slug-that-exceeds-the-fifty-character-limit",
		}, "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			err := service.CreateCategory(context.Background(), tt.category)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestCreateCategory_ConflictPassthrough(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &Category{Name: "Drama"}))

	err := service.CreateCategory(context.Background(), &Category{Name: "Drama"})

	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
}

func TestUpdateCategory_DefaultsSlugToCurrent(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	require.NoError(t, service.CreateCategory(context.Background(), &Category{Name: "Drama"}))

	err := service.UpdateCategory(context.Background(), "drama", &Category{Name: "Dramas"})
	require.NoError(t, err)

	updated, err := service.GetCategory(context.Background(), "drama")
	require.NoError(t, err)
	assert.Equal(t, "Dramas", updated.Name)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.DeleteCategory(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
