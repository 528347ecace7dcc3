package title

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/pkg/pointer"
)

// fakeRepository records the last write so tests can observe what reached
// the storage layer.
type fakeRepository struct {
	titles      map[int]*Title
	nextID      int
	lastInput   Input
	knownSlugs  map[string]bool
	knownGenres map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		titles:      map[int]*Title{},
		nextID:      1,
		knownSlugs:  map[string]bool{"film": true, "book": true},
		knownGenres: map[string]bool{"drama": true, "comedy": true},
	}
}

func (f *fakeRepository) ListTitles(_ context.Context, _ Filter, _, _ int) ([]*Title, int, error) {
	out := make([]*Title, 0, len(f.titles))
	for _, title := range f.titles {
		out = append(out, title)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetTitle(_ context.Context, id int) (*Title, error) {
	title, ok := f.titles[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}
	return title, nil
}

func (f *fakeRepository) CreateTitle(_ context.Context, input Input) (*Title, error) {
	if err := f.resolve(input); err != nil {
		return nil, err
	}
	f.lastInput = input

	title := f.materialize(f.nextID, input)
	f.titles[title.ID] = title
	f.nextID++
	return title, nil
}

func (f *fakeRepository) UpdateTitle(_ context.Context, id int, input Input) (*Title, error) {
	if _, ok := f.titles[id]; !ok {
		return nil, apperr.NotFound("Title")
	}
	if err := f.resolve(input); err != nil {
		return nil, err
	}
	f.lastInput = input

	title := f.materialize(id, input)
	f.titles[id] = title
	return title, nil
}

func (f *fakeRepository) DeleteTitle(_ context.Context, id int) error {
	if _, ok := f.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeRepository) resolve(input Input) error {
	if input.Category != nil && !f.knownSlugs[*input.Category] {
		return apperr.NotFound("Category")
	}
	for _, genreSlug := range input.Genres {
		if !f.knownGenres[genreSlug] {
			return apperr.NotFound("Genre")
		}
	}
	return nil
}

func (f *fakeRepository) materialize(id int, input Input) *Title {
	title := &Title{ID: id, Name: input.Name, Year: input.Year, Description: input.Description}
	if input.Category != nil {
		title.Category = &TagRef{Slug: *input.Category}
	}
	for _, genreSlug := range input.Genres {
		title.Genres = append(title.Genres, TagRef{Slug: genreSlug})
	}
	return title
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

func TestCreateTitle_RequiresName(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateTitle(context.Background(), Input{Year: 1999})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "name", ae.Details[0].Field)
}

func TestCreateTitle_YearUnbounded(t *testing.T) {
	// Historic works and announced future releases are both catalogued, so
	// no year range is enforced.
	tests := []struct {
		name string
		year int
	}{
		{"ancient", -450},
		{"classic", 1902},
		{"future", 2199},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			title, err := service.CreateTitle(context.Background(), Input{Name: "Work", Year: tt.year})

			require.NoError(t, err)
			assert.Equal(t, tt.year, title.Year)
		})
	}
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateTitle(context.Background(), Input{
		Name:     "Solaris",
		Year:     1972,
		Category: pointer.To("podcast"),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTitle_InvalidGenreSlugFormat(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateTitle(context.Background(), Input{
		Name:   "Solaris",
		Year:   1972,
		Genres: []string{"Not A Slug"},
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, "genres", ae.Details[0].Field)
}

func TestUpdateTitle_GenresFullyReplace(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateTitle(context.Background(), Input{
		Name:   "Solaris",
		Year:   1972,
		Genres: []string{"drama"},
	})
	require.NoError(t, err)

	updated, err := service.UpdateTitle(context.Background(), created.ID, Input{
		Name:   "Solaris",
		Year:   1972,
		Genres: []string{"comedy"},
	})
	require.NoError(t, err)

	// The stored genre set is exactly the submitted list, not a union.
	require.Len(t, updated.Genres, 1)
	assert.Equal(t, "comedy", updated.Genres[0].Slug)
	assert.Equal(t, []string{"comedy"}, repo.lastInput.Genres)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.DeleteTitle(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
