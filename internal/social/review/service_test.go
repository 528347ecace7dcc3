package review

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/sec"
)

// fakeRepository is an in-memory Repository keyed by review ID.
type fakeRepository struct {
	reviews   map[int]*Review
	nextID    int
	createErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reviews: map[int]*Review{}, nextID: 1}
}

func (f *fakeRepository) ListReviews(_ context.Context, titleID int, _, _ int) ([]*Review, int, error) {
	out := make([]*Review, 0)
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetReview(_ context.Context, titleID, reviewID int) (*Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	return r, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, r *Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.reviews {
		if existing.TitleID == r.TitleID && existing.AuthorID == r.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	r.ID = f.nextID
	f.nextID++
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) UpdateReview(_ context.Context, r *Review) error {
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeRepository) DeleteReview(_ context.Context, _, reviewID int) error {
	delete(f.reviews, reviewID)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.Default())
}

func claimsFor(userID string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Role: string(role)}
}

func TestCreateReview_ScoreOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		score int
	}{
		{"zero", 0},
		{"eleven", 11},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newFakeRepository())

			_, err := service.CreateReview(context.Background(), 1, "user-1", Input{
				Text:  "Great watch",
				Score: tt.score,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "score", ae.Details[0].Field)
			assert.Equal(t, "Must be between 1 and 10", ae.Details[0].Message)
		})
	}
}

func TestCreateReview_MissingText(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.CreateReview(context.Background(), 1, "user-1", Input{Score: 7})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "text", ae.Details[0].Field)
}

func TestCreateReview_OnePerAuthor(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	_, err := service.CreateReview(context.Background(), 1, "user-1", Input{Text: "First take", Score: 8})
	require.NoError(t, err)

	// The same author reviewing the same title again collides.
	_, err = service.CreateReview(context.Background(), 1, "user-1", Input{Text: "Second take", Score: 9})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// A different title is fine.
	_, err = service.CreateReview(context.Background(), 2, "user-1", Input{Text: "Other title", Score: 6})
	assert.NoError(t, err)
}

func TestUpdateReview_AuthorCanEdit(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateReview(context.Background(), 1, "user-1", Input{Text: "Fine", Score: 5})
	require.NoError(t, err)

	updated, err := service.UpdateReview(context.Background(), 1, created.ID,
		claimsFor("user-1", sec.RoleUser), Input{Text: "Actually great", Score: 9})

	require.NoError(t, err)
	assert.Equal(t, "Actually great", updated.Text)
	assert.Equal(t, 9, updated.Score)
}

func TestUpdateReview_StrangerForbidden(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateReview(context.Background(), 1, "user-1", Input{Text: "Fine", Score: 5})
	require.NoError(t, err)

	_, err = service.UpdateReview(context.Background(), 1, created.ID,
		claimsFor("user-2", sec.RoleUser), Input{Text: "Hijacked", Score: 1})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestDeleteReview_ModeratorAllowed(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateReview(context.Background(), 1, "user-1", Input{Text: "Spam", Score: 1})
	require.NoError(t, err)

	err = service.DeleteReview(context.Background(), 1, created.ID, claimsFor("mod-1", sec.RoleModerator))
	require.NoError(t, err)

	_, err = service.GetReview(context.Background(), 1, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteReview_AnonymousUnauthorized(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	created, err := service.CreateReview(context.Background(), 1, "user-1", Input{Text: "Fine", Score: 5})
	require.NoError(t, err)

	err = service.DeleteReview(context.Background(), 1, created.ID, nil)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}
