package genre

import "context"

type Repository interface {
	ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error)
	GetGenreBySlug(context context.Context, slug string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
	UpdateGenre(context context.Context, currentSlug string, g *Genre) error
	DeleteGenre(context context.Context, slug string) error
}
