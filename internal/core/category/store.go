package category

import "context"

type Repository interface {
	ListCategories(context context.Context, f Filter, limit, offset int) ([]*Category, int, error)
	GetCategoryBySlug(context context.Context, slug string) (*Category, error)
	CreateCategory(context context.Context, c *Category) error
	UpdateCategory(context context.Context, currentSlug string, c *Category) error
	DeleteCategory(context context.Context, slug string) error
}
