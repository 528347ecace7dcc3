package title

import "context"

type Repository interface {
	ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error)
	GetTitle(context context.Context, id int) (*Title, error)
	CreateTitle(context context.Context, input Input) (*Title, error)
	UpdateTitle(context context.Context, id int, input Input) (*Title, error)
	DeleteTitle(context context.Context, id int) error
}
