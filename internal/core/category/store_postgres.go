package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkoval/kinoteka/internal/platform/database/schema"
	"github.com/dmkoval/kinoteka/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCategories(context context.Context, f Filter, limit, offset int) ([]*Category, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreCategory.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.CoreCategory.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) GetCategoryBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)
	c := &Category{}

	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, c *Category) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.CreatedAt,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) UpdateCategory(context context.Context, currentSlug string, c *Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreCategory.Table, schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.CoreCategory.Slug,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, currentSlug, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	return dberr.Wrap(err, "update_category")
}

func (repository *PostgresRepository) DeleteCategory(context context.Context, slug string) error {
	// ON DELETE SET NULL on core.title.categoryid clears the weak references
	// in the same transaction as this statement.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
