package genre

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

func (repository *PostgresRepository) ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
	`,
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CoreGenre.Table)

	args := []any{}
	countArgs := []any{}

	if f.Search != "" {
		searchTerm := "%" + f.Search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.CoreGenre.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetGenreBySlug(context context.Context, slug string) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreGenre.ID, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.Table, schema.CoreGenre.Slug,
	)
	g := &Genre{}

	err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_slug")
	}

	return g, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		RETURNING %s, %s
	`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug, schema.CoreGenre.CreatedAt,
		schema.CoreGenre.ID, schema.CoreGenre.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, g.Name, g.Slug).Scan(&g.ID, &g.CreatedAt)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) UpdateGenre(context context.Context, currentSlug string, g *Genre) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreGenre.Table, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreGenre.Slug,
		schema.CoreGenre.ID, schema.CoreGenre.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, currentSlug, g.Name, g.Slug).Scan(&g.ID, &g.CreatedAt)
	return dberr.Wrap(err, "update_genre")
}

func (repository *PostgresRepository) DeleteGenre(context context.Context, slug string) error {
	// Join rows in core.titlegenre cascade with the genre; titles survive.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreGenre.Table, schema.CoreGenre.Slug,
	)

	cmd, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
