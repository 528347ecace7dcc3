package title

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkoval/kinoteka/internal/platform/apperr"
	"github.com/dmkoval/kinoteka/internal/platform/database/schema"
	"github.com/dmkoval/kinoteka/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectClause joins the weak category reference and aggregates the average
// review score. Rating is NULL until the first review lands.
func selectClause() string {
	return fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
		       c.%s, c.%s,
		       (SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating
		FROM %s t
		LEFT JOIN %s c ON t.%s = c.%s
	`,
		schema.CoreTitle.ID, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
		schema.CoreCategory.Name, schema.CoreCategory.Slug,
		schema.SocialReview.Score, schema.SocialReview.Table, schema.SocialReview.TitleID, schema.CoreTitle.ID,
		schema.CoreTitle.Table,
		schema.CoreCategory.Table, schema.CoreTitle.CategoryID, schema.CoreCategory.ID,
	)
}

func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{Genres: make([]TagRef, 0)}
	var categoryName, categorySlug *string

	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt, &t.UpdatedAt,
		&categoryName, &categorySlug, &t.Rating,
	)
	if err != nil {
		return nil, err
	}

	if categorySlug != nil {
		t.Category = &TagRef{Name: *categoryName, Slug: *categorySlug}
	}
	return t, nil
}

func (repository *PostgresRepository) ListTitles(context context.Context, f Filter, limit, offset int) ([]*Title, int, error) {
	whereClause := " WHERE TRUE"
	args := []any{}

	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		whereClause += fmt.Sprintf(" AND c.%s = $%d", schema.CoreCategory.Slug, len(args))
	}
	if f.GenreSlug != "" {
		args = append(args, f.GenreSlug)
		whereClause += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s tg JOIN %s g ON tg.%s = g.%s WHERE tg.%s = t.%s AND g.%s = $%d)",
			schema.CoreTitleGenre.Table, schema.CoreGenre.Table,
			schema.CoreTitleGenre.GenreID, schema.CoreGenre.ID,
			schema.CoreTitleGenre.TitleID, schema.CoreTitle.ID,
			schema.CoreGenre.Slug, len(args),
		)
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		whereClause += fmt.Sprintf(" AND t.%s ILIKE $%d", schema.CoreTitle.Name, len(args))
	}
	if f.Year != nil {
		args = append(args, *f.Year)
		whereClause += fmt.Sprintf(" AND t.%s = $%d", schema.CoreTitle.Year, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t LEFT JOIN %s c ON t.%s = c.%s`,
		schema.CoreTitle.Table, schema.CoreCategory.Table, schema.CoreTitle.CategoryID, schema.CoreCategory.ID,
	) + whereClause

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := selectClause() + whereClause +
		fmt.Sprintf(" ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d",
			schema.CoreTitle.Name, schema.CoreTitle.ID, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	titleIDs := make([]int, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
		titleIDs = append(titleIDs, t.ID)
	}
	rows.Close()

	if err := repository.loadGenres(context, titles, titleIDs); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) GetTitle(context context.Context, id int) (*Title, error) {
	query := selectClause() + fmt.Sprintf(" WHERE t.%s = $1", schema.CoreTitle.ID)

	t, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_title")
	}

	if err := repository.loadGenres(context, []*Title{t}, []int{t.ID}); err != nil {
		return nil, err
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTitle(context context.Context, input Input) (*Title, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_create_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	categoryID, err := resolveCategoryID(context, tx, input.Category)
	if err != nil {
		return nil, err
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s
	`,
		schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CategoryID, schema.CoreTitle.CreatedAt, schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID,
	)

	var titleID int
	if err := tx.QueryRow(context, insertQuery, input.Name, input.Year, input.Description, categoryID).Scan(&titleID); err != nil {
		return nil, dberr.Wrap(err, "create_title")
	}

	if err := attachGenres(context, tx, titleID, input.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_create_title")
	}

	return repository.GetTitle(context, titleID)
}

func (repository *PostgresRepository) UpdateTitle(context context.Context, id int, input Input) (*Title, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_title")
	}
	defer func() { _ = tx.Rollback(context) }()

	categoryID, err := resolveCategoryID(context, tx, input.Category)
	if err != nil {
		return nil, err
	}

	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreTitle.Table, schema.CoreTitle.Name, schema.CoreTitle.Year, schema.CoreTitle.Description,
		schema.CoreTitle.CategoryID, schema.CoreTitle.UpdatedAt,
		schema.CoreTitle.ID, schema.CoreTitle.ID,
	)

	var titleID int
	if err := tx.QueryRow(context, updateQuery, id, input.Name, input.Year, input.Description, categoryID).Scan(&titleID); err != nil {
		return nil, dberr.Wrap(err, "update_title")
	}

	// Full-replace semantics: the incoming genre set supersedes the old one.
	clearQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID,
	)
	if _, err := tx.Exec(context, clearQuery, titleID); err != nil {
		return nil, dberr.Wrap(err, "clear_title_genres")
	}

	if err := attachGenres(context, tx, titleID, input.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_title")
	}

	return repository.GetTitle(context, titleID)
}

func (repository *PostgresRepository) DeleteTitle(context context.Context, id int) error {
	// ON DELETE CASCADE removes the title's reviews, their comments, and its
	// join rows in the same transaction as this statement.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreTitle.Table, schema.CoreTitle.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// resolveCategoryID maps an optional category slug to its primary key.
// A nil slug means "no category" and resolves to a NULL reference.
func resolveCategoryID(context context.Context, tx pgx.Tx, categorySlug *string) (*int, error) {
	if categorySlug == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreCategory.ID, schema.CoreCategory.Table, schema.CoreCategory.Slug,
	)

	var id int
	if err := tx.QueryRow(context, query, *categorySlug).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "resolve_category")
	}
	return &id, nil
}

// attachGenres resolves each genre slug and inserts the join rows. It runs
// inside the caller's transaction so a single unknown slug aborts the whole
// write.
func attachGenres(context context.Context, tx pgx.Tx, titleID int, genreSlugs []string) error {
	if len(genreSlugs) == 0 {
		return nil
	}

	resolveQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreGenre.ID, schema.CoreGenre.Table, schema.CoreGenre.Slug,
	)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		schema.CoreTitleGenre.Table, schema.CoreTitleGenre.TitleID, schema.CoreTitleGenre.GenreID,
	)

	for _, genreSlug := range genreSlugs {
		var genreID int
		if err := tx.QueryRow(context, resolveQuery, genreSlug).Scan(&genreID); err != nil {
			if err == pgx.ErrNoRows {
				return apperr.NotFound("Genre")
			}
			return dberr.Wrap(err, "resolve_genre")
		}

		// ON CONFLICT DO NOTHING deduplicates repeated slugs in the input.
		if _, err := tx.Exec(context, insertQuery, titleID, genreID); err != nil {
			return dberr.Wrap(err, "attach_genre")
		}
	}
	return nil
}

// loadGenres populates the Genres field for a batch of titles in one query.
func (repository *PostgresRepository) loadGenres(context context.Context, titles []*Title, titleIDs []int) error {
	if len(titleIDs) == 0 {
		return nil
	}

	byID := make(map[int]*Title, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
	}

	query := fmt.Sprintf(`
		SELECT tg.%s, g.%s, g.%s
		FROM %s tg
		JOIN %s g ON tg.%s = g.%s
		WHERE tg.%s = ANY($1)
		ORDER BY g.%s ASC
	`,
		schema.CoreTitleGenre.TitleID, schema.CoreGenre.Name, schema.CoreGenre.Slug,
		schema.CoreTitleGenre.Table,
		schema.CoreGenre.Table, schema.CoreTitleGenre.GenreID, schema.CoreGenre.ID,
		schema.CoreTitleGenre.TitleID,
		schema.CoreGenre.Name,
	)

	rows, err := repository.db.Query(context, query, titleIDs)
	if err != nil {
		return dberr.Wrap(err, "load_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		ref := TagRef{}
		if err := rows.Scan(&titleID, &ref.Name, &ref.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, ref)
		}
	}
	return nil
}
