package review

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListReviews(context context.Context, titleID int, limit, offset int) ([]*Review, int, error) {
	if err := repository.titleExists(context, titleID); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialReview.Table, schema.SocialReview.TitleID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	// Default ordering is chronological ascending on the indexed createdat.
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1
		ORDER BY r.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
		schema.UsersAccount.Username, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.SocialReview.Table,
		schema.UsersAccount.Table, schema.SocialReview.AuthorID, schema.UsersAccount.ID,
		schema.SocialReview.TitleID,
		schema.SocialReview.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON r.%s = a.%s
		WHERE r.%s = $1 AND r.%s = $2
	`,
		schema.SocialReview.ID, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
		schema.UsersAccount.Username, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.SocialReview.Table,
		schema.UsersAccount.Table, schema.SocialReview.AuthorID, schema.UsersAccount.ID,
		schema.SocialReview.ID, schema.SocialReview.TitleID,
	)
	r := &Review{}

	err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(
		&r.ID, &r.TitleID, &r.AuthorID, &r.Author, &r.Text, &r.Score, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	// The check-and-insert for the (title, author) pair is a single INSERT
	// against the unique index, never a pre-read in application code.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s,
		          (SELECT %s FROM %s WHERE %s = $2)
	`,
		schema.SocialReview.Table, schema.SocialReview.TitleID, schema.SocialReview.AuthorID,
		schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.SocialReview.ID, schema.SocialReview.CreatedAt, schema.SocialReview.UpdatedAt,
		schema.UsersAccount.Username, schema.UsersAccount.Table, schema.UsersAccount.ID,
	)

	err := repository.db.QueryRow(context, query, r.TitleID, r.AuthorID, r.Text, r.Score).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt, &r.Author)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.SocialReview.Table, schema.SocialReview.Text, schema.SocialReview.Score,
		schema.SocialReview.UpdatedAt, schema.SocialReview.ID, schema.SocialReview.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Text, r.Score).Scan(&r.UpdatedAt)
	return dberr.Wrap(err, "update_review")
}

func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int) error {
	// ON DELETE CASCADE removes the review's comments with it.
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	cmd, err := repository.db.Exec(context, query, reviewID, titleID)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// titleExists guards list queries so an unknown title reads as NOT_FOUND
// rather than an empty page.
func (repository *PostgresRepository) titleExists(context context.Context, titleID int) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreTitle.Table, schema.CoreTitle.ID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, titleID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_title_exists")
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}
