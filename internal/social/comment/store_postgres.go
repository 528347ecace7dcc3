package comment

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

func (repository *PostgresRepository) ListComments(context context.Context, titleID, reviewID int, limit, offset int) ([]*Comment, int, error) {
	if err := repository.reviewExists(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ReviewID,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1
		ORDER BY c.%s ASC
		LIMIT $2 OFFSET $3
	`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
		schema.UsersAccount.Username, schema.SocialComment.Text,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table,
		schema.UsersAccount.Table, schema.SocialComment.AuthorID, schema.UsersAccount.ID,
		schema.SocialComment.ReviewID,
		schema.SocialComment.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, c)
	}

	return comments, total, nil
}

func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON c.%s = a.%s
		WHERE c.%s = $1 AND c.%s = $2
	`,
		schema.SocialComment.ID, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
		schema.UsersAccount.Username, schema.SocialComment.Text,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table,
		schema.UsersAccount.Table, schema.SocialComment.AuthorID, schema.UsersAccount.ID,
		schema.SocialComment.ID, schema.SocialComment.ReviewID,
	)
	c := &Comment{}

	err := repository.db.QueryRow(context, query, commentID, reviewID).Scan(
		&c.ID, &c.ReviewID, &c.AuthorID, &c.Author, &c.Text, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment")
	}

	return c, nil
}

func (repository *PostgresRepository) CreateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s,
		          (SELECT %s FROM %s WHERE %s = $2)
	`,
		schema.SocialComment.Table, schema.SocialComment.ReviewID, schema.SocialComment.AuthorID,
		schema.SocialComment.Text, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.UsersAccount.Username, schema.UsersAccount.Table, schema.UsersAccount.ID,
	)

	err := repository.db.QueryRow(context, query, c.ReviewID, c.AuthorID, c.Text).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Author)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) UpdateComment(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.SocialComment.Table, schema.SocialComment.Text, schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID, schema.SocialComment.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.Text).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_comment")
}

func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialComment.Table, schema.SocialComment.ID, schema.SocialComment.ReviewID,
	)

	cmd, err := repository.db.Exec(context, query, commentID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// reviewExists guards list queries so an unknown review (or a review that
// doesn't belong to the given title) reads as NOT_FOUND.
func (repository *PostgresRepository) reviewExists(context context.Context, titleID, reviewID int) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.SocialReview.Table, schema.SocialReview.ID, schema.SocialReview.TitleID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, reviewID, titleID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_review_exists")
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}
