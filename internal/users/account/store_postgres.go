// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmkoval/kinoteka/internal/platform/database/schema"
	"github.com/dmkoval/kinoteka/internal/platform/dberr"
	"github.com/dmkoval/kinoteka/internal/users/auth"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) ListUsers(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	where := ""
	countArgs := []any{}
	if search != "" {
		where = fmt.Sprintf("WHERE %s ILIKE $1", schema.UsersAccount.Username)
		countArgs = append(countArgs, "%"+search+"%")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, schema.UsersAccount.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	args := append([]any{}, countArgs...)
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		%s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Bio,
		schema.UsersAccount.Role, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		where,
		schema.UsersAccount.Username,
		len(countArgs)+1, len(countArgs)+2,
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user := &auth.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email,
			&user.FirstName, &user.LastName, &user.Bio,
			&user.Role, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	return repository.findBy(context, schema.UsersAccount.Username, username)
}

func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Bio,
		schema.UsersAccount.Role, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		column,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.FirstName, &user.LastName, &user.Bio,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}

	return user, nil
}

func (repository *PostgresRepository) Create(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.FirstName, schema.UsersAccount.LastName, schema.UsersAccount.Bio,
		schema.UsersAccount.Role, schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email,
		user.FirstName, user.LastName, user.Bio,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UsersAccount.Table,
		schema.UsersAccount.Email, schema.UsersAccount.FirstName, schema.UsersAccount.LastName,
		schema.UsersAccount.Bio, schema.UsersAccount.Role, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID,
		schema.UsersAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)

	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) Delete(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UsersAccount.Table, schema.UsersAccount.Username,
	)

	cmd, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
