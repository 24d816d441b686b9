// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// PostgresAccountRepository implements [AccountRepository].
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// profileColumns excludes the password hash and the session list.
var profileColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.FullName, schema.UserAccount.Email,
	schema.UserAccount.Role, schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
	schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

/*
FindByID retrieves the public view of an account.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated entity without secrets
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		profileColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	return scanProfile(repository.pool.QueryRow(context, query, id))
}

/*
UpdateProfile writes only the provided fields in one statement.

Description: COALESCE keeps the stored value for every nil field, so the
read-modify-write happens inside the database.

Parameters:
  - context: context.Context
  - id: string
  - update: ProfileUpdate

Returns:
  - *auth.User: The row as stored after the update
  - error: apperr.NotFound, check-constraint or execution failures
*/
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, id string, update ProfileUpdate) (*auth.User, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = COALESCE($2, %[2]s),
			%[3]s = COALESCE($3, %[3]s),
			%[4]s = COALESCE($4, %[4]s),
			%[5]s = now()
		WHERE %[6]s = $1
		RETURNING %[7]s`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName, schema.UserAccount.Bio, schema.UserAccount.AvatarURL,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
		profileColumns,
	)

	return scanProfile(repository.pool.QueryRow(context, query, id, update.FullName, update.Bio, update.Avatar))
}

func scanProfile(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.Profile.Bio,
		&user.Profile.Avatar,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}
