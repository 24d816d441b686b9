// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
//
// The refresh-token list lives in a JSONB column of the account row, so a
// session change is always a single-row write.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

func userNotFound() error {
	return apperr.NotFound("User").WithCause(ErrUserNotFound)
}

/*
Create persists a new account row.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist; timestamps are initialized here)

Returns:
  - error: 409 when the email is taken, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.FullName, schema.UserAccount.Email,
		schema.UserAccount.Password, schema.UserAccount.Role, schema.UserAccount.Bio,
		schema.UserAccount.AvatarURL, schema.UserAccount.RefreshTokens, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	sessions, err := json.Marshal(user.RefreshTokens)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_encode_sessions_failed: %w", err)
	}

	_, err = repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Profile.Bio,
		user.Profile.Avatar,
		string(sessions),
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindByID retrieves an account by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByEmail retrieves an account by email, ignoring case.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1)`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email,
	)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
SaveSessions overwrites the session list and last-login timestamp.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresUserRepository) SaveSessions(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2::jsonb, %s = $3, %s = now()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshTokens, schema.UserAccount.LastLoginAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	sessions, err := json.Marshal(user.RefreshTokens)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_encode_sessions_failed: %w", err)
	}

	tag, err := repository.pool.Exec(context, query, user.ID, string(sessions), user.LastLogin)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_save_sessions_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return userNotFound()
	}

	return nil
}

/*
RemoveRefreshToken filters one token out of the JSONB array inside the database,
so concurrent logouts of different sessions never overwrite each other.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) RemoveRefreshToken(context context.Context, userID, token string) error {
	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = COALESCE((
				SELECT jsonb_agg(entry.value ORDER BY entry.ordinality)
				FROM jsonb_array_elements(%[2]s) WITH ORDINALITY AS entry
				WHERE entry.value->>'token' <> $2
			), '[]'::jsonb),
			%[3]s = now()
		WHERE %[4]s = $1 AND %[2]s @> jsonb_build_array(jsonb_build_object('token', $2::text))`,
		schema.UserAccount.Table, schema.UserAccount.RefreshTokens,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID, token); err != nil {
		return fmt.Errorf("postgres_user_repo_remove_refresh_token_failed: %w", err)
	}
	return nil
}

/*
ClearRefreshTokens empties the session list.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) ClearRefreshTokens(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = '[]'::jsonb, %s = now() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.RefreshTokens,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_user_repo_clear_refresh_tokens_failed: %w", err)
	}
	return nil
}

/*
FindIdentity loads only the columns the Auth Middleware checks.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *middleware.Identity: nil when the account no longer exists
  - error: Database errors
*/
func (repository *PostgresUserRepository) FindIdentity(context context.Context, userID string) (*middleware.Identity, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.IsActive,
		schema.UserAccount.Table, schema.UserAccount.ID,
	)

	identity := &middleware.Identity{}
	err := repository.pool.QueryRow(context, query, userID).Scan(&identity.UserID, &identity.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_identity_failed: %w", err)
	}

	return identity, nil
}

// scanUser hydrates a [User] from a row selected with userColumns.
func scanUser(row pgx.Row) (*User, error) {
	var (
		user     User
		sessions []byte
	)

	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Profile.Bio,
		&user.Profile.Avatar,
		&sessions,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound()
	}
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	if err := json.Unmarshal(sessions, &user.RefreshTokens); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_decode_sessions_failed: %w", err)
	}

	return &user, nil
}
