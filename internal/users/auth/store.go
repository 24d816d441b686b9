// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
)

// ErrUserNotFound is the cause attached to every "User not found" returned by a [UserRepository].
var ErrUserNotFound = errors.New("auth: user not found")

// # User Data Access

// UserRepository defines the data access contract for accounts and their sessions.
type UserRepository interface {

	/*
		Create persists a brand-new account, including its initial session list.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict when the email is taken, or storage errors
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity, including hash and sessions
		  - error: NotFound wrapping [ErrUserNotFound], or storage errors
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account registered with email (case-insensitive).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity, including hash and sessions
		  - error: NotFound wrapping [ErrUserNotFound], or storage errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		SaveSessions writes the account's refresh-token list and last-login time.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: NotFound wrapping [ErrUserNotFound], or storage errors
	*/
	SaveSessions(context context.Context, user *User) error

	/*
		RemoveRefreshToken drops one session in a single atomic statement.
		Removing an unknown token, or from a deleted account, is not an error.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string

		Returns:
		  - error: Storage errors only
	*/
	RemoveRefreshToken(context context.Context, userID, token string) error

	/*
		ClearRefreshTokens drops every session of the account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Storage errors only
	*/
	ClearRefreshTokens(context context.Context, userID string) error

	// FindIdentity serves the Auth Middleware; see [middleware.IdentityLoader].
	FindIdentity(context context.Context, userID string) (*middleware.Identity, error)
}
