// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the signed-in user's own profile.

# Architecture

  - Entities: ProfileUpdate (partial update command).
  - Domain: This package depends on the auth package for the User entity.
*/
package account

import (
	"context"

	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # Domain Entities

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Avatar   *string
}

// Empty reports whether the update would change nothing.
func (update ProfileUpdate) Empty() bool {
	return update.FullName == nil && update.Bio == nil && update.Avatar == nil
}

// # Field Identifiers

const (
	FieldFullName = "fullName"
	FieldBio      = "bio"
	FieldAvatar   = "avatar"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for profile data.
type AccountRepository interface {
	/*
		FindByID retrieves an account by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity (no secrets)
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateProfile applies a partial update and returns the new state.

		Parameters:
		  - context: context.Context
		  - id: string
		  - update: ProfileUpdate

		Returns:
		  - *auth.User: The updated account
		  - error: apperr.NotFound, constraint or storage failures
	*/
	UpdateProfile(context context.Context, id string, update ProfileUpdate) (*auth.User, error)
}
