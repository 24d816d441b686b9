// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/validate"
)

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

/*
parseProfileUpdate validates a partial profile payload.

Absent fields stay nil. An empty bio is kept and clears the stored one.
*/
func parseProfileUpdate(body updateProfileRequest) (ProfileUpdate, error) {
	var update ProfileUpdate
	validator := &validate.Validator{}

	if body.FullName != nil {
		fullName := strings.TrimSpace(*body.FullName)
		validator.MinLen(FieldFullName, fullName, 2, "Full name must be at least 2 characters").
			MaxLen(FieldFullName, fullName, 100, "Full name must not exceed 100 characters")
		update.FullName = &fullName
	}

	if body.Bio != nil {
		bio := strings.TrimSpace(*body.Bio)
		validator.MaxLen(FieldBio, bio, 500, "Bio must not exceed 500 characters")
		update.Bio = &bio
	}

	if body.Avatar != nil {
		validator.URL(FieldAvatar, *body.Avatar, "Invalid avatar URL")
		update.Avatar = body.Avatar
	}

	if err := validator.Err(); err != nil {
		return ProfileUpdate{}, err
	}
	return update, nil
}
