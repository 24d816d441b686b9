// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// Service implements profile use cases for the signed-in user.
type Service struct {
	accountRepository AccountRepository
}

// NewService constructs a new account [Service].
func NewService(accountRepo AccountRepository) *Service {
	return &Service{accountRepository: accountRepo}
}

/*
GetProfile returns the caller's own account.

Parameters:
  - context: context.Context
  - userID: string (from the access token)

Returns:
  - *auth.User: Public view of the account
  - error: 404 if the account vanished, or storage failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
UpdateProfile applies a partial profile update.

Description: An update that carries no field returns the current profile
without writing.

Parameters:
  - context: context.Context
  - userID: string
  - update: ProfileUpdate (already validated)

Returns:
  - *auth.User: The account after the update
  - error: 404, constraint or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, update ProfileUpdate) (*auth.User, error) {
	if update.Empty() {
		return service.GetProfile(context, userID)
	}

	user, err := service.accountRepository.UpdateProfile(context, userID, update)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_profile_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_profile_updated", slog.String("user_id", userID))
	return user, nil
}
