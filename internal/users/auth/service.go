// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and checking session tokens.
type TokenProvider interface {
	// IssueAccessToken signs a short-lived token carrying identity and role.
	IssueAccessToken(userID, email, role string) (string, error)

	// IssueRefreshToken signs a long-lived token carrying only the user ID.
	IssueRefreshToken(userID string) (string, error)

	// VerifyRefreshToken checks signature, expiry and token type.
	VerifyRefreshToken(tokenString string) (*sec.RefreshClaims, error)
}

// # Client-facing messages

const (
	msgEmailTaken          = "Email is already registered"
	msgInvalidCredentials  = "Invalid email or password"
	msgAccountDeactivated  = "Your account has been deactivated"
	msgInvalidRefreshToken = "Invalid refresh token"
)

// dummyHash keeps the cost of a login for an unknown email equal to a wrong password.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := sec.HashPassword("inkwell-timing-equalizer")
	return hash
})

// Service implements the session lifecycle.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// # Registration Flow

/*
Signup creates an account and opens its first session.

Description: The account is persisted once, already holding the refresh token
of the session it starts with.

Parameters:
  - context: context.Context
  - input: SignupInput (already validated)

Returns:
  - *Session: The public user view and a fresh token pair
  - error: 409 if the email is registered, or internal failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Session, error) {

	// Fast-path duplicate check; the unique index still guards the race.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict(msgEmailTaken)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	tokens, err := service.openSession(user)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_signup", slog.String("user_id", user.ID))
	return &Session{User: user, Tokens: tokens}, nil
}

// # Authentication Flow

/*
Login verifies credentials and opens a new session.

Description: Unknown email and wrong password produce the same 401 after the
same amount of hashing work. The inactive check runs only after the password
matched, so it never confirms that an email exists.

Parameters:
  - context: context.Context
  - input: LoginInput (already validated)

Returns:
  - *Session: The public user view and a fresh token pair
  - error: 401, 403 or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}
		sec.CheckPasswordHash(input.Password, dummyHash())
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		ctxutil.GetLogger(context).WarnContext(context, "auth_login_bad_password", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if !user.IsActive {
		return nil, apperr.Forbidden(msgAccountDeactivated)
	}

	tokens, err := service.openSession(user)
	if err != nil {
		return nil, err
	}

	lastLogin := service.now()
	user.LastLogin = &lastLogin

	if err := service.userRepository.SaveSessions(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_login_save_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_login",
		slog.String("user_id", user.ID),
		slog.Int("sessions", user.RefreshTokens.Len()),
	)
	return &Session{User: user, Tokens: tokens}, nil
}

/*
Refresh exchanges a live refresh token for a new access token.

Description: The refresh token itself is not rotated. Every authentication
failure is the same 401 so callers learn nothing about which check failed.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - string: A newly signed access token
  - error: 401 or internal failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperr.Unauthorized(msgInvalidRefreshToken).WithCause(err)
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", apperr.Unauthorized(msgInvalidRefreshToken).WithCause(err)
		}
		return "", fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	if !user.IsActive || !user.RefreshTokens.Contains(refreshToken) {
		return "", apperr.Unauthorized(msgInvalidRefreshToken)
	}

	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("auth_service_issue_access_failed: %w", err)
	}

	return accessToken, nil
}

// # Session Termination

/*
Logout ends one session of the account.

Parameters:
  - context: context.Context
  - userID: string
  - refreshToken: string (an unknown token is a no-op)

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(context context.Context, userID, refreshToken string) error {
	if err := service.userRepository.RemoveRefreshToken(context, userID, refreshToken); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

/*
LogoutAll ends every session of the account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures only
*/
func (service *Service) LogoutAll(context context.Context, userID string) error {
	if err := service.userRepository.ClearRefreshTokens(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_all_failed: %w", err)
	}
	ctxutil.GetLogger(context).InfoContext(context, "auth_logout_all", slog.String("user_id", userID))
	return nil
}

// openSession issues a token pair and records the refresh token on user.
func (service *Service) openSession(user *User) (TokenPair, error) {
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth_service_issue_access_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.IssueRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("auth_service_issue_refresh_failed: %w", err)
	}

	user.RefreshTokens.Push(refreshToken, service.now())
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
