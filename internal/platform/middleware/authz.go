// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*sec.AuthClaims, error)
}

// Identity is the slice of an account the middleware needs to admit a request.
type Identity struct {
	UserID   string
	IsActive bool
}

// IdentityLoader fetches the live account state behind a token.
// It returns (nil, nil) when the account no longer exists.
type IdentityLoader interface {
	FindIdentity(ctx context.Context, userID string) (*Identity, error)
}

// # Client-facing messages

const (
	msgTokenMissing   = "Access token is missing or invalid"
	msgTokenExpired   = "Access token has expired"
	msgAuthFailed     = "Authentication failed"
	msgUserNotFound   = "User not found"
	msgUserInactive   = "Account is inactive"
	msgAuthRequired   = "Authentication required"
	msgRoleForbidden  = "You do not have permission to access this resource"
	authHeaderMinimum = len(constants.BearerPrefix)
)

// Authenticator runs the bearer-token state machine shared by [Authenticator.Required]
// and [Authenticator.Optional].
type Authenticator struct {
	verifier TokenVerifier
	loader   IdentityLoader
}

// NewAuthenticator wires token verification to the account store.
func NewAuthenticator(verifier TokenVerifier, loader IdentityLoader) *Authenticator {
	return &Authenticator{verifier: verifier, loader: loader}
}

/*
Required rejects every request that does not carry a valid token of an active account.

Flow:
 1. 'Authorization: Bearer <token>' must be present, otherwise 401.
 2. The token must verify: expired is 401 "Access token has expired", anything else 401 "Authentication failed".
 3. The account must exist (401) and be active (403).
 4. {UserID, Email, Role} claims and the raw token are attached to the context.
*/
func (authenticator *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, err := authenticator.authenticate(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Optional attaches identity when the token is valid and otherwise proceeds anonymously.
func (authenticator *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, err := authenticator.authenticate(request)
		if err != nil {
			if request.Header.Get(constants.HeaderAuthorization) != "" {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "optional_auth_ignored",
					slog.String("reason", err.Error()),
				)
			}
			next.ServeHTTP(writer, request)
			return
		}
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// authenticate returns the enriched context or the client-facing failure.
func (authenticator *Authenticator) authenticate(request *http.Request) (context.Context, error) {
	ctx := request.Context()

	// ── 1. Header ─────────────────────────────────────────────────────────
	header := request.Header.Get(constants.HeaderAuthorization)
	if len(header) <= authHeaderMinimum || !strings.HasPrefix(header, constants.BearerPrefix) {
		return nil, apperr.Unauthorized(msgTokenMissing)
	}
	token := header[authHeaderMinimum:]

	// ── 2. Token Verification ─────────────────────────────────────────────
	claims, err := authenticator.verifier.VerifyAccessToken(token)
	if errors.Is(err, sec.ErrTokenExpired) {
		return nil, apperr.Unauthorized(msgTokenExpired).WithCause(err)
	}
	if err != nil {
		return nil, apperr.Unauthorized(msgAuthFailed).WithCause(err)
	}

	// ── 3. Live Account State ─────────────────────────────────────────────
	identity, err := authenticator.loader.FindIdentity(ctx, claims.UserID)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "auth_identity_lookup_failed", slog.Any("error", err))
		return nil, apperr.Unauthorized(msgAuthFailed).WithCause(err)
	}
	if identity == nil {
		return nil, apperr.Unauthorized(msgUserNotFound)
	}
	if !identity.IsActive {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_inactive_account", slog.String("user_id", claims.UserID))
		return nil, apperr.Forbidden(msgUserInactive)
	}

	// ── 4. Context Injection ──────────────────────────────────────────────
	ctx = ctxutil.WithAuthUser(ctx, &sec.AuthClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	ctx = ctxutil.WithToken(ctx, token)
	ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))

	return ctx, nil
}

// RequireRole blocks requests if the authenticated user's role is not in roles.
//
// Must be registered in the router AFTER [Authenticator.Required] or
// [Authenticator.Optional]; without claims it answers 401.
func RequireRole(roles ...sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized(msgAuthRequired))
				return
			}

			if !sec.UserRole(claims.Role).In(roles...) {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "auth_role_forbidden",
					slog.String("role", claims.Role),
				)
				respond.Error(writer, request, apperr.Forbidden(msgRoleForbidden))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
