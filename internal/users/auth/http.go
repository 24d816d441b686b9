// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the session endpoints under /api/auth.
//
// It is a thin layer: decode, parse, call [Service], wrap the result in the
// envelope. Every failure leaves through respond.Error.
type Handler struct {
	authService   *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{authService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup     : Creates an account and its first session.
//   - POST /login      : Opens a new session.
//   - POST /refresh    : Issues a new access token.
//   - POST /logout     : Ends one session (authenticated).
//   - POST /logout-all : Ends every session (authenticated).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticator.Required)
		r.Post("/logout", handler.logout)
		r.Post("/logout-all", handler.logoutAll)
	})

	return router
}

/*
signup registers a new account.

POST /api/auth/signup

Response:
  - 201: {user, tokens{accessToken, refreshToken}}
  - 409: Email already registered
  - 422: Field errors
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var body signupRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseSignup(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Signup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Account created successfully", session)
}

/*
login authenticates with email and password.

POST /api/auth/login

Response:
  - 200: {user, tokens{accessToken, refreshToken}}
  - 401: Invalid email or password
  - 403: Account deactivated
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body loginRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseLogin(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", session)
}

/*
refresh trades a refresh token for a new access token.

POST /api/auth/refresh

Response:
  - 200: {accessToken}
  - 401: Invalid refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	var body refreshRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	refreshToken, err := parseRefresh(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	accessToken, err := handler.authService.Refresh(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Token refreshed successfully", map[string]string{"accessToken": accessToken})
}

/*
logout ends the session named by the body's refreshToken.

POST /api/auth/logout

Description: When the body carries no refresh token, the raw bearer token is
used as the key, which matches no session and leaves the list untouched.
The bearer fallback is kept as-is for compatibility with existing clients.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	var body refreshRequest
	if err := requestutil.DecodeOptionalJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token := body.RefreshToken
	if token == "" {
		token = ctxutil.GetToken(request.Context())
	}

	if err := handler.authService.Logout(request.Context(), claims.UserID, token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Logout successful")
}

// logoutAll ends every session. POST /api/auth/logout-all
func (handler *Handler) logoutAll(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.LogoutAll(request.Context(), claims.UserID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Logged out from all devices")
}
