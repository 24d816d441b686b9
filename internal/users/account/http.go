// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// Handler implements the HTTP layer for the caller's profile.
//
// # Security
//
// Every route runs behind [middleware.Authenticator.Required].
type Handler struct {
	accountService *Service
	authenticator  *middleware.Authenticator
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{accountService: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] for GET and PUT on the profile resource.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticator.Required)

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)

	return router
}

/*
getProfile returns the signed-in account.

GET /api/auth/profile
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile retrieved successfully", user)
}

/*
updateProfile changes fullName, bio or avatar.

PUT /api/auth/profile

Response:
  - 200: Updated user
  - 422: Field errors
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body updateProfileRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update, err := parseProfileUpdate(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile updated successfully", user)
}
