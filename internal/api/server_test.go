// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/api"
	"github.com/taibuivan/inkwell/internal/core/post"
	"github.com/taibuivan/inkwell/internal/platform/config"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/account"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

type nobody struct{}

func (nobody) FindIdentity(context.Context, string) (*middleware.Identity, error) { return nil, nil }

type noAttempts struct{}

func (noAttempts) Count(context.Context, string) (int64, error) { return 0, nil }
func (noAttempts) Increment(context.Context, string, time.Duration) (int64, error) { return 1, nil }
func (noAttempts) TTL(context.Context, string) (time.Duration, error) { return 0, nil }

// newRouter builds the full tree; domain storage is never reached by these tests.
func newRouter(t *testing.T, deps api.HealthDependencies) (http.Handler, *bytes.Buffer) {
	t.Helper()

	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "inkwell-test",
	})
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:         "production",
		FrontendURL:         "http://localhost:5173",
		RateLimitMax:        100,
		RateLimitWindow:     time.Minute,
		AuthRateLimitMax:    5,
		AuthRateLimitWindow: time.Minute,
	}

	authenticator := middleware.NewAuthenticator(tokens, nobody{})
	liveness, readiness := api.NewHealthHandlers(deps)

	var logs bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := api.NewRouter(ctx, cfg, slog.New(slog.NewJSONHandler(&logs, nil)), api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         auth.NewHandler(auth.NewService(nil, tokens), authenticator),
		Account:      account.NewHandler(account.NewService(nil), authenticator),
		Posts:        post.NewHandler(post.NewService(nil), authenticator),
		AuthAttempts: noAttempts{},
	})
	return router, &logs
}

func get(router http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))

	var body map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &body)
	return recorder, body
}

/*
TestRouter_Infrastructure verifies health checks, the info banner and fallback handlers.
*/
func TestRouter_Infrastructure(t *testing.T) {
	router, logs := newRouter(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return nil },
	})

	tests := []struct {
		name    string
		method  string
		path    string
		status  int
		message string
	}{
		{"liveness", http.MethodGet, "/health", http.StatusOK, "Server is running"},
		{"readiness", http.MethodGet, "/ready", http.StatusOK, "Service is ready"},
		{"info", http.MethodGet, "/api", http.StatusOK, "Inkwell API"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, "Route not found: /api/nope"},
		{"wrong method", http.MethodDelete, "/health", http.StatusMethodNotAllowed, "Method DELETE not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := get(router, tt.method, tt.path)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.message, body["message"])
			assert.Equal(t, tt.status < 400, body["success"])
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
			assert.NotEmpty(t, recorder.Header().Get("Strict-Transport-Security"))
		})
	}

	assert.NotContains(t, logs.String(), `"path":"/health"`)
	assert.Contains(t, logs.String(), `"path":"/ready"`)
}

/*
TestRouter_Degraded verifies a failing dependency turns readiness into 503.
*/
func TestRouter_Degraded(t *testing.T) {
	router, _ := newRouter(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("connection refused") },
	})

	recorder, body := get(router, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, false, body["success"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "degraded", data["status"])
}

/*
TestRouter_Mounts verifies domain routes are reachable and guarded.
*/
func TestRouter_Mounts(t *testing.T) {
	router, _ := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name    string
		method  string
		path    string
		status  int
		message string
	}{
		{"profile requires a token", http.MethodGet, "/api/auth/profile", http.StatusUnauthorized, "Access token is missing or invalid"},
		{"logout requires a token", http.MethodPost, "/api/auth/logout", http.StatusUnauthorized, "Access token is missing or invalid"},
		{"create post requires a token", http.MethodPost, "/api/posts", http.StatusUnauthorized, "Access token is missing or invalid"},
		{"my posts requires a token", http.MethodGet, "/api/posts/user/my-posts", http.StatusUnauthorized, "Access token is missing or invalid"},
		{"category is checked first", http.MethodGet, "/api/posts/category/cooking", http.StatusBadRequest, "Invalid category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := get(router, tt.method, tt.path)
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}
