// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
)

type devConfig bool

func (c devConfig) IsDevelopment() bool { return bool(c) }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(status)
	})
}

/*
TestStructuredLogger_SkipsHealth verifies skipped paths produce no access log line.
*/
func TestStructuredLogger_SkipsHealth(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))
	handler := middleware.StructuredLogger(logger, "/health")(okHandler)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buffer.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.Contains(t, buffer.String(), "http_request_finished")
	assert.Contains(t, buffer.String(), "/api/posts")
}

/*
TestRequestID verifies a correlation id is generated or propagated.
*/
func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, recorder.Header().Get("X-Request-ID"), 36)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", recorder.Header().Get("X-Request-ID"))
}

/*
TestPanicRecovery verifies panics become a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "An unexpected error occurred")
}

/*
TestCORS verifies origin matching and preflight handling.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		dev     bool
		origin  string
		allowed bool
	}{
		{"configured origin", false, "http://localhost:5173", true},
		{"foreign origin in production", false, "https://evil.example", false},
		{"foreign origin in development", true, "https://evil.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.CORS(devConfig(tt.dev), "http://localhost:5173/")(okHandler)

			request := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
			request.Header.Set("Origin", tt.origin)
			request.Header.Set("Access-Control-Request-Method", "POST")
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestSecureHeaders verifies the baseline headers and optional HSTS.
*/
func TestSecureHeaders(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.SecureHeaders(false)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, recorder.Header().Get("Strict-Transport-Security"))

	recorder = httptest.NewRecorder()
	middleware.SecureHeaders(true)(okHandler).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get("Strict-Transport-Security"))
}

/*
TestIPRateLimiter verifies per-IP buckets.
*/
func TestIPRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewIPRateLimiter(ctx, 3, time.Hour)
	handler := limiter.Middleware(okHandler)

	call := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		request.RemoteAddr = ip + ":40000"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

/*
TestClientIP verifies proxy headers are honoured only when trusted.
*/
func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		want       string
	}{
		{"socket address", false, nil, "10.0.0.1"},
		{"forwarded header ignored", false, map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.1"},
		{"real ip header ignored", false, map[string]string{"X-Real-IP": "203.0.113.7"}, "10.0.0.1"},
		{"trusted forwarded chain", true, map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"trusted real ip wins", true, map[string]string{"X-Real-IP": "198.51.100.2", "X-Forwarded-For": "203.0.113.7"}, "198.51.100.2"},
		{"trusted without headers", true, nil, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientIP(tt.trustProxy)(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
				seen = middleware.RealIP(request)
			}))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.RemoteAddr = "10.0.0.1:52000"
			for name, value := range tt.headers {
				request.Header.Set(name, value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), request)

			assert.Equal(t, tt.want, seen)
		})
	}
}

/*
TestIPRateLimiter_ForwardedHeaderRotation verifies an untrusted client cannot
escape its bucket by changing X-Forwarded-For.
*/
func TestIPRateLimiter_ForwardedHeaderRotation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewIPRateLimiter(ctx, 1, time.Hour)
	handler := middleware.ClientIP(false)(limiter.Middleware(okHandler))

	var codes []int
	for i := 0; i < 3; i++ {
		request := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
		request.RemoteAddr = "10.0.0.1:52000"
		request.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

// # Attempt counter fake

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	fail   bool
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: make(map[string]int64)}
}

func (counter *memoryCounter) Count(_ context.Context, key string) (int64, error) {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	if counter.fail {
		return 0, errors.New("redis down")
	}
	return counter.counts[key], nil
}

func (counter *memoryCounter) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	if counter.fail {
		return 0, errors.New("redis down")
	}
	counter.counts[key]++
	return counter.counts[key], nil
}

func (counter *memoryCounter) TTL(context.Context, string) (time.Duration, error) {
	return 90 * time.Second, nil
}

/*
TestAuthAttemptLimit verifies only failures count and the limit blocks further attempts.
*/
func TestAuthAttemptLimit(t *testing.T) {
	counter := newMemoryCounter()
	limit := middleware.AuthAttemptLimit(counter, 2, 15*time.Minute)

	call := func(handler http.Handler) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		request.RemoteAddr = "10.0.0.9:40000"
		recorder := httptest.NewRecorder()
		limit(handler).ServeHTTP(recorder, request)
		return recorder
	}

	// Successes never count.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, call(okHandler).Code)
	}

	assert.Equal(t, http.StatusUnauthorized, call(statusHandler(http.StatusUnauthorized)).Code)
	assert.Equal(t, http.StatusUnauthorized, call(statusHandler(http.StatusUnauthorized)).Code)

	blocked := call(okHandler)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "90", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), "Too many authentication attempts")
}

/*
TestAuthAttemptLimit_FailsOpen verifies a broken counter never blocks logins.
*/
func TestAuthAttemptLimit_FailsOpen(t *testing.T) {
	counter := newMemoryCounter()
	counter.fail = true

	recorder := httptest.NewRecorder()
	middleware.AuthAttemptLimit(counter, 1, time.Minute)(statusHandler(http.StatusUnauthorized)).
		ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
