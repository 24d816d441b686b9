// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Rate Limiting

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter limits requests per IP using the token bucket algorithm.
//
// A bucket holds max tokens and refills one token every window/max, which
// approximates "max requests per window" without fixed-window bursts at the edges.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
	every   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

// NewIPRateLimiter creates a limiter and starts its janitor goroutine.
// The janitor stops when context is cancelled.
func NewIPRateLimiter(context context.Context, max int, window time.Duration) *IPRateLimiter {
	limiter := &IPRateLimiter{
		clients: make(map[string]*rateLimitClient),
		every:   rate.Every(window / time.Duration(max)),
		burst:   max,
		ttl:     window,
		now:     time.Now,
	}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.sweep()
			case <-context.Done():
				return
			}
		}
	}()

	return limiter
}

// Allow consumes one token for ip and reports whether the request may proceed.
func (limiter *IPRateLimiter) Allow(ip string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	clientInfo, found := limiter.clients[ip]
	if !found {
		clientInfo = &rateLimitClient{limiter: rate.NewLimiter(limiter.every, limiter.burst)}
		limiter.clients[ip] = clientInfo
	}

	now := limiter.now()
	clientInfo.lastSeen = now
	return clientInfo.limiter.AllowN(now, 1)
}

// sweep drops clients idle for longer than one window; their bucket would be full again anyway.
func (limiter *IPRateLimiter) sweep() {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	for ip, clientInfo := range limiter.clients {
		if now.Sub(clientInfo.lastSeen) > limiter.ttl {
			delete(limiter.clients, ip)
		}
	}
}

// Middleware answers 429 once the caller's bucket is empty.
func (limiter *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !limiter.Allow(RealIP(request)) {
			respond.Error(writer, request, apperr.RateLimited("Too many requests from this IP, please try again later."))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// # Failed Authentication Throttling

// AttemptCounter is a shared fixed-window counter keyed by client.
type AttemptCounter interface {
	// Count returns the current number of attempts recorded for key.
	Count(ctx context.Context, key string) (int64, error)
	// Increment adds one attempt, starting a window of length window on the first hit.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	// TTL reports how long until the current window for key resets.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// AuthAttemptLimit throttles clients that keep failing authentication.
//
// Only responses with status >= 400 are counted, so successful logins never
// consume the allowance. Once max failures are recorded in the window the
// route answers 429 until the window expires. Counter errors fail open.
func AuthAttemptLimit(counter AttemptCounter, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)
			key := constants.RedisPrefixAuthAttempts + RealIP(request)

			count, err := counter.Count(ctx, key)
			if err != nil {
				logger.WarnContext(ctx, "auth_attempt_counter_unavailable", slog.Any("error", err))
			} else if count >= int64(max) {
				if ttl, err := counter.TTL(ctx, key); err == nil && ttl > 0 {
					writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
				}
				respond.Error(writer, request, apperr.RateLimited("Too many authentication attempts, please try again later."))
				return
			}

			recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorder, request)

			if recorder.status < http.StatusBadRequest {
				return
			}

			// The request may already be cancelled; the count must still land.
			if _, err := counter.Increment(context.WithoutCancel(ctx), key, window); err != nil {
				logger.WarnContext(ctx, "auth_attempt_increment_failed", slog.Any("error", err))
			}
		})
	}
}
