// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/middleware"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/users/auth"
)

// # In-memory repository

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*auth.User)}
}

func (repo *memoryUsers) clone(user *auth.User) *auth.User {
	copied := *user
	copied.RefreshTokens = auth.NewRefreshTokenList(user.RefreshTokens.Entries()...)
	return &copied
}

func notFound() error {
	return apperr.NotFound("User").WithCause(auth.ErrUserNotFound)
}

func (repo *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email already exists")
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repo.users[user.ID] = repo.clone(user)
	return nil
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		return repo.clone(user), nil
	}
	return nil, notFound()
}

func (repo *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			return repo.clone(user), nil
		}
	}
	return nil, notFound()
}

func (repo *memoryUsers) SaveSessions(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.users[user.ID]
	if !ok {
		return notFound()
	}
	stored.RefreshTokens = auth.NewRefreshTokenList(user.RefreshTokens.Entries()...)
	stored.LastLogin = user.LastLogin
	return nil
}

func (repo *memoryUsers) RemoveRefreshToken(_ context.Context, userID, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if stored, ok := repo.users[userID]; ok {
		stored.RefreshTokens.Remove(token)
	}
	return nil
}

func (repo *memoryUsers) ClearRefreshTokens(_ context.Context, userID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if stored, ok := repo.users[userID]; ok {
		stored.RefreshTokens.Clear()
	}
	return nil
}

func (repo *memoryUsers) FindIdentity(_ context.Context, userID string) (*middleware.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if stored, ok := repo.users[userID]; ok {
		return &middleware.Identity{UserID: stored.ID, IsActive: stored.IsActive}, nil
	}
	return nil, nil
}

func (repo *memoryUsers) setActive(userID string, active bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users[userID].IsActive = active
}

func (repo *memoryUsers) delete(userID string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.users, userID)
}

func (repo *memoryUsers) sessions(userID string) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.users[userID].RefreshTokens.Len()
}

// # Fixtures

func newTokens(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "inkwell-test",
	})
	require.NoError(t, err)
	return tokens
}
