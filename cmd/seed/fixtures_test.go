// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestLoadFixtures_Bundled verifies the shipped document loads cleanly.
*/
func TestLoadFixtures_Bundled(t *testing.T) {
	file, err := os.Open("../../data/seed.yaml")
	require.NoError(t, err)
	defer file.Close()

	fixtures, err := LoadFixtures(file)
	require.NoError(t, err)

	require.Len(t, fixtures.Users, 3)
	assert.Equal(t, "admin", fixtures.Users[0].Role)
	assert.NotEmpty(t, fixtures.Posts)

	drafts := 0
	for _, item := range fixtures.Posts {
		assert.GreaterOrEqual(t, len(item.Title), 5, item.Title)
		assert.GreaterOrEqual(t, len(item.Body), 20, item.Title)
		if !*item.Published {
			drafts++
		}
	}
	assert.Equal(t, 1, drafts)
}

/*
TestLoadFixtures verifies defaults and rejected documents.
*/
func TestLoadFixtures(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fixtures, err := LoadFixtures(strings.NewReader(`
users:
  - {key: a, fullName: Alice, email: a@example.com, password: Password123}
posts:
  - {author: a, title: Hello world, body: A body long enough to store}
`))
		require.NoError(t, err)
		assert.Equal(t, "user", fixtures.Users[0].Role)

		item := fixtures.Posts[0]
		assert.Equal(t, "other", item.Category)
		assert.Equal(t, []string{}, item.Tags)
		assert.True(t, *item.Published)
		assert.Equal(t, 5, item.ReadTime)
	})

	tests := []struct {
		name     string
		document string
		contains string
	}{
		{"unknown field", "users:\n  - {key: a, email: a@x.io, password: p, nickname: x}\n", "decode"},
		{"missing password", "users:\n  - {key: a, email: a@x.io}\n", "needs key, email and password"},
		{"duplicate key", "users:\n  - {key: a, email: a@x.io, password: p}\n  - {key: a, email: b@x.io, password: p}\n", "duplicate"},
		{"bad role", "users:\n  - {key: a, email: a@x.io, password: p, role: root}\n", "unknown role"},
		{"unknown author", "posts:\n  - {author: ghost, title: Hello, body: body}\n", "unknown author"},
		{"bad category", "users:\n  - {key: a, email: a@x.io, password: p}\nposts:\n  - {author: a, title: Hello, body: body, category: cooking}\n", "unknown category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFixtures(strings.NewReader(tt.document))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
