// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/core/post"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

var (
	jane  = post.Author{ID: "u-jane", FullName: "Jane Smith", Email: "jane@example.com"}
	mike  = post.Author{ID: "u-mike", FullName: "Mike Johnson", Email: "mike@example.com"}
	admin = post.Author{ID: "u-admin", FullName: "John Doe", Email: "john@example.com"}

	asJane  = &sec.AuthClaims{UserID: jane.ID, Email: jane.Email, Role: string(sec.RoleUser)}
	asMike  = &sec.AuthClaims{UserID: mike.ID, Email: mike.Email, Role: string(sec.RoleUser)}
	asAdmin = &sec.AuthClaims{UserID: admin.ID, Email: admin.Email, Role: string(sec.RoleAdmin)}
)

func draft(title string, published bool) post.CreateInput {
	return post.CreateInput{
		Title:     title,
		Body:      "A body that is comfortably long enough to pass.",
		Category:  post.CategoryOther,
		Tags:      []string{},
		Published: published,
		ReadTime:  5,
	}
}

func status(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

/*
TestService_GetVisibility verifies drafts are hidden from everyone but author and admin.
*/
func TestService_GetVisibility(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPosts(jane, mike, admin)
	service := post.NewService(repo)

	hidden, err := service.Create(ctx, asJane, draft("Jane's draft", false))
	require.NoError(t, err)

	tests := []struct {
		name    string
		viewer  *sec.AuthClaims
		visible bool
	}{
		{"anonymous", nil, false},
		{"other user", asMike, false},
		{"author", asJane, true},
		{"admin", asAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := repo.views(hidden.ID)
			item, err := service.Get(ctx, hidden.ID, tt.viewer)

			if !tt.visible {
				assert.Equal(t, http.StatusNotFound, status(t, err))
				assert.Equal(t, before, repo.views(hidden.ID), "hidden reads are not counted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, before+1, item.Views)
		})
	}
}

/*
TestService_Ownership verifies update and delete require author or admin.
*/
func TestService_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPosts(jane, mike, admin)
	service := post.NewService(repo)

	created, err := service.Create(ctx, asJane, draft("Original title", true))
	require.NoError(t, err)

	newTitle := "Edited by someone"
	_, err = service.Update(ctx, asMike, created.ID, post.UpdateInput{Title: &newTitle})
	assert.Equal(t, http.StatusForbidden, status(t, err))
	assert.Equal(t, "You do not have permission to update this post", apperr.As(err).Message)

	err = service.Delete(ctx, asMike, created.ID)
	assert.Equal(t, http.StatusForbidden, status(t, err))
	assert.Equal(t, "You do not have permission to delete this post", apperr.As(err).Message)

	updated, err := service.Update(ctx, asAdmin, created.ID, post.UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, jane.ID, updated.Author.ID, "editing never transfers ownership")

	require.NoError(t, service.Delete(ctx, asJane, created.ID))
	_, err = service.Get(ctx, created.ID, asJane)
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = service.Update(ctx, asJane, "missing", post.UpdateInput{})
	assert.Equal(t, http.StatusNotFound, status(t, err))
}

/*
TestService_Listings verifies visibility, sort orders and pagination metadata.
*/
func TestService_Listings(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPosts(jane, mike)
	service := post.NewService(repo)

	var ids []string
	for i := 1; i <= 7; i++ {
		input := draft(fmt.Sprintf("Post number %d", i), true)
		if i == 4 {
			input.Published = false
		}
		if i%2 == 0 {
			input.Category = post.CategoryReact
			input.Tags = []string{"Hooks"}
		}
		created, err := service.Create(ctx, asJane, input)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	_, err := service.Create(ctx, asMike, draft("Mike's only post", true))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := service.Like(ctx, ids[0])
		require.NoError(t, err)
	}

	t.Run("public list hides drafts and paginates", func(t *testing.T) {
		posts, meta, err := service.List(ctx, post.ListQuery{Page: pagination.Params{Page: 2, Limit: 5}, Sort: post.SortNewest})
		require.NoError(t, err)
		assert.Equal(t, pagination.Meta{Page: 2, Limit: 5, Total: 7, Pages: 2}, meta)
		assert.Len(t, posts, 2)
	})

	t.Run("popular puts liked first", func(t *testing.T) {
		posts, _, err := service.List(ctx, post.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}, Sort: post.SortPopular})
		require.NoError(t, err)
		assert.Equal(t, ids[0], posts[0].ID)
	})

	t.Run("oldest first", func(t *testing.T) {
		posts, _, err := service.List(ctx, post.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}, Sort: post.SortOldest})
		require.NoError(t, err)
		assert.Equal(t, ids[0], posts[0].ID)
	})

	t.Run("search matches tags case-insensitively", func(t *testing.T) {
		posts, meta, err := service.List(ctx, post.ListQuery{Page: pagination.Params{Page: 1, Limit: 10}, Search: "hOOks"})
		require.NoError(t, err)
		assert.Equal(t, 2, meta.Total, "posts 2 and 6; post 4 is a draft")
		assert.Len(t, posts, 2)
	})

	t.Run("category", func(t *testing.T) {
		_, meta, err := service.ListByCategory(ctx, post.CategoryReact, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, meta.Total)
	})

	t.Run("my posts include drafts", func(t *testing.T) {
		posts, meta, err := service.ListByAuthor(ctx, jane.ID, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 7, meta.Total)
		assert.Equal(t, ids[6], posts[0].ID, "newest first")
	})
}

/*
TestService_Engagement verifies likes and comments.
*/
func TestService_Engagement(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPosts(jane, mike)
	service := post.NewService(repo)

	created, err := service.Create(ctx, asJane, draft("Engaging post", true))
	require.NoError(t, err)

	likes, err := service.Like(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	withComment, err := service.AddComment(ctx, asMike, created.ID, "Nice write-up")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	assert.Equal(t, "Mike Johnson", withComment.Comments[0].Author.FullName)
	assert.Equal(t, "Nice write-up", withComment.Comments[0].Content)

	_, err = service.AddComment(ctx, asMike, "missing", "Hello")
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = service.Like(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, status(t, err))
}
