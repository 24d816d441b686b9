// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// Service implements the publishing use cases.
type Service struct {
	postRepository PostRepository
}

// NewService constructs a new post [Service].
func NewService(postRepo PostRepository) *Service {
	return &Service{postRepository: postRepo}
}

// # Listings

/*
List returns one page of published posts.

Parameters:
  - context: context.Context
  - query: ListQuery (category, search, sort, page)

Returns:
  - []*Post: The page
  - pagination.Meta: page, limit, total, pages
  - error: Storage failures
*/
func (service *Service) List(context context.Context, query ListQuery) ([]*Post, pagination.Meta, error) {
	filter := Filter{
		PublishedOnly: true,
		Category:      query.Category,
		Search:        query.Search,
		Sort:          query.Sort,
	}
	return service.list(context, filter, query.Page)
}

// ListByCategory returns published posts of one category, newest first.
func (service *Service) ListByCategory(context context.Context, category Category, page pagination.Params) ([]*Post, pagination.Meta, error) {
	return service.list(context, Filter{PublishedOnly: true, Category: category, Sort: SortNewest}, page)
}

// ListByAuthor returns every post of one author, drafts included, newest first.
func (service *Service) ListByAuthor(context context.Context, authorID string, page pagination.Params) ([]*Post, pagination.Meta, error) {
	return service.list(context, Filter{AuthorID: authorID, Sort: SortNewest}, page)
}

func (service *Service) list(context context.Context, filter Filter, page pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.postRepository.List(context, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("post_service_list_failed: %w", err)
	}

	ctxutil.GetLogger(context).DebugContext(context, "post_list",
		slog.Int("count", len(posts)),
		slog.Int("page", page.Page),
	)
	return posts, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Reading

/*
Get returns a single post and counts the view.

Description: A draft is reported as missing unless viewer is its author or an
admin. The view is counted only after that check passes.

Parameters:
  - context: context.Context
  - id: string
  - viewer: *sec.AuthClaims (nil for anonymous requests)

Returns:
  - *Post: The post with the incremented view count
  - error: 404 or storage failures
*/
func (service *Service) Get(context context.Context, id string, viewer *sec.AuthClaims) (*Post, error) {
	item, err := service.postRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("post_service_get_failed: %w", err)
	}

	if !item.Published && !canManage(viewer, item) {
		return nil, apperr.NotFound("Post")
	}

	views, err := service.postRepository.IncrementViews(context, id)
	if err != nil {
		return nil, fmt.Errorf("post_service_count_view_failed: %w", err)
	}
	item.Views = views

	return item, nil
}

// # Authoring

/*
Create publishes (or drafts) a new post owned by author.

Parameters:
  - context: context.Context
  - author: *sec.AuthClaims
  - input: CreateInput (already validated and defaulted)

Returns:
  - *Post: The stored post with its author summary
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, author *sec.AuthClaims, input CreateInput) (*Post, error) {
	item := &Post{
		ID:        uuid.New(),
		Title:     input.Title,
		Body:      input.Body,
		Author:    Author{ID: author.UserID},
		Category:  input.Category,
		Tags:      input.Tags,
		Published: input.Published,
		ReadTime:  input.ReadTime,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := service.postRepository.Create(context, item); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "post_created", slog.String("post_id", item.ID))
	return service.postRepository.FindByID(context, item.ID)
}

/*
Update applies a partial edit on behalf of actor.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - id: string
  - input: UpdateInput

Returns:
  - *Post: The post after the edit
  - error: 404, 403 or storage failures
*/
func (service *Service) Update(context context.Context, actor *sec.AuthClaims, id string, input UpdateInput) (*Post, error) {
	item, err := service.postRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("post_service_update_lookup_failed: %w", err)
	}

	if !canManage(actor, item) {
		ctxutil.GetLogger(context).WarnContext(context, "post_update_forbidden", slog.String("post_id", id))
		return nil, apperr.Forbidden("You do not have permission to update this post")
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Body != nil {
		item.Body = *input.Body
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.SetTags {
		item.Tags = input.Tags
	}
	if input.Published != nil {
		item.Published = *input.Published
	}
	if input.ReadTime != nil {
		item.ReadTime = *input.ReadTime
	}

	if err := service.postRepository.Update(context, item); err != nil {
		return nil, fmt.Errorf("post_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "post_updated", slog.String("post_id", id))
	return item, nil
}

/*
Delete removes a post on behalf of actor.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims
  - id: string

Returns:
  - error: 404, 403 or storage failures
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, id string) error {
	item, err := service.postRepository.FindByID(context, id)
	if err != nil {
		return fmt.Errorf("post_service_delete_lookup_failed: %w", err)
	}

	if !canManage(actor, item) {
		ctxutil.GetLogger(context).WarnContext(context, "post_delete_forbidden", slog.String("post_id", id))
		return apperr.Forbidden("You do not have permission to delete this post")
	}

	if err := service.postRepository.Delete(context, id); err != nil {
		return fmt.Errorf("post_service_delete_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "post_deleted", slog.String("post_id", id))
	return nil
}

// # Engagement

// AddComment appends a comment by actor and returns the updated post.
func (service *Service) AddComment(context context.Context, actor *sec.AuthClaims, postID, content string) (*Post, error) {
	item := &Comment{
		ID:      uuid.New(),
		Author:  Author{ID: actor.UserID},
		Content: content,
	}

	if err := service.postRepository.AddComment(context, postID, item); err != nil {
		return nil, fmt.Errorf("post_service_add_comment_failed: %w", err)
	}

	return service.postRepository.FindByID(context, postID)
}

// Like adds one like and returns the new total.
func (service *Service) Like(context context.Context, postID string) (int, error) {
	likes, err := service.postRepository.IncrementLikes(context, postID)
	if err != nil {
		return 0, fmt.Errorf("post_service_like_failed: %w", err)
	}
	return likes, nil
}

// canManage reports whether actor is the post's author or an admin.
func canManage(actor *sec.AuthClaims, item *Post) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == item.Author.ID || sec.UserRole(actor.Role) == sec.RoleAdmin
}
