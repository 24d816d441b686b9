// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/inkwell/internal/core/post"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

// memoryPosts mirrors the filtering and ordering of the PostgreSQL store.
type memoryPosts struct {
	mu      sync.Mutex
	posts   map[string]*post.Post
	authors map[string]post.Author
	clock   time.Time
}

func newMemoryPosts(authors ...post.Author) *memoryPosts {
	repo := &memoryPosts{
		posts:   make(map[string]*post.Post),
		authors: make(map[string]post.Author),
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, author := range authors {
		repo.authors[author.ID] = author
	}
	return repo
}

// tick hands out strictly increasing timestamps.
func (repo *memoryPosts) tick() time.Time {
	repo.clock = repo.clock.Add(time.Minute)
	return repo.clock
}

func (repo *memoryPosts) copyOf(item *post.Post) *post.Post {
	copied := *item
	copied.Tags = slices.Clone(item.Tags)
	copied.Comments = slices.Clone(item.Comments)
	if copied.Comments == nil {
		copied.Comments = []post.Comment{}
	}
	return &copied
}

func (repo *memoryPosts) matches(item *post.Post, filter post.Filter) bool {
	if filter.PublishedOnly && !item.Published {
		return false
	}
	if filter.Category != "" && item.Category != filter.Category {
		return false
	}
	if filter.AuthorID != "" && item.Author.ID != filter.AuthorID {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		hit := strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Body), needle) ||
			slices.ContainsFunc(item.Tags, func(tag string) bool { return strings.Contains(strings.ToLower(tag), needle) })
		if !hit {
			return false
		}
	}
	return true
}

func (repo *memoryPosts) List(_ context.Context, filter post.Filter, limit, offset int) ([]*post.Post, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []*post.Post
	for _, item := range repo.posts {
		if repo.matches(item, filter) {
			matched = append(matched, repo.copyOf(item))
		}
	}

	slices.SortFunc(matched, func(a, b *post.Post) int {
		switch filter.Sort {
		case post.SortOldest:
			return a.CreatedAt.Compare(b.CreatedAt)
		case post.SortPopular:
			if a.Likes != b.Likes {
				return b.Likes - a.Likes
			}
			return b.Views - a.Views
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})

	total := len(matched)
	if offset >= total {
		return []*post.Post{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (repo *memoryPosts) FindByID(_ context.Context, id string) (*post.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	item, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return repo.copyOf(item), nil
}

func (repo *memoryPosts) Create(_ context.Context, item *post.Post) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	item.CreatedAt = repo.tick()
	item.UpdatedAt = item.CreatedAt
	stored := repo.copyOf(item)
	stored.Author = repo.authors[item.Author.ID]
	repo.posts[item.ID] = stored
	return nil
}

func (repo *memoryPosts) Update(_ context.Context, item *post.Post) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.posts[item.ID]
	if !ok {
		return apperr.NotFound("Post")
	}
	item.UpdatedAt = repo.tick()
	stored.Title, stored.Body, stored.Category = item.Title, item.Body, item.Category
	stored.Tags, stored.Published, stored.ReadTime = slices.Clone(item.Tags), item.Published, item.ReadTime
	stored.UpdatedAt = item.UpdatedAt
	return nil
}

func (repo *memoryPosts) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	return nil
}

func (repo *memoryPosts) IncrementViews(_ context.Context, id string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.posts[id]
	if !ok {
		return 0, apperr.NotFound("Post")
	}
	stored.Views++
	return stored.Views, nil
}

func (repo *memoryPosts) IncrementLikes(_ context.Context, id string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.posts[id]
	if !ok {
		return 0, apperr.NotFound("Post")
	}
	stored.Likes++
	return stored.Likes, nil
}

func (repo *memoryPosts) AddComment(_ context.Context, postID string, item *post.Comment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	stored, ok := repo.posts[postID]
	if !ok {
		return apperr.NotFound("Post")
	}
	item.CreatedAt = repo.tick()
	item.Author = repo.authors[item.Author.ID]
	stored.Comments = append(stored.Comments, *item)
	return nil
}

func (repo *memoryPosts) views(id string) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.posts[id].Views
}
