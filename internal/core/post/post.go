// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post defines the blog's publishing domain.

Core Responsibility:

  - Catalogue: Posts grouped by a closed set of categories and free-form tags.
  - Engagement: View and like counters, and an ordered comment thread per post.
  - Ownership: Only the author or an admin may change or remove a post.

Unpublished posts are drafts: they never appear in public lists and are only
readable by their author or an admin.
*/
package post

import "time"

// # Domain Enums

// Category is the closed set of topics a post can be filed under.
type Category string

const (
	CategoryWebDevelopment Category = "web-development"
	CategoryHTML           Category = "html"
	CategoryCSS            Category = "css"
	CategoryJavaScript     Category = "javascript"
	CategoryReact          Category = "react"
	CategoryFrontend       Category = "frontend"
	CategoryBackend        Category = "backend"
	CategoryDatabase       Category = "database"
	CategoryDevOps         Category = "devops"
	CategoryOther          Category = "other"
)

var categories = []Category{
	CategoryWebDevelopment, CategoryHTML, CategoryCSS, CategoryJavaScript, CategoryReact,
	CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryDevOps, CategoryOther,
}

// Categories returns every category value as a string, in display order.
func Categories() []string {
	values := make([]string, len(categories))
	for i, category := range categories {
		values[i] = string(category)
	}
	return values
}

// IsValid reports whether c is a recognised [Category].
func (c Category) IsValid() bool {
	for _, category := range categories {
		if c == category {
			return true
		}
	}
	return false
}

// Sort selects the ordering of a post listing.
type Sort string

const (
	// SortNewest orders by creation time, newest first.
	SortNewest Sort = "newest"

	// SortOldest orders by creation time, oldest first.
	SortOldest Sort = "oldest"

	// SortPopular orders by likes, then views, both descending.
	SortPopular Sort = "popular"
)

// Sorts lists the accepted sort values.
func Sorts() []string {
	return []string{string(SortNewest), string(SortOldest), string(SortPopular)}
}

// # Domain Entities

// Author is the public summary of an account embedded in posts and comments.
type Author struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// Comment is one entry of a post's thread.
type Comment struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a blog article together with its engagement data.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    Author    `json:"author"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
	Likes     int       `json:"likes"`
	Views     int       `json:"views"`
	Comments  []Comment `json:"comments"`
	ReadTime  int       `json:"readTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows a post listing.
type Filter struct {
	// PublishedOnly hides drafts. Public listings always set it.
	PublishedOnly bool

	// Category restricts to one category when non-empty.
	Category Category

	// AuthorID restricts to one author's posts when non-empty.
	AuthorID string

	// Search is a case-insensitive substring matched against title, body and tags.
	Search string

	Sort Sort
}

// # Field Identifiers

const (
	FieldID        = "id"
	FieldTitle     = "title"
	FieldBody      = "body"
	FieldCategory  = "category"
	FieldTags      = "tags"
	FieldPublished = "published"
	FieldReadTime  = "readTime"
	FieldSearch    = "search"
	FieldSort      = "sort"
	FieldContent   = "content"
)
