// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import "context"

// # Post Data Access

// PostRepository defines the persistence contract for posts and their comments.
type PostRepository interface {

	/*
		List returns one page of posts matching filter and the total match count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Hydrated posts including author and comments
		  - int: Total number of matches across all pages
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error)

	/*
		FindByID returns a single post regardless of its published state.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Post: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Post, error)

	// Create persists a new post. Author.ID must reference an existing account.
	Create(context context.Context, post *Post) error

	// Update overwrites the editable fields of an existing post.
	Update(context context.Context, post *Post) error

	// Delete removes a post and, through the foreign key, its comments.
	Delete(context context.Context, id string) error

	/*
		IncrementViews atomically adds one view.

		Returns:
		  - int: The view count after the increment
		  - error: apperr.NotFound or database errors
	*/
	IncrementViews(context context.Context, id string) (int, error)

	// IncrementLikes atomically adds one like and returns the new count.
	IncrementLikes(context context.Context, id string) (int, error)

	/*
		AddComment appends a comment to the thread of postID.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - comment: *Comment (Author.ID, Content and ID set by the caller)

		Returns:
		  - error: apperr.NotFound if the post does not exist
	*/
	AddComment(context context.Context, postID string, comment *Comment) error
}
