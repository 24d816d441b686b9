// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// postRepository implements [PostRepository] using pgx.
//
// Every read joins the author summary and aggregates the comment thread into
// a JSON array, so a post is always loaded in a single round-trip.
type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository constructs a PostgreSQL backed post store.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

var (
	postTable    = schema.ContentPost
	accountTable = schema.UserAccount
	commentTable = schema.ContentComment
)

// selectPost is the shared projection: post columns, author summary, comment thread.
var selectPost = fmt.Sprintf(`
	SELECT
		p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
		a.%s, a.%s, a.%s, a.%s,
		COALESCE((
			SELECT json_agg(json_build_object(
				'id', c.%s,
				'content', c.%s,
				'createdAt', c.%s,
				'author', json_build_object('id', ca.%s, 'fullName', ca.%s, 'email', ca.%s, 'avatar', ca.%s)
			) ORDER BY c.%s, c.%s)
			FROM %s c
			JOIN %s ca ON ca.%s = c.%s
			WHERE c.%s = p.%s
		), '[]') AS comments
	FROM %s p
	JOIN %s a ON a.%s = p.%s`,
	postTable.ID, postTable.Title, postTable.Body, postTable.Category, postTable.Tags, postTable.Published,
	postTable.Likes, postTable.Views, postTable.ReadTime, postTable.CreatedAt, postTable.UpdatedAt,
	accountTable.ID, accountTable.FullName, accountTable.Email, accountTable.AvatarURL,
	commentTable.ID, commentTable.Content, commentTable.CreatedAt,
	accountTable.ID, accountTable.FullName, accountTable.Email, accountTable.AvatarURL,
	commentTable.CreatedAt, commentTable.ID,
	commentTable.Table,
	accountTable.Table, accountTable.ID, commentTable.AuthorID,
	commentTable.PostID, postTable.ID,
	postTable.Table,
	accountTable.Table, accountTable.ID, postTable.AuthorID,
)

/*
List returns a filtered, paginated slice of posts and the total count.

Description: The WHERE clause is built once and shared by the page query and
the COUNT query, so the total stays correct even for pages past the end.
Search matches title and body with ILIKE and tags element-wise.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Post: Hydrated posts
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *postRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s p WHERE %s`, postTable.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_count_failed: %w", err)
	}

	if total == 0 {
		return []*Post{}, 0, nil
	}

	pageQuery := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectPost, where, orderBy(filter.Sort), len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, limit)
	for rows.Next() {
		item, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_list_rows_failed: %w", err)
	}

	return posts, total, nil
}

// buildWhere turns filter into a WHERE body over alias "p" with positional args.
func buildWhere(filter Filter) (string, []any) {
	conditions := []string{"TRUE"}
	var args []any

	if filter.PublishedOnly {
		conditions = append(conditions, fmt.Sprintf("p.%s", postTable.Published))
	}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", postTable.Category, len(args)))
	}

	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", postTable.AuthorID, len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(p.%[1]s ILIKE $%[4]d OR p.%[2]s ILIKE $%[4]d OR EXISTS (SELECT 1 FROM unnest(p.%[3]s) AS tag WHERE tag ILIKE $%[4]d))",
			postTable.Title, postTable.Body, postTable.Tags, n,
		))
	}

	return strings.Join(conditions, " AND "), args
}

func orderBy(sort Sort) string {
	switch sort {
	case SortOldest:
		return fmt.Sprintf("p.%s ASC, p.%s ASC", postTable.CreatedAt, postTable.ID)
	case SortPopular:
		return fmt.Sprintf("p.%s DESC, p.%s DESC, p.%s DESC", postTable.Likes, postTable.Views, postTable.CreatedAt)
	default:
		return fmt.Sprintf("p.%s DESC, p.%s DESC", postTable.CreatedAt, postTable.ID)
	}
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

/*
FindByID retrieves a post with its author and comments.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *postRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := fmt.Sprintf(`%s WHERE p.%s = $1`, selectPost, postTable.ID)

	item, err := scanPost(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, err
	}
	return item, nil
}

/*
Create persists a new post.

Parameters:
  - context: context.Context
  - item: *Post (timestamps are initialized here)

Returns:
  - error: Constraint violations or database errors
*/
func (repository *postRepository) Create(context context.Context, item *Post) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		postTable.Table,
		postTable.ID, postTable.Title, postTable.Body, postTable.AuthorID, postTable.Category,
		postTable.Tags, postTable.Published, postTable.ReadTime, postTable.CreatedAt, postTable.UpdatedAt,
	)

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		item.ID,
		item.Title,
		item.Body,
		item.Author.ID,
		string(item.Category),
		item.Tags,
		item.Published,
		item.ReadTime,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	return nil
}

/*
Update overwrites the editable fields and bumps updatedat.

Parameters:
  - context: context.Context
  - item: *Post

Returns:
  - error: apperr.NotFound, constraint violations or database errors
*/
func (repository *postRepository) Update(context context.Context, item *Post) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		postTable.Table,
		postTable.Title, postTable.Body, postTable.Category, postTable.Tags, postTable.Published, postTable.ReadTime, postTable.UpdatedAt,
		postTable.ID,
	)

	item.UpdatedAt = time.Now().UTC()

	tag, err := repository.pool.Exec(context, query,
		item.ID,
		item.Title,
		item.Body,
		string(item.Category),
		item.Tags,
		item.Published,
		item.ReadTime,
		item.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}
	return nil
}

// Delete removes a post by ID.
func (repository *postRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, postTable.Table, postTable.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}
	return nil
}

// IncrementViews adds one view without touching updatedat.
func (repository *postRepository) IncrementViews(context context.Context, id string) (int, error) {
	return repository.increment(context, id, postTable.Views)
}

// IncrementLikes adds one like without touching updatedat.
func (repository *postRepository) IncrementLikes(context context.Context, id string) (int, error) {
	return repository.increment(context, id, postTable.Likes)
}

func (repository *postRepository) increment(context context.Context, id, column string) (int, error) {
	query := fmt.Sprintf(`UPDATE %[1]s SET %[2]s = %[2]s + 1 WHERE %[3]s = $1 RETURNING %[2]s`,
		postTable.Table, column, postTable.ID,
	)

	var count int
	err := repository.pool.QueryRow(context, query, id).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "Post")
	}
	return count, nil
}

/*
AddComment inserts a comment only if the post exists.

Description: The existence check and the insert are one statement, so a
concurrent delete yields 404 rather than a foreign key error.

Parameters:
  - context: context.Context
  - postID: string
  - item: *Comment

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *postRepository) AddComment(context context.Context, postID string, item *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::timestamptz
		WHERE EXISTS (SELECT 1 FROM %s WHERE %s = $2::uuid)`,
		commentTable.Table,
		commentTable.ID, commentTable.PostID, commentTable.AuthorID, commentTable.Content, commentTable.CreatedAt,
		postTable.Table, postTable.ID,
	)

	item.CreatedAt = time.Now().UTC()

	tag, err := repository.pool.Exec(context, query, item.ID, postID, item.Author.ID, item.Content, item.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Post")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}
	return nil
}

// scanPost hydrates a [Post] from a row selected with selectPost.
func scanPost(row pgx.Row) (*Post, error) {
	var (
		item     Post
		category string
		comments []byte
	)

	err := row.Scan(
		&item.ID,
		&item.Title,
		&item.Body,
		&category,
		&item.Tags,
		&item.Published,
		&item.Likes,
		&item.Views,
		&item.ReadTime,
		&item.CreatedAt,
		&item.UpdatedAt,
		&item.Author.ID,
		&item.Author.FullName,
		&item.Author.Email,
		&item.Author.Avatar,
		&comments,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Post")
	}
	if err != nil {
		return nil, dberr.Wrap(err, "Post")
	}

	item.Category = Category(category)
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if err := json.Unmarshal(comments, &item.Comments); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_decode_comments_failed: %w", err)
	}

	return &item, nil
}
