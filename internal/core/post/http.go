// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for posts.
type Handler struct {
	service       *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{service: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] configured with the post endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): listings and single reads; a valid token on
//     GET /{id} unlocks the caller's own drafts.
//   - Authoring (Authenticated): create, edit, delete, comment, like.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listPosts)
	router.Get("/category/{category}", handler.listByCategory)
	router.With(handler.authenticator.Optional).Get("/{id}", handler.getPost)

	// ## Authoring
	router.Group(func(authed chi.Router) {
		authed.Use(handler.authenticator.Required)

		authed.Get("/user/my-posts", handler.listMyPosts)
		authed.Post("/", handler.createPost)
		authed.Put("/{id}", handler.updatePost)
		authed.Delete("/{id}", handler.deletePost)
		authed.Post("/{id}/comments", handler.addComment)
		authed.Post("/{id}/like", handler.likePost)
	})

	return router
}

/*
listPosts returns published posts.

GET /api/posts?page&limit&category&search&sort
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	query, err := parseListQuery(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, meta, err := handler.service.List(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Posts retrieved successfully", posts, meta)
}

/*
listByCategory returns published posts of one category.

GET /api/posts/category/{category}

Response:
  - 400: Invalid category
*/
func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := parseCategory(requestutil.Param(request, FieldCategory))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := pagination.Parse(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, meta, err := handler.service.ListByCategory(request.Context(), category, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Posts in "+string(category)+" retrieved successfully", posts, meta)
}

// listMyPosts returns every post of the caller. GET /api/posts/user/my-posts
func (handler *Handler) listMyPosts(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := pagination.Parse(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	posts, meta, err := handler.service.ListByAuthor(request.Context(), claims.UserID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Your posts retrieved successfully", posts, meta)
}

/*
getPost returns one post and counts the view.

GET /api/posts/{id}

Response:
  - 200: Post
  - 404: Missing, or a draft the caller may not see
  - 422: Invalid post ID
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	id, err := parsePostID(requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), id, requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post retrieved successfully", item)
}

/*
createPost stores a new post owned by the caller.

POST /api/posts

Response:
  - 201: Post
  - 422: Field errors
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body postRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseCreate(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Post created successfully", item)
}

/*
updatePost edits a post.

PUT /api/posts/{id}

Response:
  - 200: Post
  - 403: Caller is neither author nor admin
  - 404: Post not found
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := parsePostID(requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body postRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseUpdate(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), claims, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post updated successfully", item)
}

// deletePost removes a post. DELETE /api/posts/{id}
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := parsePostID(requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Post deleted successfully")
}

/*
addComment appends a comment and returns the whole post.

POST /api/posts/{id}/comments

Response:
  - 201: Post
  - 404: Post not found
  - 422: Comment content is required
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := parsePostID(requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body commentRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := parseComment(body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.AddComment(request.Context(), claims, id, content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Comment added successfully", item)
}

// likePost adds one like. POST /api/posts/{id}/like
func (handler *Handler) likePost(writer http.ResponseWriter, request *http.Request) {
	id, err := parsePostID(requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.service.Like(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Post liked successfully", map[string]int{"likes": likes})
}
