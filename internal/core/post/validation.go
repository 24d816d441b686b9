// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
	"github.com/taibuivan/inkwell/pkg/slice"
)

// # Validation Rules

const (
	titleMin        = 5
	titleMax        = 200
	bodyMin         = 20
	readTimeMin     = 1
	readTimeMax     = 120
	defaultReadTime = 5
	searchMax       = 100
	commentMax      = 2000
)

// # Request Payloads

// postRequest is shared by create and update; pointers tell absent from zero.
type postRequest struct {
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
	ReadTime  *int      `json:"readTime"`
}

type commentRequest struct {
	Content string `json:"content"`
}

// # Validated Inputs

// CreateInput is a fully defaulted new post.
type CreateInput struct {
	Title     string
	Body      string
	Category  Category
	Tags      []string
	Published bool
	ReadTime  int
}

// UpdateInput is a partial edit. Nil fields are left untouched.
type UpdateInput struct {
	Title     *string
	Body      *string
	Category  *Category
	Tags      []string
	SetTags   bool
	Published *bool
	ReadTime  *int
}

// ListQuery is a validated listing request.
type ListQuery struct {
	Page     pagination.Params
	Category Category
	Search   string
	Sort     Sort
}

// # Parsers

/*
parseCreate validates a new post and applies defaults.

Defaults: category "other", tags [], published true, readTime 5.
*/
func parseCreate(body postRequest) (CreateInput, error) {
	validator := &validate.Validator{}

	input := CreateInput{
		Category:  CategoryOther,
		Tags:      []string{},
		Published: true,
		ReadTime:  defaultReadTime,
	}

	input.Title = checkTitle(validator, body.Title, true)
	input.Body = checkBody(validator, body.Body, true)

	if body.Category != nil {
		input.Category = checkCategory(validator, *body.Category)
	}
	if body.Tags != nil {
		input.Tags = normalizeTags(*body.Tags)
	}
	if body.Published != nil {
		input.Published = *body.Published
	}
	if body.ReadTime != nil {
		input.ReadTime = checkReadTime(validator, *body.ReadTime)
	}

	if err := validator.Err(); err != nil {
		return CreateInput{}, err
	}
	return input, nil
}

// parseUpdate validates a partial edit with the same rules as create.
func parseUpdate(body postRequest) (UpdateInput, error) {
	validator := &validate.Validator{}
	var input UpdateInput

	if body.Title != nil {
		title := checkTitle(validator, body.Title, false)
		input.Title = &title
	}
	if body.Body != nil {
		text := checkBody(validator, body.Body, false)
		input.Body = &text
	}
	if body.Category != nil {
		category := checkCategory(validator, *body.Category)
		input.Category = &category
	}
	if body.Tags != nil {
		input.Tags = normalizeTags(*body.Tags)
		input.SetTags = true
	}
	input.Published = body.Published
	if body.ReadTime != nil {
		readTime := checkReadTime(validator, *body.ReadTime)
		input.ReadTime = &readTime
	}

	if err := validator.Err(); err != nil {
		return UpdateInput{}, err
	}
	return input, nil
}

// parseListQuery reads page, limit, category, search and sort from the query string.
func parseListQuery(query url.Values) (ListQuery, error) {
	validator := &validate.Validator{}

	result := ListQuery{
		Page:   pagination.Read(validator, query),
		Search: strings.TrimSpace(query.Get(FieldSearch)),
		Sort:   SortNewest,
	}

	if raw := query.Get(FieldSort); raw != "" {
		validator.OneOf(FieldSort, raw, Sorts(), "Sort must be one of: newest, oldest, popular")
		result.Sort = Sort(raw)
	}

	if raw := query.Get(FieldCategory); raw != "" {
		result.Category = checkCategory(validator, raw)
	}

	validator.MaxLen(FieldSearch, result.Search, searchMax, "Search must not exceed 100 characters")

	if err := validator.Err(); err != nil {
		return ListQuery{}, err
	}
	return result, nil
}

// parsePostID rejects identifiers that cannot name a post.
func parsePostID(id string) (string, error) {
	validator := &validate.Validator{}
	validator.UUID(FieldID, id, "Invalid post ID")

	if err := validator.Err(); err != nil {
		return "", err
	}
	return id, nil
}

// parseCategory validates a category path segment. Unknown values are a 400.
func parseCategory(raw string) (Category, error) {
	category := Category(raw)
	if !category.IsValid() {
		return "", apperr.BadRequest("Invalid category")
	}
	return category, nil
}

// parseComment trims and bounds a comment body.
func parseComment(body commentRequest) (string, error) {
	content := strings.TrimSpace(body.Content)
	if content == "" {
		return "", apperr.Unprocessable("Comment content is required")
	}
	if utf8.RuneCountInString(content) > commentMax {
		return "", apperr.Unprocessable("Comment must not exceed 2000 characters")
	}
	return content, nil
}

// # Field Checks

func checkTitle(validator *validate.Validator, raw *string, required bool) string {
	if raw == nil {
		if required {
			validator.Custom(FieldTitle, true, "Title is required")
		}
		return ""
	}
	title := strings.TrimSpace(*raw)
	validator.MinLen(FieldTitle, title, titleMin, "Title must be at least 5 characters").
		MaxLen(FieldTitle, title, titleMax, "Title must not exceed 200 characters")
	return title
}

func checkBody(validator *validate.Validator, raw *string, required bool) string {
	if raw == nil {
		if required {
			validator.Custom(FieldBody, true, "Body is required")
		}
		return ""
	}
	text := strings.TrimSpace(*raw)
	validator.MinLen(FieldBody, text, bodyMin, "Body must be at least 20 characters")
	return text
}

func checkCategory(validator *validate.Validator, raw string) Category {
	validator.OneOf(FieldCategory, raw, Categories(), "Invalid category")
	return Category(raw)
}

func checkReadTime(validator *validate.Validator, readTime int) int {
	validator.Range(FieldReadTime, readTime, readTimeMin, readTimeMax, "Read time must be between 1 and 120 minutes")
	return readTime
}

// normalizeTags trims each tag, drops empties and duplicates, and never returns nil.
func normalizeTags(tags []string) []string {
	trimmed := slice.Map(tags, strings.TrimSpace)
	return slice.Unique(slice.Filter(trimmed, func(tag string) bool { return tag != "" }))
}
