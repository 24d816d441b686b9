// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"math"
	"net/url"

	"github.com/taibuivan/inkwell/internal/platform/validate"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (page-1)*MaxLimit well inside an int64 SQL OFFSET.
	MaxPage = math.MaxInt32
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// Pages is ceil(total / limit), so an empty result reports zero pages.
func NewMeta(page, limit, total int) Meta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Meta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// Read coerces "page" and "limit" from query into v.
//
// Unlike silent clamping, out-of-range or non-numeric values are recorded as
// validation failures so the caller answers 422.
func Read(v *validate.Validator, query url.Values) Params {
	page := v.Int("page", query.Get("page"), DefaultPage)
	limit := v.Int("limit", query.Get("limit"), DefaultLimit)

	v.Custom("page", page < 1, "Page must be at least 1").
		Custom("page", page > MaxPage, "Page must not exceed 2147483647")
	v.Range("limit", limit, 1, MaxLimit, "Limit must be between 1 and 100")

	return Params{Page: page, Limit: limit}
}

// Parse is [Read] for endpoints that accept nothing but page and limit.
func Parse(query url.Values) (Params, error) {
	v := &validate.Validator{}
	params := Read(v, query)
	if v.HasErrors() {
		return Params{}, v.Err()
	}
	return params, nil
}
