// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

type payload struct {
	Title string `json:"title"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
}

/*
TestDecodeJSON verifies decoding, unknown fields and the malformed/oversized cases.
*/
func TestDecodeJSON(t *testing.T) {
	var target payload
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), post(`{"title":"Hello","extra":1}`), &target))
	assert.Equal(t, "Hello", target.Title)

	err := requestutil.DecodeJSON(httptest.NewRecorder(), post(`{"title":`), &target)
	assert.Same(t, validate.ErrInvalidJSON, err)

	err = requestutil.DecodeJSON(httptest.NewRecorder(), post(""), &target)
	assert.Same(t, validate.ErrInvalidJSON, err)

	huge := `{"title":"` + strings.Repeat("a", 11<<10) + `"}`
	err = requestutil.DecodeJSON(httptest.NewRecorder(), post(huge), &target)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperr.As(err).HTTPStatus)
}

type typedPayload struct {
	ReadTime  *int      `json:"readTime"`
	Published *bool     `json:"published"`
	Tags      *[]string `json:"tags"`
}

/*
TestDecodeJSON_WrongFieldType verifies type mismatches become a field map, not a 400.
*/
func TestDecodeJSON_WrongFieldType(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"string for number", `{"readTime":"abc"}`, "readTime", "Must be a number"},
		{"string for boolean", `{"published":"yes"}`, "published", "Must be a boolean"},
		{"string for array", `{"tags":"go"}`, "tags", "Must be an array"},
		{"first mismatch reported", `{"readTime":"abc","published":"yes"}`, "readTime", "Must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target typedPayload
			err := requestutil.DecodeJSON(httptest.NewRecorder(), post(tt.body), &target)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusUnprocessableEntity, ae.HTTPStatus)
			assert.Equal(t, "Validation failed", ae.Message)
			assert.Equal(t, tt.message, ae.Fields[tt.field])
		})
	}

	t.Run("non-object body stays a 400", func(t *testing.T) {
		var target typedPayload
		err := requestutil.DecodeJSON(httptest.NewRecorder(), post(`[1,2]`), &target)
		assert.Same(t, validate.ErrInvalidJSON, err)
	})
}

/*
TestDecodeOptionalJSON verifies an absent body is accepted.
*/
func TestDecodeOptionalJSON(t *testing.T) {
	target := payload{Title: "unchanged"}

	require.NoError(t, requestutil.DecodeOptionalJSON(httptest.NewRecorder(), post(""), &target))
	require.NoError(t, requestutil.DecodeOptionalJSON(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), &target))
	assert.Equal(t, "unchanged", target.Title)

	err := requestutil.DecodeOptionalJSON(httptest.NewRecorder(), post("not json"), &target)
	assert.Same(t, validate.ErrInvalidJSON, err)
}

/*
TestRequiredClaims verifies anonymous requests are rejected.
*/
func TestRequiredClaims(t *testing.T) {
	_, err := requestutil.RequiredClaims(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
}
