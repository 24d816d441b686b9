// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Bodies are capped at [constants.MaxBodyBytes]. Unknown fields are ignored.
Well-formed JSON whose value has the wrong type for a field is a 422 on
that field, not a 400.

Parameters:
  - writer: http.ResponseWriter (needed by http.MaxBytesReader)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON, validate.ErrBodyTooLarge or a field
    validation error, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	return decode(writer, request, target, false)
}

/*
DecodeOptionalJSON is [DecodeJSON] for endpoints whose body may be absent.
An empty body leaves target untouched.
*/
func DecodeOptionalJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	return decode(writer, request, target, true)
}

func decode(writer http.ResponseWriter, request *http.Request, target any, optional bool) error {
	if request.Body == nil || request.Body == http.NoBody {
		if optional {
			return nil
		}
		return validate.ErrInvalidJSON
	}

	body := http.MaxBytesReader(writer, request.Body, constants.MaxBodyBytes)
	err := json.NewDecoder(body).Decode(target)

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		return validate.ErrBodyTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return validate.FieldError(typeErr.Field, typeMessage(typeErr.Type))
	case errors.Is(err, io.EOF) && optional:
		return nil
	default:
		return validate.ErrInvalidJSON
	}
}

// typeMessage names the JSON type a field expected.
func typeMessage(expected reflect.Type) string {
	for expected != nil && expected.Kind() == reflect.Pointer {
		expected = expected.Elem()
	}
	if expected == nil {
		return "Invalid type"
	}

	switch expected.Kind() {
	case reflect.Bool:
		return "Must be a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "Must be a number"
	case reflect.String:
		return "Must be a string"
	case reflect.Slice, reflect.Array:
		return "Must be an array"
	case reflect.Map, reflect.Struct:
		return "Must be an object"
	default:
		return "Invalid type"
	}
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
