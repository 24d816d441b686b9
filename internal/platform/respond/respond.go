// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// Every response, success or error, leaves through this package and shares
// one envelope: {success, message, data?, errors?, pagination?}. Handlers never
// write status codes themselves.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       any               `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Pagination *pagination.Meta  `json:"pagination,omitempty"`

	// Error carries the internal cause when error detail is enabled (non-production only).
	Error string `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Message writes a 200 OK envelope without a data member.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message})
}

// Paginated writes a 200 OK response with a page of data and its metadata block.
func Paginated(writer http.ResponseWriter, message string, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, Envelope{Success: true, Message: message, Data: data, Pagination: &metadata})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := Translate(err)
	ctx := request.Context()

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := Envelope{
		Success: false,
		Message: appError.Message,
		Errors:  appError.Fields,
	}
	if appError.Cause != nil && appError.HTTPStatus >= http.StatusInternalServerError && ctxutil.ErrorDetail(ctx) {
		envelope.Error = appError.Cause.Error()
	}

	JSON(writer, appError.HTTPStatus, envelope)
}

// Translate classifies any error into the [apperr.AppError] the client will see.
//
// Known failure kinds keep their meaning (validation, tokens, storage
// constraint codes). Everything else becomes a generic 500.
func Translate(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal(errors.New("respond: nil error translated"))
	}

	if appError := apperr.As(err); appError != nil {
		return appError
	}

	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.Unauthorized("Token has expired").WithCause(err)
	case errors.Is(err, sec.ErrTokenInvalid):
		return apperr.Unauthorized("Invalid token").WithCause(err)
	}

	if classified := dberr.Classify(err); classified != nil {
		return classified
	}

	return apperr.Internal(err)
}
