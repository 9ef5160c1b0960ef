// Copyright (c) 2026 Authapp. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response carries a `success` boolean; failures additionally carry
// either a generic `message` (auth/internal failures) or a per-field
// `errors` map (validation failures). This consistency is what the client
// session manager relies on to parse responses robustly.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkovacev/authapp/internal/platform/apperr"
	"github.com/dkovacev/authapp/internal/platform/ctxkey"
)

// Body is the set of payload fields merged into the response envelope.
type Body map[string]any

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with `success: true` merged into the body.
func OK(writer http.ResponseWriter, body Body) {
	JSON(writer, http.StatusOK, withSuccess(body))
}

// Created writes a 201 Created response with `success: true` merged into the body.
func Created(writer http.ResponseWriter, body Body) {
	JSON(writer, http.StatusCreated, withSuccess(body))
}

// Error converts any Go error into a standardized JSON API error response.
//
// Validation failures render as `{"success": false, "errors": {field: [messages...]}}`
// with per-field messages in rule order; every other failure renders as
// `{"success": false, "message": "..."}`.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	if len(appError.Details) > 0 {
		JSON(writer, appError.HTTPStatus, map[string]any{
			"success": false,
			"errors":  groupDetails(appError.Details),
		})
		return
	}

	JSON(writer, appError.HTTPStatus, map[string]any{
		"success": false,
		"message": appError.Message,
	})
}

// withSuccess merges `success: true` into the payload fields.
func withSuccess(body Body) map[string]any {
	payload := make(map[string]any, len(body)+1)
	payload["success"] = true
	for key, value := range body {
		payload[key] = value
	}
	return payload
}

// groupDetails folds the ordered field-error slice into the wire shape:
// a mapping from field name to its ordered sequence of messages.
func groupDetails(details []apperr.FieldError) map[string][]string {
	grouped := make(map[string][]string, len(details))
	for _, detail := range details {
		grouped[detail.Field] = append(grouped[detail.Field], detail.Message)
	}
	return grouped
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
