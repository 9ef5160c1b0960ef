// Copyright (c) 2026 Authapp. All rights reserved.

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovacev/authapp/internal/auth"
)

// newTestRouter mounts the auth routes the same way the API server does.
func newTestRouter(revokeOnLogin bool) (http.Handler, *auth.Service) {
	service, _, _ := newTestService(revokeOnLogin)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Mount("/api/auth", handler.Routes())
	router.Mount("/api", handler.SessionRoutes())
	return router, service
}

// doJSON performs a request with an optional JSON body and bearer token,
// returning the status and decoded body.
func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	request := httptest.NewRequest(method, path, &body)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	decoded := map[string]any{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder.Code, decoded
}

func registerPayload() map[string]string {
	return map[string]string{
		"name":                  "Alice Example",
		"email":                 "alice@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	}
}

/*
TestHTTP_Register verifies the 201 envelope: message, narrow user
projection, and token.
*/
func TestHTTP_Register(t *testing.T) {
	router, _ := newTestRouter(true)

	status, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Registration successful", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, user["id"])
	assert.Equal(t, "Alice Example", user["name"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.NotEmpty(t, user["created_at"])

	// Narrow projection: no verification or update timestamps, and never
	// any password material.
	assert.NotContains(t, user, "email_verified_at")
	assert.NotContains(t, user, "updated_at")
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
}

/*
TestHTTP_Register_ValidationErrors verifies the 422 shape: a field-to-
messages map under "errors", no "message" key.
*/
func TestHTTP_Register_ValidationErrors(t *testing.T) {
	router, _ := newTestRouter(true)

	payload := map[string]string{
		"name":                  "",
		"email":                 "not-an-email",
		"password":              "abc",
		"password_confirmation": "xyz",
	}
	status, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", payload)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "message")

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	// Each field maps to an array of messages.
	nameMessages, ok := errs["name"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, nameMessages)
}

/*
TestHTTP_Register_DuplicateEmail verifies the duplicate registration 422.
*/
func TestHTTP_Register_DuplicateEmail(t *testing.T) {
	router, _ := newTestRouter(true)

	status, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	messages, ok := errs["email"].([]any)
	require.True(t, ok)
	assert.Contains(t, messages, "A user with this email already exists")
}

/*
TestHTTP_Register_InvalidJSON verifies a malformed body is a 422, not a 500.
*/
func TestHTTP_Register_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(true)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

/*
TestHTTP_Login verifies the 200 envelope and that login failures carry one
generic message regardless of cause.
*/
func TestHTTP_Login(t *testing.T) {
	router, _ := newTestRouter(true)

	status, _ := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	// Wrong password vs unknown account: byte-identical failure envelopes.
	status1, wrongBody := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	status2, unknownBody := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, status1)
	assert.Equal(t, http.StatusUnauthorized, status2)
	assert.Equal(t, wrongBody, unknownBody)
}

/*
TestHTTP_CurrentUser verifies the wider profile projection behind the
bearer token.
*/
func TestHTTP_CurrentUser(t *testing.T) {
	router, _ := newTestRouter(true)

	status, registered := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, status)
	token := registered["token"].(string)

	status, body := doJSON(t, router, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", user["email"])

	// Wide projection: the extra keys are present (null until verified).
	assert.Contains(t, user, "email_verified_at")
	assert.Contains(t, user, "updated_at")
	assert.Nil(t, user["email_verified_at"])
}

/*
TestHTTP_CurrentUser_Unauthorized verifies missing, malformed, and unknown
tokens all yield the same generic 401.
*/
func TestHTTP_CurrentUser_Unauthorized(t *testing.T) {
	router, _ := newTestRouter(true)

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"not_bearer", "Basic abc123"},
		{"empty_bearer", "Bearer "},
		{"unknown_token", "Bearer deadbeef"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			body := map[string]any{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			messages = append(messages, body["message"].(string))
		})
	}

	// Every failure mode reads identically.
	for _, message := range messages {
		assert.Equal(t, messages[0], message)
	}
}

/*
TestHTTP_Logout verifies the bearer-authenticated logout flow and that the
token is dead afterwards.
*/
func TestHTTP_Logout(t *testing.T) {
	router, _ := newTestRouter(true)

	status, registered := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusCreated, status)
	token := registered["token"].(string)

	status, body := doJSON(t, router, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Logged out successfully", body["message"])

	// The revoked token no longer authenticates anything.
	status, _ = doJSON(t, router, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = doJSON(t, router, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

/*
TestHTTP_ExpiredToken verifies an expired token is rejected with the same
generic 401 as an unknown one.
*/
func TestHTTP_ExpiredToken(t *testing.T) {
	service, _, tokens := newTestService(true)
	handler := auth.NewHandler(service)
	router := chi.NewRouter()
	router.Mount("/api/auth", handler.Routes())
	router.Mount("/api", handler.SessionRoutes())

	session, err := service.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	tokens.expire(session.User.ID)

	status, body := doJSON(t, router, http.MethodGet, "/api/user", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthenticated", body["message"])
}
