// Copyright (c) 2026 Authapp. All rights reserved.

/*
Package client implements the consumer side of the Authapp API: a thin HTTP
client plus a session manager that persists the bearer token between runs
and replays it on every authenticated call.

Architecture:

  - APIClient speaks the wire protocol (success envelope, bearer header).
  - StateStore persists the session file on disk.
  - Session orchestrates the two and owns the deauthentication rules.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// defaultRequestTimeout bounds every API call made by the client.
const defaultRequestTimeout = 10 * time.Second

// APIError is a structured failure decoded from the server's error envelope.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int

	// Message is the generic failure message, when the server sent one.
	Message string

	// Fields maps field names to their validation messages for 422 responses.
	Fields map[string][]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.StatusCode)
}

// FieldMessage returns the first validation message for a field, or "".
func (e *APIError) FieldMessage(field string) string {
	if messages := e.Fields[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// IsAuthFailure reports whether the failure means the session is no longer
// usable (401).
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// UserInfo is the user projection returned by the API. The wider fields are
// only populated by the current-user endpoint.
type UserInfo struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	EmailVerifiedAt *string `json:"email_verified_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// authResponse is the success payload shared by register and login.
type authResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
	Token   string    `json:"token"`
}

// errorResponse is the failure envelope for both message and field errors.
type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// APIClient is a minimal HTTP client for the Authapp API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8080").
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

/*
Register creates a new account and returns the signed-in user plus token.

Parameters:
  - context: context.Context
  - name, email, password, passwordConfirmation: string

Returns:
  - *UserInfo: The created user
  - string: The plaintext session token
  - error: *APIError or transport errors
*/
func (client *APIClient) Register(context context.Context, name, email, password, passwordConfirmation string) (*UserInfo, string, error) {
	payload := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}

	var response authResponse
	if err := client.post(context, "/api/auth/register", "", payload, &response); err != nil {
		return nil, "", err
	}

	return response.User, response.Token, nil
}

/*
Login authenticates an email/password pair.

Parameters:
  - context: context.Context
  - email, password: string

Returns:
  - *UserInfo: The authenticated user
  - string: The plaintext session token
  - error: *APIError or transport errors
*/
func (client *APIClient) Login(context context.Context, email, password string) (*UserInfo, string, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	var response authResponse
	if err := client.post(context, "/api/auth/login", "", payload, &response); err != nil {
		return nil, "", err
	}

	return response.User, response.Token, nil
}

/*
CurrentUser fetches the profile of the token's owner.

Parameters:
  - context: context.Context
  - token: string (Bearer token)

Returns:
  - *UserInfo: The full profile projection
  - error: *APIError (401 on a dead token) or transport errors
*/
func (client *APIClient) CurrentUser(context context.Context, token string) (*UserInfo, error) {
	var response struct {
		Success bool      `json:"success"`
		User    *UserInfo `json:"user"`
	}
	if err := client.get(context, "/api/user", token, &response); err != nil {
		return nil, err
	}
	return response.User, nil
}

/*
Logout revokes the token on the server.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: *APIError or transport errors
*/
func (client *APIClient) Logout(context context.Context, token string) error {
	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return client.post(context, "/api/logout", token, nil, &response)
}

/*
Ping hits the unauthenticated heartbeat endpoint.

Parameters:
  - context: context.Context

Returns:
  - error: *APIError or transport errors
*/
func (client *APIClient) Ping(context context.Context) error {
	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return client.get(context, "/api/test", "", &response)
}

// post sends a JSON body and decodes the response envelope into target.
func (client *APIClient) post(context context.Context, path, token string, payload, target any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	return client.do(request, token, target)
}

// get issues a GET and decodes the response envelope into target.
func (client *APIClient) get(context context.Context, path, token string, target any) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}

	return client.do(request, token, target)
}

// do executes the request, mapping non-2xx envelopes to *APIError.
func (client *APIClient) do(request *http.Request, token string, target any) error {
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("client: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode >= 400 {
		apiError := &APIError{StatusCode: response.StatusCode}
		var envelope errorResponse
		if err := json.NewDecoder(response.Body).Decode(&envelope); err == nil {
			apiError.Message = envelope.Message
			apiError.Fields = envelope.Errors
		}
		return apiError
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}

	return nil
}
