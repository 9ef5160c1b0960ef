// Copyright (c) 2026 Authapp. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkovacev/authapp/internal/platform/apperr"
	requestutil "github.com/dkovacev/authapp/internal/platform/request"
	"github.com/dkovacev/authapp/internal/platform/respond"
)

// Handler exposes the auth service over HTTP.
type Handler struct {
	authService *Service
}

// NewHandler creates a new auth HTTP handler.
func NewHandler(authService *Service) *Handler {
	return &Handler{authService: authService}
}

// Routes returns the public (unauthenticated) auth routes, mounted under
// /auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// SessionRoutes returns the routes that require a valid bearer token.
func (handler *Handler) SessionRoutes() chi.Router {
	router := chi.NewRouter()

	router.Use(handler.RequireUser)
	router.Post("/logout", handler.logout)
	router.Get("/user", handler.whoAmI)

	return router
}

// RequireUser is the authentication middleware for protected routes.
//
// It extracts the bearer token, resolves it to a user, and stores both on
// the request context. Requests without a valid token are rejected with a
// generic 401; absent, unknown and expired tokens all read the same.
func (handler *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		secret := requestutil.BearerToken(request)
		if secret == "" {
			respond.Error(writer, request, apperr.Unauthorized("Unauthenticated"))
			return
		}

		user, _, err := handler.authService.WhoAmI(request.Context(), secret)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		next.ServeHTTP(writer, request.WithContext(
			WithSession(request.Context(), user, secret),
		))
	})
}

// register handles POST /auth/register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, respond.Body{
		FieldMessage: "Registration successful",
		FieldUser:    session.User.Summary(),
		FieldToken:   session.Token,
	})
}

// login handles POST /auth/login.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Body{
		FieldMessage: "Login successful",
		FieldUser:    session.User.Summary(),
		FieldToken:   session.Token,
	})
}

// logout handles POST /logout.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.authService.Logout(request.Context(), TokenFrom(request.Context())); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, respond.Body{
		FieldMessage: "Logged out successfully",
	})
}

// whoAmI handles GET /user. The profile projection is wider than the one
// returned by register/login: it adds email_verified_at and updated_at.
func (handler *Handler) whoAmI(writer http.ResponseWriter, request *http.Request) {
	user := UserFrom(request.Context())

	respond.OK(writer, respond.Body{
		FieldUser: user.Profile(),
	})
}
