// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinemora/internal/auth"
	"github.com/tomtom215/cinemora/internal/authz"
	"github.com/tomtom215/cinemora/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler         *Handler
	middleware      *auth.Middleware
	authzMiddleware *authz.Middleware
	chiMiddleware   *ChiMiddleware
}

// NewRouter creates a router. authzMiddleware guards /api/admin.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, authzMiddleware *authz.Middleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:         handler,
		middleware:      authMiddleware,
		authzMiddleware: authzMiddleware,
		chiMiddleware:   chiMW,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Get("/health", router.handler.Health)
	r.Get("/health/ready", router.handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Route("/auth", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/signup", router.handler.Signup)
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", router.handler.Login)
			r.With(router.middleware.Authenticate).Get("/me", router.handler.Me)
		})

		r.Route("/series", func(r chi.Router) {
			r.Get("/", router.handler.ListSeries)
			r.Get("/genres", router.handler.Genres) // before /{id}
			r.Get("/{id}", router.handler.GetSeries)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", router.handler.ListReviews)
			r.Group(func(r chi.Router) {
				r.Use(router.middleware.Authenticate)
				r.Post("/", router.handler.CreateReview)
				r.Put("/{id}", router.handler.UpdateReview)
				r.Delete("/{id}", router.handler.DeleteReview)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(router.middleware.Authenticate)
			r.Post("/", router.handler.AddFavorite)
			r.Delete("/{id}", router.handler.RemoveFavorite)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(router.middleware.Authenticate)
			r.Get("/favorites", router.handler.MyFavorites)
			r.Get("/reviews", router.handler.MyReviews)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", router.handler.GetUser)
			r.With(router.middleware.Authenticate).Put("/{id}", router.handler.UpdateUser)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(router.middleware.Authenticate)
			r.Use(router.authzMiddleware.AuthorizeRequest)
			r.Post("/series", router.handler.AdminCreateSeries)
			r.Put("/series/{id}", router.handler.AdminUpdateSeries)
			r.Delete("/series/{id}", router.handler.AdminDeleteSeries)
			r.Get("/audit", router.handler.AuditEvents)
		})

		r.Get("/ws", router.handler.WebSocket)

		r.Route("/external", func(r chi.Router) {
			r.Get("/series", router.handler.ExternalSearch)
			r.Get("/series/{externalId}", router.handler.ExternalGet)
		})
	})

	return r
}
