// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for
// WorldPulse. It organizes routes into public, API and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worldpulse/internal/handlers"
	"worldpulse/internal/middleware"
)

// Limits holds the per-IP rate limiters applied to write endpoints.
// A nil limiter leaves its route unthrottled.
type Limits struct {
	Generate *middleware.RateLimiter
	Contact  *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. static is served under /static/.
func New(public *handlers.Public, api *handlers.API, admin *handlers.Admin, static fs.FS, limits Limits) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Public site.
	r.Get("/", public.Home)
	r.Get("/article/{slug}", public.Article)
	r.Get("/contact", public.Contact)
	r.With(throttle(limits.Contact)).Post("/contact", public.ContactSubmit)
	r.Get("/privacy", public.Privacy)
	r.Get("/terms", public.Terms)
	r.Get("/feed.xml", public.Feed)
	r.Get("/sitemap.xml", public.Sitemap)

	// Read-only JSON API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/articles", api.Articles)
		r.Get("/articles/{slug}", api.Article)
		r.Get("/trends", api.Trends)
	})

	// Editorial desk.
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", admin.Dashboard)
		r.Get("/status", admin.Status)
		r.With(throttle(limits.Generate)).Post("/generate", admin.Generate)
	})

	r.NotFound(public.NotFound)

	return r
}

// throttle returns the limiter's middleware, or a pass-through for nil.
func throttle(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
