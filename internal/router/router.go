// Package router sets up all HTTP routes and middleware chains for the
// Chronicle API. It organizes routes into public, auth, and admin groups
// with appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"chronicle/internal/handlers"
	"chronicle/internal/middleware"
	"chronicle/internal/session"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	Public   *handlers.Public
	Auth     *handlers.Auth
	Articles *handlers.AdminArticles
	Taxonomy *handlers.AdminTaxonomy
	Ads      *handlers.AdminAds
	Users    *handlers.AdminUsers
}

// New creates and returns the configured Chi router. The secure flag
// controls the Secure attribute on CSRF cookies; it is off in dev where
// the API serves plain HTTP. The returned limiters must be stopped on
// shutdown.
func New(sessionStore *session.Store, h Handlers, secure bool) (chi.Router, []*middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Generous limit for reads, a tight one for credential endpoints.
	publicLimiter := middleware.NewRateLimiter(300, time.Minute)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check — no auth, no rate limit.
	r.Get("/health", h.Public.Health)

	r.Route("/api", func(r chi.Router) {
		// Public read API.
		r.Group(func(r chi.Router) {
			r.Use(publicLimiter.Middleware)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", h.Public.ListArticles)
				r.Get("/featured", h.Public.Featured)
				r.Get("/search", h.Public.Search)
				r.Get("/tag/{tag}", h.Public.ByTag)
				r.Get("/category/{category}", h.Public.ByCategory)
				r.Get("/subcategory/{category}/{subcategory}", h.Public.BySubcategory)
				r.Get("/public/{publicID}", h.Public.ByPublicID)

				// SEO article URL — the composite last segment carries
				// the slug and public ID.
				r.Get("/{category}/{subcategory}/{slugID}", h.Public.Resolve)
			})

			r.Get("/categories", h.Public.Categories)
			r.Get("/categories/full", h.Public.CategoriesFull)
			r.Get("/categories/{id}/subcategories", h.Public.Subcategories)

			r.Get("/ads/{placement}", h.Public.AdsByPlacement)
			r.Post("/ads/{id}/click", h.Public.AdClick)
		})

		// Auth flow.
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter.Middleware).Post("/login", h.Auth.Login)
			r.With(authLimiter.Middleware).Post("/forgot-password", h.Auth.ForgotPassword)
			r.With(authLimiter.Middleware).Post("/reset-password/{token}", h.Auth.ResetPassword)

			r.Post("/logout", h.Auth.Logout)

			// 2FA — requires a session but NOT completed verification.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/setup", h.Auth.TwoFASetup)
				r.Post("/2fa/verify", h.Auth.TwoFAVerify)
			})

			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		// Authenticated + 2FA-verified admin area.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.CSRF(secure))
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", h.Articles.List)
				r.Post("/", h.Articles.Create)
				r.Get("/{id}", h.Articles.Get)
				r.Put("/{id}", h.Articles.Update)
				r.Delete("/{id}", h.Articles.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.Taxonomy.Categories)
				r.Post("/", h.Taxonomy.CreateCategory)
				r.Put("/{id}", h.Taxonomy.UpdateCategory)
				r.Delete("/{id}", h.Taxonomy.DeleteCategory)
				r.Get("/{id}/subcategories", h.Taxonomy.Subcategories)
			})

			r.Route("/subcategories", func(r chi.Router) {
				r.Post("/", h.Taxonomy.CreateSubcategory)
				r.Put("/{id}", h.Taxonomy.UpdateSubcategory)
				r.Delete("/{id}", h.Taxonomy.DeleteSubcategory)
			})

			// Ads and user management — admin only.
			r.Route("/ads", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Ads.List)
				r.Post("/", h.Ads.Create)
				r.Put("/{id}", h.Ads.Update)
				r.Delete("/{id}", h.Ads.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.Users.List)
				r.Post("/", h.Users.Create)
				r.Post("/{id}/reset-2fa", h.Users.ResetTOTP)
			})
		})
	})

	return r, []*middleware.RateLimiter{publicLimiter, authLimiter}
}
