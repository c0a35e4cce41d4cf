// Package main is the entry point for the Chronicle API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/handlers"
	"chronicle/internal/mailer"
	"chronicle/internal/router"
	"chronicle/internal/service"
	"chronicle/internal/session"
	"chronicle/internal/store"
)

func main() {
	// Structured logger — JSON in production, text in development.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"subcategory_slug_scope", cfg.SubcategorySlugScope,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (query cache + session store).
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)
	queryCache := cache.NewQueryCache(redisClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	categoryStore := store.NewCategoryStore(db)
	subcategoryStore := store.NewSubcategoryStore(db)
	articleStore := store.NewArticleStore(db)
	adStore := store.NewAdStore(db)

	// Services own slug derivation, public ID allocation, and the
	// conflict retry loops.
	articleService := service.NewArticleService(articleStore)
	categoryService := service.NewCategoryService(categoryStore)
	subcategoryService := service.NewSubcategoryService(subcategoryStore, cfg.SubcategorySlugScope)

	// Outbound email is optional: without a Postmark token, reset tokens
	// are logged instead of mailed.
	var mail *mailer.Mailer
	if cfg.PostmarkServerToken != "" {
		mail, err = mailer.New(cfg.PostmarkServerToken, cfg.PostmarkAccountToken, cfg.MailFrom, cfg.BaseURL)
		if err != nil {
			slog.Error("failed to initialize mailer", "error", err)
			os.Exit(1)
		}
		slog.Info("postmark mailer configured", "from", cfg.MailFrom)
	} else {
		slog.Warn("postmark not configured — emails will be logged")
	}

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Public:   handlers.NewPublic(articleStore, categoryStore, subcategoryStore, adStore, queryCache),
		Auth:     handlers.NewAuth(sessionStore, userStore, mail),
		Articles: handlers.NewAdminArticles(articleStore, articleService, queryCache),
		Taxonomy: handlers.NewAdminTaxonomy(categoryStore, subcategoryStore, categoryService, subcategoryService, queryCache),
		Ads:      handlers.NewAdminAds(adStore),
		Users:    handlers.NewAdminUsers(userStore, mail),
	}

	// Set up the Chi router with all middleware and routes.
	r, limiters := router.New(sessionStore, h, secureCookies)
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
