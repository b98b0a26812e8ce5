// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"worldpulse/internal/cache"
	"worldpulse/internal/desk"
	"worldpulse/internal/handlers"
	"worldpulse/internal/middleware"
	"worldpulse/internal/models"
	"worldpulse/internal/render"
	"worldpulse/internal/router"
	"worldpulse/internal/seo"
	"worldpulse/internal/store"
	"worldpulse/internal/trends"
	"worldpulse/web"
)

// shutdownTimeout bounds the HTTP drain once a signal arrives.
const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server, trend poller and editorial desk",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr(), "provider", cfg.AIProvider)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, cfg, serviceOptions{cache: true})
	if err != nil {
		return err
	}
	defer svc.Close()

	now := time.Now()
	articles := store.NewContentStore(store.SeedArticles(cfg.SiteURL, now))
	trendStore := store.NewTrendStore(store.SeedTrends(now))
	logs := store.NewLogStore()

	site := seo.Site{
		Name:        cfg.SiteName,
		URL:         cfg.SiteURL,
		Description: "Real-time global intelligence: trending stories analysed by an automated editorial desk.",
	}
	renderer, err := render.New(site, cfg.IsDev())
	if err != nil {
		return err
	}

	d := desk.New(desk.Config{
		Pipeline:  svc.pipeline,
		Moderator: svc.registry,
		Articles:  articles,
		Logs:      logs,
		Model:     cfg.ActiveModel(),
		Timeout:   cfg.GenerationTimeout,
		AfterPublish: func(ctx context.Context, a models.Article) {
			svc.pageCache.InvalidatePublished(ctx, a.Slug)
		},
	})
	defer d.Close()

	poller := trends.New(svc.trends, trendStore, trends.Options{
		Interval: cfg.TrendInterval,
		OnUpdate: func(ctx context.Context) {
			svc.pageCache.InvalidatePrefix(ctx, cache.ListingPrefix)
		},
	})

	generateLimiter := middleware.NewRateLimiter(cfg.RateLimitGenerate, time.Minute)
	defer generateLimiter.Stop()
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer contactLimiter.Stop()

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return err
	}

	r := router.New(
		handlers.NewPublic(renderer, articles, trendStore, svc.pageCache),
		handlers.NewAPI(articles, trendStore),
		handlers.NewAdmin(renderer, d),
		static,
		router.Limits{Generate: generateLimiter, Contact: contactLimiter},
	)

	// WriteTimeout only has to cover page rendering: generation runs on the
	// desk, not on the request.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Drop pages cached by a previous process; their trend sidebar and
	// listings no longer match the in-memory stores.
	svc.pageCache.InvalidateAll(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		h := poller.Start(gctx)
		<-gctx.Done()
		h.Stop()
		slog.Info("trend poller stopped")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		// Stop accepting generations first so nothing publishes mid-drain.
		d.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
			return err
		}
		slog.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
