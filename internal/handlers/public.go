// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for WorldPulse. Handlers are
// grouped by concern (public site, feeds, JSON API, admin desk) and receive
// their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"worldpulse/internal/cache"
	"worldpulse/internal/filter"
	"worldpulse/internal/render"
	"worldpulse/internal/seo"
	"worldpulse/internal/store"
)

// maxCards caps the card grid under the hero.
const maxCards = 12

// maxDispatchTags caps the tag index in the sidebar.
const maxDispatchTags = 16

const (
	articleNotFound = "The requested article could not be retrieved."
	pageNotFound    = "The requested page could not be found."
)

// Public groups handlers for the server-rendered public site. Listing and
// article pages are looked up in the L2 Valkey page cache first and stored
// there on miss.
type Public struct {
	renderer  *render.Renderer
	articles  *store.ContentStore
	trends    *store.TrendStore
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil when
// Valkey is not configured.
func NewPublic(renderer *render.Renderer, articles *store.ContentStore, trends *store.TrendStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:  renderer,
		articles:  articles,
		trends:    trends,
		pageCache: pageCache,
	}
}

// Home renders the front page listing filtered by the q, tag and cat
// query parameters.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := filter.QueryFromValues(r.URL.Query())
	encoded := q.Values().Encode()
	key := cache.ListingKey(encoded)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		writeHTML(w, cached)
		return
	}

	listing := filter.Layout(p.articles.List(), q)
	cards := listing.Articles
	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}

	tags := p.articles.Tags()
	if len(tags) > maxDispatchTags {
		tags = tags[:maxDispatchTags]
	}

	site := p.renderer.Site()
	head := seo.ForPage(site, "", "", "/")
	if encoded != "" {
		head = seo.ForPage(site, listing.Heading, "", "/?"+encoded)
	}

	rendered, err := p.renderer.Bytes("home", &render.PageData{
		Head:    head,
		Section: "home",
		Data: map[string]any{
			"Listing":        listing,
			"Cards":          cards,
			"Trends":         p.trends.List(),
			"ActiveCategory": q.Category,
			"Tags":           tags,
		},
	})
	if err != nil {
		slog.Error("render home failed", "error", err, "query", encoded)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, rendered)
	writeHTML(w, rendered)
}

// Article renders the reading view of one report by slug.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	key := cache.ArticleKey(slugParam)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		writeHTML(w, cached)
		return
	}

	article, ok := p.articles.FindBySlug(slugParam)
	if !ok {
		p.notFound(w, r, articleNotFound)
		return
	}

	site := p.renderer.Site()
	pageURL := articleURL(site.URL, article)
	rendered, err := p.renderer.Bytes("article", &render.PageData{
		Head:    seo.ForArticle(site, article, pageURL),
		Section: "article",
		Data: map[string]any{
			"Article": article,
			"Shares":  seo.ShareLinks(pageURL, article.Title),
		},
	})
	if err != nil {
		slog.Error("render article failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, rendered)
	writeHTML(w, rendered)
}

// NotFound renders the site's 404 page for unknown routes.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r, pageNotFound)
}

func (p *Public) notFound(w http.ResponseWriter, r *http.Request, message string) {
	p.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Head:    seo.ForPage(p.renderer.Site(), "Not Found", message, r.URL.Path),
		Section: "error",
		Data:    map[string]any{"Message": message},
	})
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
