// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"worldpulse/internal/filter"
	"worldpulse/internal/models"
	"worldpulse/internal/store"
)

// API serves the read-only JSON endpoints.
type API struct {
	articles *store.ContentStore
	trends   *store.TrendStore
}

// NewAPI creates the JSON API handler group.
func NewAPI(articles *store.ContentStore, trends *store.TrendStore) *API {
	return &API{articles: articles, trends: trends}
}

type articleList struct {
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
}

type trendList struct {
	Trends    []models.TrendingTopic `json:"trends"`
	UpdatedAt *time.Time             `json:"updatedAt,omitempty"`
}

// Articles lists reports matching the q, tag and cat parameters, newest first.
func (a *API) Articles(w http.ResponseWriter, r *http.Request) {
	matched := filter.Apply(a.articles.List(), filter.QueryFromValues(r.URL.Query()))
	writeJSON(w, http.StatusOK, articleList{Articles: matched, Total: len(matched)})
}

// Article returns a single report by slug.
func (a *API) Article(w http.ResponseWriter, r *http.Request) {
	article, ok := a.articles.FindBySlug(chi.URLParam(r, "slug"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// Trends returns the current trending topics.
func (a *API) Trends(w http.ResponseWriter, r *http.Request) {
	out := trendList{Trends: a.trends.List()}
	if ts := a.trends.UpdatedAt(); !ts.IsZero() {
		out.UpdatedAt = &ts
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
