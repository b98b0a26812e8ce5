// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against in-memory stores and a desk backed by a fake
// generator; the page cache is disabled.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"worldpulse/internal/desk"
	"worldpulse/internal/models"
	"worldpulse/internal/newsroom"
	"worldpulse/internal/render"
	"worldpulse/internal/seo"
	"worldpulse/internal/store"
)

var testSite = seo.Site{Name: "WorldPulse", URL: "https://example.news", Description: "Global intelligence."}

var baseTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// gatedGenerator blocks each Generate call until release is closed.
type gatedGenerator struct {
	release chan struct{}
}

func (g *gatedGenerator) Generate(ctx context.Context, req newsroom.Request) (models.Article, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return models.Article{}, ctx.Err()
	}
	a := testArticle(99, req.Category, "Desk Report: "+req.Topic, false)
	a.ID = "generated-1"
	return a, nil
}

// testEnv holds the handler groups and stores used by a test.
type testEnv struct {
	Articles *store.ContentStore
	Trends   *store.TrendStore
	Logs     *store.LogStore
	Desk     *desk.Desk
	Gen      *gatedGenerator
	Public   *Public
	API      *API
	Admin    *Admin
	Router   http.Handler
}

func testArticle(i int, cat models.Category, title string, featured bool) models.Article {
	published := baseTime.Add(-time.Duration(i) * time.Hour)
	s := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(title, ":", ""), " ", "-"))
	content := "## Key Analysis\n\nBody of " + title + "."
	return models.Article{
		ID:          fmt.Sprintf("art-%d", i),
		Title:       title,
		Subheadline: "Subheadline for " + title,
		Slug:        s,
		Excerpt:     "Excerpt for " + title,
		Content:     content,
		Category:    cat,
		Image:       fmt.Sprintf("https://cdn.example.news/covers/%d.jpg", i),
		ImageAlt:    "Cover of " + title,
		Author:      models.DefaultAuthor,
		PublishedAt: published,
		UpdatedAt:   published,
		Tags:        []string{string(cat), "Intelligence"},
		ReadTime:    models.EstimateReadTime(content),
		FAQs:        []models.FAQ{{Question: "What happened?", Answer: "A development."}},
		PullQuote:   "A quote about " + title,
		Featured:    featured,
		Meta: models.Meta{
			Description: "Description of " + title,
			Keywords:    []string{string(cat), "analysis"},
			Canonical:   testSite.URL + "/article/" + s,
		},
	}
}

// fixtureArticles returns count articles cycling through the categories,
// newest first. The third one is featured.
func fixtureArticles(count int) []models.Article {
	cats := models.Categories()
	out := make([]models.Article, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, testArticle(i, cats[i%len(cats)], fmt.Sprintf("Report Number %d", i), i == 2))
	}
	return out
}

func newTestEnv(t *testing.T, articles []models.Article, trends []models.TrendingTopic) *testEnv {
	t.Helper()

	rn, err := render.New(testSite, true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Articles: store.NewContentStore(articles),
		Trends:   store.NewTrendStore(trends),
		Logs:     store.NewLogStore(),
		Gen:      &gatedGenerator{release: make(chan struct{})},
	}
	env.Desk = desk.New(desk.Config{
		Pipeline: env.Gen,
		Articles: env.Articles,
		Logs:     env.Logs,
		Model:    "test-model",
		Timeout:  time.Minute,
	})
	t.Cleanup(env.Desk.Close)

	env.Public = NewPublic(rn, env.Articles, env.Trends, nil)
	env.API = NewAPI(env.Articles, env.Trends)
	env.Admin = NewAdmin(rn, env.Desk)

	r := chi.NewRouter()
	r.Get("/", env.Public.Home)
	r.Get("/article/{slug}", env.Public.Article)
	r.Get("/contact", env.Public.Contact)
	r.Post("/contact", env.Public.ContactSubmit)
	r.Get("/privacy", env.Public.Privacy)
	r.Get("/terms", env.Public.Terms)
	r.Get("/feed.xml", env.Public.Feed)
	r.Get("/sitemap.xml", env.Public.Sitemap)
	r.Get("/api/articles", env.API.Articles)
	r.Get("/api/articles/{slug}", env.API.Article)
	r.Get("/api/trends", env.API.Trends)
	r.Get("/admin", env.Admin.Dashboard)
	r.Post("/admin/generate", env.Admin.Generate)
	r.Get("/admin/status", env.Admin.Status)
	r.NotFound(env.Public.NotFound)
	env.Router = r

	return env
}

// do sends a request through the test router.
func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
