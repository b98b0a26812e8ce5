// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filter selects and arranges articles for the front page listing.
// Every function is pure: inputs are never mutated and results are always
// non-nil slices.
package filter

import (
	"net/url"
	"strings"

	"worldpulse/internal/models"
)

// Query describes the active listing filters. At most one of them applies,
// in the order Search, Tag, Category.
type Query struct {
	Search   string
	Tag      string
	Category string
}

// QueryFromValues reads q, tag and cat from a URL query string.
func QueryFromValues(v url.Values) Query {
	cat := strings.TrimSpace(v.Get("cat"))
	if cat == "" {
		cat = models.CategoryAll
	}
	return Query{
		Search:   strings.TrimSpace(v.Get("q")),
		Tag:      strings.TrimSpace(v.Get("tag")),
		Category: cat,
	}
}

func (q Query) search() string { return strings.TrimSpace(q.Search) }
func (q Query) tag() string    { return strings.TrimSpace(q.Tag) }

func (q Query) category() string {
	c := strings.TrimSpace(q.Category)
	if c == models.CategoryAll {
		return ""
	}
	return c
}

// Narrowed reports whether a search or tag filter is active. Narrowed
// listings have no hero slot.
func (q Query) Narrowed() bool {
	return q.search() != "" || q.tag() != ""
}

// Values encodes the query back into URL parameters, omitting defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	if s := q.search(); s != "" {
		v.Set("q", s)
	}
	if t := q.tag(); t != "" {
		v.Set("tag", t)
	}
	if c := q.category(); c != "" {
		v.Set("cat", c)
	}
	return v
}

// Heading returns the listing title for the active filter.
func (q Query) Heading() string {
	switch {
	case q.search() != "":
		return "Search Results: " + q.search()
	case q.tag() != "":
		return "Dispatch: " + q.tag()
	case q.category() != "":
		return q.category() + " Desk"
	default:
		return "Latest Reports"
	}
}

// Apply returns the articles matching q in their original order.
func Apply(articles []models.Article, q Query) []models.Article {
	var keep func(*models.Article) bool
	switch {
	case q.search() != "":
		needle := strings.ToLower(q.search())
		keep = func(a *models.Article) bool { return matchesSearch(a, needle) }
	case q.tag() != "":
		tag := q.tag()
		keep = func(a *models.Article) bool { return a.HasTag(tag) }
	case q.category() != "":
		cat := models.Category(q.category())
		keep = func(a *models.Article) bool { return a.Category == cat }
	default:
		out := make([]models.Article, len(articles))
		copy(out, articles)
		return out
	}

	out := []models.Article{}
	for i := range articles {
		if keep(&articles[i]) {
			out = append(out, articles[i])
		}
	}
	return out
}

func matchesSearch(a *models.Article, needle string) bool {
	if strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Excerpt), needle) ||
		strings.Contains(strings.ToLower(string(a.Category)), needle) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// SplitHero picks the first featured article, or the first article when
// none is featured, and returns it with the remaining articles.
func SplitHero(articles []models.Article) (*models.Article, []models.Article) {
	if len(articles) == 0 {
		return nil, []models.Article{}
	}
	idx := 0
	for i := range articles {
		if articles[i].Featured {
			idx = i
			break
		}
	}
	hero := articles[idx]
	rest := make([]models.Article, 0, len(articles)-1)
	for i := range articles {
		if articles[i].ID != hero.ID {
			rest = append(rest, articles[i])
		}
	}
	return &hero, rest
}

// Listing is the arranged front page.
type Listing struct {
	Query    Query
	Heading  string
	ShowHero bool
	Hero     *models.Article
	Articles []models.Article
}

// Empty reports whether the filters matched nothing.
func (l Listing) Empty() bool {
	return l.Hero == nil && len(l.Articles) == 0
}

// Layout filters the articles and arranges them for display.
func Layout(articles []models.Article, q Query) Listing {
	filtered := Apply(articles, q)
	l := Listing{Query: q, Heading: q.Heading()}
	if q.Narrowed() {
		l.Articles = filtered
		return l
	}
	l.Hero, l.Articles = SplitHero(filtered)
	l.ShowHero = l.Hero != nil
	return l
}
