// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"worldpulse/internal/models"
	"worldpulse/internal/slug"
)

var (
	// ErrDuplicateID is returned by Add when an article with the same ID exists.
	ErrDuplicateID = errors.New("duplicate article id")
	// ErrInvalidArticle is returned by Add for records that fail validation.
	ErrInvalidArticle = errors.New("invalid article")
)

// ContentStore holds every published article, newest first. It is the only
// place articles are mutated; readers always receive copies.
type ContentStore struct {
	mu       sync.RWMutex
	articles []models.Article
	bySlug   map[string]int
	byID     map[string]struct{}
}

// NewContentStore creates a ContentStore preloaded with the given articles.
// The seed is ordered newest first by PublishedAt.
func NewContentStore(seed []models.Article) *ContentStore {
	s := &ContentStore{
		articles: make([]models.Article, 0, len(seed)),
		bySlug:   make(map[string]int, len(seed)),
		byID:     make(map[string]struct{}, len(seed)),
	}
	sorted := slices.Clone(seed)
	slices.SortStableFunc(sorted, func(a, b models.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	for _, a := range sorted {
		if _, dup := s.byID[a.ID]; dup {
			continue
		}
		if a.Slug == "" {
			a.Slug = slug.Generate(a.Title)
		}
		if unique := slug.Unique(a.Slug, s.slugTaken); unique != a.Slug {
			a.Meta.Canonical = rewriteCanonical(a.Meta.Canonical, a.Slug, unique)
			a.Slug = unique
		}
		s.bySlug[a.Slug] = len(s.articles)
		s.articles = append(s.articles, a)
		s.byID[a.ID] = struct{}{}
	}
	return s
}

// Add validates and stores an article at the head of the list. A colliding
// slug is disambiguated with a numeric suffix and the canonical URL follows.
func (s *ContentStore) Add(a models.Article) (models.Article, error) {
	if strings.TrimSpace(a.Title) == "" {
		return models.Article{}, fmt.Errorf("%w: empty title", ErrInvalidArticle)
	}
	if !a.Category.Valid() {
		return models.Article{}, fmt.Errorf("%w: unknown category %q", ErrInvalidArticle, a.Category)
	}
	if a.Slug == "" {
		a.Slug = slug.Generate(a.Title)
	}
	if a.Slug == "" {
		return models.Article{}, fmt.Errorf("%w: title %q yields an empty slug", ErrInvalidArticle, a.Title)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.byID[a.ID]; dup {
		return models.Article{}, fmt.Errorf("add article %s: %w", a.ID, ErrDuplicateID)
	}

	if unique := slug.Unique(a.Slug, s.slugTaken); unique != a.Slug {
		a.Meta.Canonical = rewriteCanonical(a.Meta.Canonical, a.Slug, unique)
		a.Slug = unique
	}
	a.Tags = slices.Clone(a.Tags)
	a.FAQs = slices.Clone(a.FAQs)
	a.Meta.Keywords = slices.Clone(a.Meta.Keywords)

	s.articles = slices.Insert(s.articles, 0, a)
	s.byID[a.ID] = struct{}{}
	s.reindex()
	return a, nil
}

// List returns a copy of every article, newest first.
func (s *ContentStore) List() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.articles)
}

// FindBySlug looks up a single article by its slug.
func (s *ContentStore) FindBySlug(slug string) (models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Article{}, false
	}
	return s.articles[i], true
}

// Len returns the number of stored articles.
func (s *ContentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// Tags returns the distinct tags across all articles in first-seen order.
// Tags differing only by case are reported once.
func (s *ContentStore) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	tags := []string{}
	for _, a := range s.articles {
		for _, t := range a.Tags {
			key := strings.ToLower(t)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// slugTaken must be called with mu held.
func (s *ContentStore) slugTaken(candidate string) bool {
	_, ok := s.bySlug[candidate]
	return ok
}

func (s *ContentStore) reindex() {
	clear(s.bySlug)
	for i, a := range s.articles {
		s.bySlug[a.Slug] = i
	}
}

// rewriteCanonical swaps the trailing slug segment of a canonical URL.
func rewriteCanonical(canonical, from, to string) string {
	if canonical == "" {
		return canonical
	}
	if strings.HasSuffix(canonical, "/"+from) {
		return strings.TrimSuffix(canonical, from) + to
	}
	return canonical
}
