// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"slices"
	"sync"
	"time"

	"worldpulse/internal/models"
)

// TrendStore holds the current trending-topics list. The list is only ever
// replaced as a whole.
type TrendStore struct {
	mu        sync.RWMutex
	trends    []models.TrendingTopic
	updatedAt time.Time
}

// NewTrendStore creates a TrendStore with the given initial list.
func NewTrendStore(seed []models.TrendingTopic) *TrendStore {
	return &TrendStore{trends: slices.Clone(seed), updatedAt: time.Now()}
}

// List returns a copy of the current trends.
func (s *TrendStore) List() []models.TrendingTopic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.trends == nil {
		return []models.TrendingTopic{}
	}
	return slices.Clone(s.trends)
}

// Replace swaps in a new list. An empty list is ignored so readers keep the
// last good state; the return value reports whether a swap happened.
func (s *TrendStore) Replace(trends []models.TrendingTopic) bool {
	if len(trends) == 0 {
		return false
	}
	next := slices.Clone(trends)
	s.mu.Lock()
	s.trends = next
	s.updatedAt = time.Now()
	s.mu.Unlock()
	return true
}

// UpdatedAt returns when the list was last replaced.
func (s *TrendStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
