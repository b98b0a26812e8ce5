// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// generation_log.go keeps the audit trail of article generation attempts.
// Each entry starts pending and is settled exactly once.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"worldpulse/internal/models"
)

var (
	// ErrLogNotFound is returned when settling an unknown log ID.
	ErrLogNotFound = errors.New("generation log not found")
	// ErrAlreadySettled is returned when a log has left the pending state.
	ErrAlreadySettled = errors.New("generation log already settled")
)

// LogStore holds generation logs, newest first. Entries are never removed.
type LogStore struct {
	mu   sync.RWMutex
	logs []models.GenerationLog
	now  func() time.Time
}

// NewLogStore returns an empty LogStore.
func NewLogStore() *LogStore {
	return &LogStore{now: time.Now}
}

// Create records a new pending attempt and returns it.
func (s *LogStore) Create(topic string, category models.Category, model string) models.GenerationLog {
	entry := models.GenerationLog{
		ID:        uuid.NewString(),
		Topic:     topic,
		Category:  category,
		Status:    models.GenerationPending,
		Timestamp: s.now(),
		Model:     model,
	}
	s.mu.Lock()
	s.logs = slices.Insert(s.logs, 0, entry)
	s.mu.Unlock()
	return entry
}

// Settle moves a pending log to a terminal status. For success, detail is
// the published article slug; for failure, it is the operator-facing reason.
func (s *LogStore) Settle(id string, status models.GenerationStatus, detail string) error {
	if !status.Terminal() {
		return fmt.Errorf("settle log %s: status %q is not terminal", id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.logs {
		if s.logs[i].ID != id {
			continue
		}
		if s.logs[i].Status != models.GenerationPending {
			return fmt.Errorf("settle log %s: %w", id, ErrAlreadySettled)
		}
		s.logs[i].Status = status
		switch status {
		case models.GenerationSuccess:
			s.logs[i].ArticleSlug = detail
		case models.GenerationFailed:
			s.logs[i].Error = detail
		}
		return nil
	}
	return fmt.Errorf("settle log %s: %w", id, ErrLogNotFound)
}

// List returns a copy of all logs, newest first.
func (s *LogStore) List() []models.GenerationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logs == nil {
		return []models.GenerationLog{}
	}
	return slices.Clone(s.logs)
}

// Pending returns how many attempts are still in flight.
func (s *LogStore) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, l := range s.logs {
		if l.Status == models.GenerationPending {
			n++
		}
	}
	return n
}
