// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// GenerationStatus is the state of one admin-triggered generation attempt.
type GenerationStatus string

const (
	GenerationPending GenerationStatus = "pending"
	GenerationSuccess GenerationStatus = "success"
	GenerationFailed  GenerationStatus = "failed"
)

// Terminal reports whether the status can no longer change.
func (s GenerationStatus) Terminal() bool {
	return s == GenerationSuccess || s == GenerationFailed
}

// GenerationLog is the audit entry for one generation attempt. It starts
// pending and settles exactly once.
type GenerationLog struct {
	ID          string           `json:"id"`
	Topic       string           `json:"topic"`
	Category    Category         `json:"category"`
	Status      GenerationStatus `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
	Model       string           `json:"model"`
	Error       string           `json:"error,omitempty"`
	ArticleSlug string           `json:"articleSlug,omitempty"`
}
