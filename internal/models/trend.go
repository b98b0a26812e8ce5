// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// TrendingTopic is a snapshot of a subject currently prominent worldwide.
type TrendingTopic struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	Category    Category  `json:"category"`
	Volume      string    `json:"volume"`
	Change      string    `json:"change"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Rising reports whether the momentum figure is positive.
func (t *TrendingTopic) Rising() bool {
	return strings.HasPrefix(strings.TrimSpace(t.Change), "+")
}
