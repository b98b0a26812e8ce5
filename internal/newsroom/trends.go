// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"worldpulse/internal/ai"
	"worldpulse/internal/models"
)

// TrendFetcher asks a grounded model for the current trending topics.
// Every failure degrades to an empty list.
type TrendFetcher struct {
	Model StructuredModel
	// Name overrides the provider's default model when set.
	Name   string
	Now    func() time.Time
	Logger *slog.Logger
}

type rawTrend struct {
	Topic       string `json:"topic"`
	Category    string `json:"category"`
	Volume      string `json:"volume"`
	Change      string `json:"change"`
	Description string `json:"description"`
}

// FetchTrends returns the normalised trend list, or an empty list on any
// transport, parse or schema failure.
func (f *TrendFetcher) FetchTrends(ctx context.Context) []models.TrendingTopic {
	raw, err := f.Model.GenerateStructured(ctx, ai.StructuredRequest{
		Prompt:   trendPrompt(),
		Schema:   TrendSchema(),
		Model:    f.Name,
		Grounded: true,
	})
	if err != nil {
		f.logger().Warn("trend fetch failed", "error", err)
		return []models.TrendingTopic{}
	}

	trends, err := ParseTrends(raw, f.now())
	if err != nil {
		f.logger().Warn("trend response rejected", "error", err)
		return []models.TrendingTopic{}
	}
	return trends
}

// ParseTrends decodes a JSON array of trends. IDs are derived from now,
// categories are coerced into the enumeration and entries without a topic
// are dropped.
func ParseTrends(raw string, now time.Time) ([]models.TrendingTopic, error) {
	doc, err := ai.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	var items []rawTrend
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		return nil, fmt.Errorf("decode trends: %w", err)
	}

	stamp := now.UnixMilli()
	trends := make([]models.TrendingTopic, 0, len(items))
	for i, it := range items {
		topic := strings.TrimSpace(it.Topic)
		if topic == "" {
			continue
		}
		trends = append(trends, models.TrendingTopic{
			ID:          fmt.Sprintf("trend-%d-%d", stamp, i),
			Topic:       topic,
			Category:    models.CoerceCategory(it.Category),
			Volume:      strings.TrimSpace(it.Volume),
			Change:      strings.TrimSpace(it.Change),
			Description: strings.TrimSpace(it.Description),
			Timestamp:   now,
		})
	}
	return trends, nil
}

func (f *TrendFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *TrendFetcher) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}
