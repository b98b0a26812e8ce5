// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"worldpulse/internal/ai"
	"worldpulse/internal/models"
)

// ErrDraftFailed marks a fatal failure of the draft step: transport error,
// unparseable response or a missing required field.
var ErrDraftFailed = errors.New("draft generation failed")

// Draft is the model's article proposal before assembly.
type Draft struct {
	Title       string       `json:"title"`
	Subheadline string       `json:"subheadline"`
	Excerpt     string       `json:"excerpt"`
	Content     string       `json:"content"`
	Featured    bool         `json:"featured"`
	PullQuote   string       `json:"pullQuote"`
	ImagePrompt string       `json:"imagePrompt"`
	ImageAlt    string       `json:"imageAlt"`
	Tags        []string     `json:"tags"`
	Meta        DraftMeta    `json:"meta"`
	FAQs        []models.FAQ `json:"faqs"`
}

// DraftMeta carries the SEO fields of a draft.
type DraftMeta struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// ParseDraft decodes a JSON draft and checks its required fields.
// Markdown code fences around the document are tolerated.
func ParseDraft(raw string) (*Draft, error) {
	doc, err := ai.ExtractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrDraftFailed, err)
	}

	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		missing = append(missing, "excerpt")
	}
	if strings.TrimSpace(d.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrDraftFailed, strings.Join(missing, ", "))
	}

	d.Title = strings.TrimSpace(d.Title)
	return &d, nil
}

// StructuredModel is the slice of ai.Registry the newsroom drafts with.
type StructuredModel interface {
	GenerateStructured(ctx context.Context, req ai.StructuredRequest) (string, error)
}

// ModelDrafts is the production DraftGenerator backed by a language model.
type ModelDrafts struct {
	Model StructuredModel
	// Name overrides the provider's default model when set.
	Name string
}

// GenerateDraft asks the model for a draft and parses it.
func (m *ModelDrafts) GenerateDraft(ctx context.Context, topic string, category models.Category) (*Draft, error) {
	raw, err := m.Model.GenerateStructured(ctx, ai.StructuredRequest{
		System: draftSystemPrompt,
		Prompt: draftPrompt(topic, category),
		Schema: DraftSchema(),
		Model:  m.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}
	return ParseDraft(raw)
}
