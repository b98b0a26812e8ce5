// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package newsroom turns a topic into a publishable article and fetches the
// trending-topics list. It talks to language and image models only through
// small capability interfaces and never touches the content store.
package newsroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"worldpulse/internal/models"
	"worldpulse/internal/slug"
)

// DefaultSiteURL is used for canonical URLs when none is configured.
const DefaultSiteURL = "https://worldpulse.news"

// Step is a stage of article generation.
type Step string

const (
	StepIdle        Step = "idle"
	StepAnalyzing   Step = "analyzing"
	StepWriting     Step = "writing"
	StepVisualizing Step = "visualizing"
)

// Label is the operator-facing progress text for the step.
func (s Step) Label() string {
	switch s {
	case StepAnalyzing:
		return "ACCESSING GLOBAL TRENDS..."
	case StepWriting:
		return "DRAFTING EDITORIAL BRIEF..."
	case StepVisualizing:
		return "SYNTHESIZING ASSETS..."
	default:
		return ""
	}
}

// DraftGenerator produces an article draft for a topic.
type DraftGenerator interface {
	GenerateDraft(ctx context.Context, topic string, category models.Category) (*Draft, error)
}

// ImageGenerator produces a cover image reference (URL or data URI).
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Request is a single generation job.
type Request struct {
	Topic    string
	Category models.Category
	// OnStep, when set, is called as the pipeline enters each step.
	OnStep func(Step)
}

// Pipeline drafts, illustrates and assembles articles. It is stateless
// and safe for concurrent use.
type Pipeline struct {
	Drafts  DraftGenerator
	Images  ImageGenerator
	SiteURL string
	Now     func() time.Time
	Logger  *slog.Logger
}

// Generate runs the draft and image steps in order and assembles the
// article. Draft failures are fatal and wrap ErrDraftFailed; image failures
// fall back to a placeholder cover.
func (p *Pipeline) Generate(ctx context.Context, req Request) (models.Article, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return models.Article{}, fmt.Errorf("%w: empty topic", ErrDraftFailed)
	}
	notify := req.OnStep
	if notify == nil {
		notify = func(Step) {}
	}

	notify(StepWriting)
	draft, err := p.Drafts.GenerateDraft(ctx, topic, req.Category)
	if err != nil {
		if errors.Is(err, ErrDraftFailed) {
			return models.Article{}, err
		}
		return models.Article{}, fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}
	if draft == nil {
		return models.Article{}, fmt.Errorf("%w: empty draft", ErrDraftFailed)
	}

	notify(StepVisualizing)
	image := p.illustrate(ctx, draft)

	return p.assemble(draft, req.Category, image), nil
}

// illustrate never fails: any image error yields the placeholder.
func (p *Pipeline) illustrate(ctx context.Context, d *Draft) string {
	base := strings.TrimSpace(d.ImagePrompt)
	if base == "" {
		base = d.Title
	}
	if p.Images == nil {
		return PlaceholderImage(base)
	}

	ref, err := p.Images.GenerateImage(ctx, ImageStylePrefix+base)
	if err != nil || strings.TrimSpace(ref) == "" {
		p.logger().Warn("cover image unavailable, using placeholder", "title", d.Title, "error", err)
		return PlaceholderImage(base)
	}
	return ref
}

func (p *Pipeline) assemble(d *Draft, category models.Category, image string) models.Article {
	now := p.now()
	s := slug.Generate(d.Title)

	imageAlt := strings.TrimSpace(d.ImageAlt)
	if imageAlt == "" {
		imageAlt = "Editorial image for " + d.Title
	}
	description := strings.TrimSpace(d.Meta.Description)
	if description == "" {
		description = d.Excerpt
	}

	return models.Article{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Subheadline: d.Subheadline,
		Slug:        s,
		Excerpt:     d.Excerpt,
		Content:     d.Content,
		Category:    category,
		Image:       image,
		ImageAlt:    imageAlt,
		Author:      models.DefaultAuthor,
		PublishedAt: now,
		UpdatedAt:   now,
		Tags:        nonNil(d.Tags),
		ReadTime:    models.EstimateReadTime(d.Content),
		FAQs:        nonNil(d.FAQs),
		PullQuote:   d.PullQuote,
		Featured:    d.Featured,
		Meta: models.Meta{
			Description: description,
			Keywords:    nonNil(d.Meta.Keywords),
			Canonical:   p.siteURL() + "/article/" + s,
		},
	}
}

func (p *Pipeline) siteURL() string {
	if p.SiteURL == "" {
		return DefaultSiteURL
	}
	return strings.TrimRight(p.SiteURL, "/")
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}
