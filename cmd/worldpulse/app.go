// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"worldpulse/internal/ai"
	"worldpulse/internal/cache"
	"worldpulse/internal/config"
	"worldpulse/internal/newsroom"
	"worldpulse/internal/storage"
)

// services holds the collaborators shared by every command.
type services struct {
	registry  *ai.Registry
	pipeline  *newsroom.Pipeline
	trends    *newsroom.TrendFetcher
	valkey    *redis.Client
	pageCache *cache.PageCache
}

// serviceOptions tunes newServices per command.
type serviceOptions struct {
	// cache dials Valkey when it is configured.
	cache bool
	// provider overrides AI_PROVIDER for this process.
	provider string
}

// newServices connects the optional backends and builds the pipeline.
func newServices(ctx context.Context, cfg *config.Config, opts serviceOptions) (*services, error) {
	s := &services{registry: newRegistry(cfg)}

	if opts.provider != "" {
		if err := s.registry.SetActive(opts.provider); err != nil {
			return nil, err
		}
	} else if !s.registry.HasProvider(cfg.AIProvider) {
		slog.Warn("active ai provider has no api key, generation will fail",
			"provider", cfg.AIProvider, "env", cfg.ActiveKeyEnv())
	}

	slog.Info("ai providers initialized",
		"active", s.registry.ActiveName(),
		"available", s.registry.Available(),
		"structured_output", s.registry.SupportsStructuredOutput(),
		"images", s.registry.SupportsImageGeneration(),
	)

	covers, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}

	s.pipeline = &newsroom.Pipeline{
		Drafts:  &newsroom.ModelDrafts{Model: s.registry},
		SiteURL: cfg.SiteURL,
	}

	// Text-only providers go straight to placeholder covers.
	if s.registry.SupportsImageGeneration() {
		images := &newsroom.ModelImages{Model: s.registry}
		if covers != nil {
			images.Store = covers
			slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", covers.Bucket())
		} else {
			slog.Warn("s3 storage not configured, covers are inlined")
		}
		s.pipeline.Images = images
	} else {
		slog.Info("active ai provider cannot draw covers, using placeholders", "provider", s.registry.ActiveName())
	}
	s.trends = &newsroom.TrendFetcher{Model: s.registry, Name: cfg.TrendModel()}

	if opts.cache && cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, fmt.Errorf("connect valkey: %w", err)
		}
		s.valkey = client
		s.pageCache = cache.NewPageCache(client, cache.DefaultPageTTL)
	}

	return s, nil
}

// Close releases the backend connections.
func (s *services) Close() {
	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Warn("close valkey", "error", err)
		}
	}
}

// newRegistry registers every provider that has a key. genai shares the
// Gemini credentials and models.
func newRegistry(cfg *config.Config) *ai.Registry {
	return ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, ModelImage: cfg.OpenAIModelImage, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, ModelImage: cfg.GeminiModelImage, BaseURL: cfg.GeminiBaseURL},
		"genai":   {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, ModelImage: cfg.GeminiModelImage},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
}
