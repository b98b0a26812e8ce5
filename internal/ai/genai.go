// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// genAIProvider implements Provider, StructuredGenerator and ImageGenerator
// on the official Google GenAI SDK. It talks to the same Gemini models as
// geminiProvider but lets the SDK own transport, retries and wire types.
type genAIProvider struct {
	config ProviderConfig
	client *genai.Client
}

// newGenAI creates a GenAI SDK client for the Gemini API backend.
func newGenAI(ctx context.Context, cfg ProviderConfig) (*genAIProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &genAIProvider{config: cfg, client: client}, nil
}

func (p *genAIProvider) Name() string { return "genai" }

// Generate sends a plain text request using the default model.
func (p *genAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.text(ctx, p.config.Model, userPrompt, p.baseConfig(systemPrompt))
}

// GenerateStructured requests JSON output constrained by the schema.
func (p *genAIProvider) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	cfg := p.baseConfig(req.System)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = toGenAISchema(req.Schema)
	if req.Grounded {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return p.text(ctx, model, req.Prompt, cfg)
}

// GenerateImage renders an image with ModelImage and returns the first
// inline image part.
func (p *genAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if p.config.ModelImage == "" {
		return nil, fmt.Errorf("genai: image generation requires GEMINI_MODEL_IMAGE to be set")
	}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.ModelImage,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai image: %w", err)
	}

	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			contentType := part.InlineData.MIMEType
			if contentType == "" {
				contentType = "image/png"
			}
			return &Image{Data: part.InlineData.Data, ContentType: contentType}, nil
		}
	}
	return nil, fmt.Errorf("genai image: no image data in response")
}

func (p *genAIProvider) baseConfig(systemPrompt string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	return cfg
}

func (p *genAIProvider) text(ctx context.Context, model, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("genai: no candidates returned")
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("genai: no text in response")
	}
	return text, nil
}

func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genAIType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenAISchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}

func genAIType(t SchemaType) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
