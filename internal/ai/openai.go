// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// openAIProvider implements the Provider interface using the OpenAI
// chat completions API (POST /v1/chat/completions).
type openAIProvider struct {
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// Generate sends a chat completion request to OpenAI and returns the
// assistant's response text.
func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return p.doChat(ctx, openAIRequest{
		Model:    p.config.Model,
		Messages: chatMessages(systemPrompt, userPrompt),
	})
}

// GenerateStructured uses the json_schema response format. Grounding is
// not available on the chat completions endpoint and is ignored.
func (p *openAIProvider) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	body := openAIRequest{
		Model:    model,
		Messages: chatMessages(req.System, req.Prompt),
	}
	if req.Schema != nil {
		body.ResponseFormat = &openAIResponseFormat{
			Type:       "json_schema",
			JSONSchema: &openAIJSONSchema{Name: "response", Schema: req.Schema},
		}
	} else {
		body.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}
	return p.doChat(ctx, body)
}

// GenerateImage calls the images endpoint with ModelImage (e.g. "gpt-image-1").
func (p *openAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	if p.config.ModelImage == "" {
		return nil, fmt.Errorf("openai: image generation requires OPENAI_MODEL_IMAGE to be set")
	}
	body := openAIImageRequest{
		Model:  p.config.ModelImage,
		Prompt: req.Prompt,
		Size:   openAIImageSize(req.AspectRatio),
		N:      1,
	}

	var result openAIImageResponse
	if err := p.post(ctx, "/images/generations", body, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 || result.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("openai image: no image data in response")
	}
	data, err := base64.StdEncoding.DecodeString(result.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("openai image decode base64: %w", err)
	}
	return &Image{Data: data, ContentType: "image/png"}, nil
}

// doChat performs the HTTP call to the chat completions endpoint.
// Shared between OpenAI and Mistral (same API format).
func (p *openAIProvider) doChat(ctx context.Context, body openAIRequest) (string, error) {
	var result openAIResponse
	if err := p.post(ctx, "/chat/completions", body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}

func (p *openAIProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("openai request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openai read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("openai unmarshal: %w", err)
	}
	return nil
}

func chatMessages(systemPrompt, userPrompt string) []openAIMessage {
	var messages []openAIMessage
	if systemPrompt != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: systemPrompt})
	}
	return append(messages, openAIMessage{Role: "user", Content: userPrompt})
}

func openAIImageSize(aspect string) string {
	switch aspect {
	case "16:9", "3:2", "4:3":
		return "1536x1024"
	case "9:16", "2:3", "3:4":
		return "1024x1536"
	default:
		return "1024x1024"
	}
}

// --- OpenAI-compatible request/response types ---
// Used by both OpenAI and Mistral providers.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIJSONSchema struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

type openAIResponseFormat struct {
	Type       string            `json:"type"`
	JSONSchema *openAIJSONSchema `json:"json_schema,omitempty"`
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}
