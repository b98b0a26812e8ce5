// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoProvider is returned when the active provider name has no
	// configured provider behind it.
	ErrNoProvider = errors.New("no ai provider configured")
	// ErrNoJSON is returned when a model response holds no JSON document.
	ErrNoJSON = errors.New("no json in model response")
)

// SchemaType names a JSON value type in a response schema.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema is the subset of JSON Schema the newsroom uses to constrain model
// output. It marshals to standard JSON Schema; providers translate it to
// their own dialect where needed.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
}

// StructuredRequest asks a model for a JSON document matching Schema.
type StructuredRequest struct {
	System string
	Prompt string
	Schema *Schema
	// Model overrides the provider's default model when set.
	Model string
	// Grounded enables web search grounding on providers that support it.
	Grounded bool
}

// StructuredGenerator is an optional interface for providers with native
// JSON output modes.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

// GenerateStructured asks the active provider for JSON matching req.Schema
// and returns the raw JSON text. Providers without a native JSON mode get
// the schema appended to the prompt and their reply is trimmed to the JSON
// document it contains.
func (r *Registry) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}

	var text string
	if sg, ok := p.(StructuredGenerator); ok {
		text, err = sg.GenerateStructured(ctx, req)
	} else {
		text, err = p.Generate(ctx, req.System, schemaPrompt(req.Prompt, req.Schema))
	}
	if err != nil {
		return "", err
	}
	return ExtractJSON(text)
}

// SupportsStructuredOutput reports whether the active provider has a native
// JSON output mode.
func (r *Registry) SupportsStructuredOutput() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(StructuredGenerator)
	return ok
}

// schemaPrompt appends a JSON-only instruction with the schema to a prompt.
func schemaPrompt(prompt string, schema *Schema) string {
	if schema == nil {
		return prompt + "\n\nRespond with a single JSON document and nothing else."
	}
	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return prompt
	}
	return fmt.Sprintf("%s\n\nRespond with a single JSON document and nothing else. "+
		"It must validate against this JSON Schema:\n%s", prompt, encoded)
}

// ExtractJSON strips markdown code fences and surrounding prose from a model
// reply and returns the outermost JSON object or array it contains.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	if json.Valid([]byte(s)) {
		return s, nil
	}

	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return "", ErrNoJSON
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", ErrNoJSON
	}
	candidate := s[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrNoJSON
	}
	return candidate, nil
}
