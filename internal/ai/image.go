// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
)

// ImageRequest describes a single image to generate.
type ImageRequest struct {
	Prompt string
	// AspectRatio such as "16:9". Empty leaves the model default.
	AspectRatio string
}

// Image is a generated image in its encoded form.
type Image struct {
	Data        []byte
	ContentType string
}

// ImageGenerator is an optional interface for providers that can produce
// images. Claude and Mistral are text-only.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*Image, error)
}

// GenerateImage calls the active provider's image generation if supported.
func (r *Registry) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	p, err := r.Active()
	if err != nil {
		return nil, err
	}

	ig, ok := p.(ImageGenerator)
	if !ok {
		return nil, fmt.Errorf("ai: provider %q does not support image generation", p.Name())
	}

	return ig.GenerateImage(ctx, req)
}

// SupportsImageGeneration returns true if the active provider can generate images.
func (r *Registry) SupportsImageGeneration() bool {
	p, err := r.Active()
	if err != nil {
		return false
	}
	_, ok := p.(ImageGenerator)
	return ok
}
