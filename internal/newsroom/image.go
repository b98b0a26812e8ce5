// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"worldpulse/internal/ai"
	"worldpulse/internal/imaging"
)

// PlaceholderImage returns the deterministic stand-in cover for a prompt.
func PlaceholderImage(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("https://picsum.photos/seed/%s/1200/675", hex.EncodeToString(sum[:])[:16])
}

// ImageModel is the slice of ai.Registry used to render covers.
type ImageModel interface {
	GenerateImage(ctx context.Context, req ai.ImageRequest) (*ai.Image, error)
}

// CoverStore publishes cover bytes and returns their public URL.
type CoverStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ModelImages is the production ImageGenerator. Covers are normalised to
// JPEG and uploaded when Store is set; otherwise, or when the upload
// fails, the image is returned inline as a data URI.
type ModelImages struct {
	Model  ImageModel
	Store  CoverStore // optional
	Logger *slog.Logger
	Now    func() time.Time
}

// GenerateImage renders prompt and returns a reference to the image.
func (m *ModelImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	img, err := m.Model.GenerateImage(ctx, ai.ImageRequest{Prompt: prompt, AspectRatio: CoverAspectRatio})
	if err != nil {
		return "", err
	}
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("image model returned no data")
	}

	data, contentType := img.Data, img.ContentType
	if cover, err := imaging.Cover(img.Data); err != nil {
		m.logger().Warn("cover normalisation failed, using original bytes", "error", err)
	} else {
		data, contentType = cover.Data, cover.ContentType
	}
	if contentType == "" {
		contentType = "image/png"
	}

	if m.Store != nil {
		url, err := m.Store.Upload(ctx, m.coverKey(contentType), contentType, data)
		if err == nil {
			return url, nil
		}
		m.logger().Warn("cover upload failed, inlining image", "error", err)
	}
	return dataURI(contentType, data), nil
}

func (m *ModelImages) coverKey(contentType string) string {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	ext := ".png"
	switch contentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	}
	return fmt.Sprintf("covers/%s/%s%s", now().UTC().Format("2006/01"), uuid.NewString(), ext)
}

func (m *ModelImages) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
