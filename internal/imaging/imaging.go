// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalises generated cover images into web-sized JPEGs.
// PNG, JPEG, GIF and WebP sources are accepted; images wider than the
// target are downscaled with CatmullRom, smaller ones are only re-encoded.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

// maxImagePixels guards against decompression bombs (about 50 MP).
const maxImagePixels = 50_000_000

// ErrTooLarge is returned for images above the pixel limit.
var ErrTooLarge = errors.New("image exceeds pixel limit")

// Variant describes an output size.
type Variant struct {
	Name     string
	MaxWidth int
	Quality  int // JPEG quality 1-100
}

// CoverVariant is the size used for article covers (16:9 at 1200x675).
var CoverVariant = Variant{Name: "cover", MaxWidth: 1200, Quality: 85}

// ProcessedImage is an encoded variant ready for upload or inlining.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string
}

// Cover normalises src with CoverVariant.
func Cover(src []byte) (*ProcessedImage, error) {
	return Process(src, CoverVariant)
}

// Process decodes src, downscales it to v.MaxWidth if wider and encodes
// the result as JPEG. Transparent areas are flattened onto white.
func Process(src []byte, v Variant) (*ProcessedImage, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("imaging: %dx%d: %w", cfg.Width, cfg.Height, ErrTooLarge)
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if v.MaxWidth > 0 && width > v.MaxWidth {
		height = int(float64(height) * float64(v.MaxWidth) / float64(width))
		width = v.MaxWidth
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	quality := v.Quality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
	}

	return &ProcessedImage{
		Name:        v.Name,
		Width:       width,
		Height:      height,
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}, nil
}
