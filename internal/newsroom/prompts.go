// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"fmt"
	"strings"

	"worldpulse/internal/ai"
	"worldpulse/internal/models"
)

// ImageStylePrefix is prepended to every cover image prompt.
const ImageStylePrefix = "professional photojournalism, high detail, cinematic, realistic: "

// CoverAspectRatio is the fixed aspect ratio requested for cover images.
const CoverAspectRatio = "16:9"

// TrendCount is how many topics a trend fetch asks for.
const TrendCount = 6

const draftSystemPrompt = `You are the Lead Editor and SEO Architect for WorldPulse.
You produce original, verified intelligence reports.
House style follows the BBC and Reuters guides: neutral, factual and deeply analytical.
All metadata must be optimised for search visibility and accessibility.`

func draftPrompt(topic string, category models.Category) string {
	return fmt.Sprintf(`Write a long-form investigative news article about: %q.
Category: %s. Target length: about 1000 words.
Tone: authoritative, neutral, human journalism.
Structure: Markdown with ## headers covering Intro, Background, Key Analysis, Global Impact and Conclusion.
Featured: set featured to true only if the story is globally significant, false for a standard brief.

SEO instructions:
1. Meta description: a keyword-rich summary of 155-165 characters that works as a click-worthy meta tag.
2. Image alt text: a narrative description of the cover image scene that includes the primary keywords.
3. Keywords: 8-10 highly relevant SEO keywords.`, topic, category)
}

// DraftSchema is the response schema for article drafts.
func DraftSchema() *ai.Schema {
	str := func(desc string) *ai.Schema { return &ai.Schema{Type: ai.TypeString, Description: desc} }
	strList := &ai.Schema{Type: ai.TypeArray, Items: &ai.Schema{Type: ai.TypeString}}
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"title":       str(""),
			"subheadline": str(""),
			"excerpt":     str("A high-impact summary for the card view."),
			"content":     str("The full article body in Markdown."),
			"featured":    {Type: ai.TypeBoolean},
			"pullQuote":   str(""),
			"imagePrompt": str("A detailed prompt for generating a relevant editorial image."),
			"imageAlt":    str("Detailed narrative alt text for SEO and accessibility."),
			"tags":        strList,
			"meta": {
				Type: ai.TypeObject,
				Properties: map[string]*ai.Schema{
					"description": str("The 160-character SEO meta description."),
					"keywords":    strList,
				},
			},
			"faqs": {
				Type: ai.TypeArray,
				Items: &ai.Schema{
					Type: ai.TypeObject,
					Properties: map[string]*ai.Schema{
						"question": str(""),
						"answer":   str(""),
					},
				},
			},
		},
		Required: []string{"title", "excerpt", "content"},
	}
}

func trendPrompt() string {
	names := make([]string, 0, 8)
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf(`Identify %d major global trending news topics from the last 24 hours.
Each category must be exactly one of: %s.
Include an estimated global interest volume (for example "1.2M") and a signed momentum percentage (for example "+12%%").`,
		TrendCount, strings.Join(names, ", "))
}

// TrendSchema is the response schema for trend fetches.
func TrendSchema() *ai.Schema {
	fields := []string{"topic", "category", "volume", "change", "description"}
	props := make(map[string]*ai.Schema, len(fields))
	for _, f := range fields {
		props[f] = &ai.Schema{Type: ai.TypeString}
	}
	return &ai.Schema{
		Type: ai.TypeArray,
		Items: &ai.Schema{
			Type:       ai.TypeObject,
			Properties: props,
			Required:   fields,
		},
	}
}
