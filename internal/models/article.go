// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 225

// DefaultAuthor is the byline of every desk-produced article.
const DefaultAuthor = "AI Editorial Desk"

// FAQ is a single question/answer pair shown under an article.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Meta groups the SEO metadata of an article.
type Meta struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Canonical   string   `json:"canonical"`
}

// Article is a published report. Articles are never modified once they
// are in the content store.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subheadline string    `json:"subheadline"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Category    Category  `json:"category"`
	Image       string    `json:"image"`
	ImageAlt    string    `json:"imageAlt"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags"`
	ReadTime    string    `json:"readTime"`
	FAQs        []FAQ     `json:"faqs"`
	PullQuote   string    `json:"pullQuote,omitempty"`
	Featured    bool      `json:"featured"`
	Meta        Meta      `json:"meta"`
}

// HasTag reports whether the article carries tag, ignoring case.
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ReadMinutes returns the estimated reading time of content in whole
// minutes: word count over WordsPerMinute, rounded up, never below one.
func ReadMinutes(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// EstimateReadTime formats ReadMinutes for display, e.g. "4 min read".
func EstimateReadTime(content string) string {
	return fmt.Sprintf("%d min read", ReadMinutes(content))
}
