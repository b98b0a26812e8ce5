// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo builds the search and social metadata rendered into page
// heads: title, description, OpenGraph and Twitter cards, canonical link
// and schema.org JSON-LD.
package seo

import (
	"encoding/json"
	"html/template"
	"net/url"
	"strings"
	"time"

	"worldpulse/internal/models"
)

// TitleSuffix is appended to article titles in the <title> element.
const TitleSuffix = " | WorldPulse Intelligence"

// Head is the metadata for one page.
type Head struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	URL         string // og:url
	Image       string
	OGType      string // "website" or "article"
	TwitterCard string
	JSONLD      template.JS
}

// Site describes the publication for page-level defaults.
type Site struct {
	Name        string
	URL         string
	Description string
}

// ForPage returns metadata for a non-article page.
func ForPage(site Site, title, description, path string) Head {
	pageURL := strings.TrimRight(site.URL, "/") + path
	fullTitle := site.Name
	if title != "" {
		fullTitle = title + " | " + site.Name
	}
	if description == "" {
		description = site.Description
	}
	return Head{
		Title:       fullTitle,
		Description: description,
		Canonical:   pageURL,
		URL:         pageURL,
		OGType:      "website",
		TwitterCard: "summary",
		JSONLD:      websiteJSONLD(site),
	}
}

// ForArticle returns metadata for an article page served at pageURL.
func ForArticle(site Site, a models.Article, pageURL string) Head {
	canonical := a.Meta.Canonical
	if canonical == "" {
		canonical = pageURL
	}
	return Head{
		Title:       a.Title + TitleSuffix,
		Description: a.Meta.Description,
		Keywords:    strings.Join(a.Meta.Keywords, ", "),
		Canonical:   canonical,
		URL:         pageURL,
		Image:       a.Image,
		OGType:      "article",
		TwitterCard: "summary_large_image",
		JSONLD:      NewsArticleJSONLD(site, a),
	}
}

type ldPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type ldNewsArticle struct {
	Context       string     `json:"@context"`
	Type          string     `json:"@type"`
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	Image         []string   `json:"image"`
	DatePublished string     `json:"datePublished"`
	DateModified  string     `json:"dateModified"`
	Author        []ldPerson `json:"author"`
	Keywords      string     `json:"keywords,omitempty"`
	Section       string     `json:"articleSection,omitempty"`
}

// NewsArticleJSONLD renders the schema.org NewsArticle block for a. The
// JSON encoder escapes <, > and &, so the output is safe inside a script
// element.
func NewsArticleJSONLD(site Site, a models.Article) template.JS {
	doc := ldNewsArticle{
		Context:       "https://schema.org",
		Type:          "NewsArticle",
		Headline:      a.Title,
		Description:   a.Meta.Description,
		Image:         []string{a.Image},
		DatePublished: a.PublishedAt.UTC().Format(time.RFC3339),
		DateModified:  a.UpdatedAt.UTC().Format(time.RFC3339),
		Author: []ldPerson{{
			Type: "Person",
			Name: a.Author,
			URL:  strings.TrimRight(site.URL, "/") + "/editorial-desk",
		}},
		Keywords: strings.Join(a.Meta.Keywords, ", "),
		Section:  string(a.Category),
	}
	return marshalJS(doc)
}

func websiteJSONLD(site Site) template.JS {
	doc := map[string]string{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      site.URL,
	}
	if site.Description != "" {
		doc["description"] = site.Description
	}
	return marshalJS(doc)
}

func marshalJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// ShareLink is an outbound share target.
type ShareLink struct {
	Name string
	URL  string
}

// ShareLinks returns the X, LinkedIn and Facebook share URLs for a page.
func ShareLinks(pageURL, title string) []ShareLink {
	u := url.QueryEscape(pageURL)
	return []ShareLink{
		{Name: "X / Twitter", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(title)},
		{Name: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{Name: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
	}
}

// TagHandle renders a tag as a compact hashtag, e.g. "Climate Policy" →
// "#climatepolicy".
func TagHandle(tag string) string {
	return "#" + strings.Join(strings.Fields(strings.ToLower(tag)), "")
}
