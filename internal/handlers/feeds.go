// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"worldpulse/internal/cache"
	"worldpulse/internal/models"
)

// maxFeedItems caps the RSS feed to the newest reports.
const maxFeedItems = 50

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// Feed serves the newest reports as RSS 2.0.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	p.serveXML(w, r, cache.FeedKey(cache.FeedRSS), "application/rss+xml; charset=utf-8", p.buildFeed)
}

// Sitemap serves the XML sitemap of the front page, static pages and every
// report.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	p.serveXML(w, r, cache.FeedKey(cache.FeedSitemap), "application/xml; charset=utf-8", p.buildSitemap)
}

func (p *Public) serveXML(w http.ResponseWriter, r *http.Request, key, contentType string, build func() any) {
	ctx := r.Context()
	if cached, ok := p.pageCache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", contentType)
		w.Write(cached)
		return
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(build()); err != nil {
		slog.Error("encode xml failed", "error", err, "key", key)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, buf.Bytes())
	w.Header().Set("Content-Type", contentType)
	w.Write(buf.Bytes())
}

func (p *Public) buildFeed() any {
	site := p.renderer.Site()
	articles := p.articles.List()
	if len(articles) > maxFeedItems {
		articles = articles[:maxFeedItems]
	}

	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		link := articleURL(site.URL, a)
		items = append(items, rssItem{
			Title:       a.Title,
			Link:        link,
			Description: a.Excerpt,
			Author:      a.Author,
			Categories:  feedCategories(a),
			PubDate:     a.PublishedAt.UTC().Format(time.RFC1123Z),
			GUID:        link,
		})
	}

	channel := rssChannel{
		Title:       site.Name,
		Link:        site.URL + "/",
		Description: site.Description,
		Language:    "en",
		Items:       items,
	}
	if len(articles) > 0 {
		channel.LastBuildDate = articles[0].PublishedAt.UTC().Format(time.RFC1123Z)
	}
	return rssXML{Version: "2.0", Channel: channel}
}

func (p *Public) buildSitemap() any {
	base := p.renderer.Site().URL
	articles := p.articles.List()

	urls := make([]sitemapURL, 0, len(articles)+4)
	home := sitemapURL{Loc: base + "/", ChangeFreq: "hourly"}
	if len(articles) > 0 {
		home.LastMod = articles[0].PublishedAt.UTC().Format("2006-01-02")
	}
	urls = append(urls, home)
	for _, path := range []string{"/contact", "/privacy", "/terms"} {
		urls = append(urls, sitemapURL{Loc: base + path, ChangeFreq: "yearly"})
	}
	for _, a := range articles {
		modified := a.UpdatedAt
		if modified.IsZero() {
			modified = a.PublishedAt
		}
		urls = append(urls, sitemapURL{
			Loc:     articleURL(base, a),
			LastMod: modified.UTC().Format("2006-01-02"),
		})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

// feedCategories lists the desk followed by the tags, skipping tags that
// repeat it.
func feedCategories(a models.Article) []string {
	out := []string{string(a.Category)}
	for _, t := range a.Tags {
		if !strings.EqualFold(t, string(a.Category)) {
			out = append(out, t)
		}
	}
	return out
}

func articleURL(base string, a models.Article) string {
	return base + "/article/" + url.PathEscape(a.Slug)
}
