// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the admin desk. It supports full-page and HTMX partial rendering,
// detecting the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"worldpulse/internal/markdown"
	"worldpulse/internal/models"
	"worldpulse/internal/seo"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Head    seo.Head       // SEO metadata for the <head> element
	Site    seo.Site       // Publication name and base URL, set by the renderer
	Section string         // Active navigation section (e.g. "home", "admin")
	Data    map[string]any // Page-specific data
	Flashes []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
	site      seo.Site
}

// New creates a Renderer by parsing every page template from the embedded
// filesystem. Each page template is paired with the base layout.
func New(site seo.Site, devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		site:      site,
		funcMap: template.FuncMap{
			"markdown":    markdown.Render,
			"tagHandle":   seo.TagHandle,
			"pathEscape":  url.PathEscape,
			"queryEscape": url.QueryEscape,
			"categories":  models.Categories,
			// longDate formats a timestamp for bylines, e.g. "March 14, 2026".
			"longDate": func(t time.Time) string {
				return t.UTC().Format("January 2, 2006")
			},
			"isoDate": func(t time.Time) string {
				return t.UTC().Format(time.RFC3339)
			},
			"clock": func(t time.Time) string {
				return t.UTC().Format("15:04:05")
			},
			"upper": strings.ToUpper,
			"year": func() int {
				return time.Now().Year()
			},
			// tabClass marks the active category tab.
			"tabClass": func(current, target string) string {
				if current == target {
					return "tab tab-active"
				}
				return "tab"
			},
			"isDev": func() bool {
				return devMode
			},
		},
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Site returns the publication description the renderer was built with.
func (rn *Renderer) Site() seo.Site {
	return rn.site
}

// Bytes renders a full page into memory so it can be cached.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.execute(&buf, name, "base.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Page renders a full page with status 200, or only the "content" block
// for HTMX requests.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code. The page is rendered
// into a buffer first so a template failure never leaves a half-written
// response behind.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	execName := "base.html"
	if isHTMX(r) {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := rn.execute(&buf, name, execName, data); err != nil {
		slog.Error("render template failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (rn *Renderer) execute(buf *bytes.Buffer, name, execName string, data *PageData) error {
	tmpl, ok := rn.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	if data == nil {
		data = &PageData{}
	}
	data.Site = rn.site
	if data.Head.Title == "" {
		data.Head = seo.ForPage(rn.site, "", "", "/")
	}
	return tmpl.ExecuteTemplate(buf, execName, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
