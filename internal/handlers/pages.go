// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"worldpulse/internal/render"
	"worldpulse/internal/seo"
)

var privacyPolicy = []string{
	"WorldPulse does not require an account and does not set tracking cookies. Pages are served without third-party analytics.",
	"Messages sent through the contact form are recorded in the server log so the editorial desk can read them. They are not shared with third parties.",
	"Standard web server logs (IP address, requested path, response status and timing) are kept for operational purposes and rotated regularly.",
	"Share links open the respective social network in a new tab. Those networks apply their own privacy policies once you follow a link.",
}

var termsOfUse = []string{
	"Reports on WorldPulse are produced by an automated editorial desk from publicly trending topics. They are provided for general information only and do not constitute professional advice.",
	"Generated content can contain errors. Verify important facts with primary sources before relying on them.",
	"You may quote and link to reports with attribution to WorldPulse. Bulk reproduction of the site's content requires written permission.",
	"Abusive use of the site, including automated scraping that degrades service for others, is not permitted and may be rate-limited.",
}

// Contact renders the contact form.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, "contact", &render.PageData{
		Head:    seo.ForPage(p.renderer.Site(), "Contact", "Reach the WorldPulse editorial desk.", "/contact"),
		Section: "contact",
		Data:    map[string]any{},
	})
}

// ContactSubmit validates a contact message and records it in the log.
// Nothing is persisted or forwarded.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	message := r.FormValue("message")

	head := seo.ForPage(p.renderer.Site(), "Contact", "Reach the WorldPulse editorial desk.", "/contact")

	if errMsg := validateContact(name, email, message); errMsg != "" {
		p.renderer.PageStatus(w, r, http.StatusUnprocessableEntity, "contact", &render.PageData{
			Head:    head,
			Section: "contact",
			Data: map[string]any{
				"Error":   errMsg,
				"Name":    name,
				"Email":   email,
				"Message": message,
			},
		})
		return
	}

	slog.Info("contact message received",
		"name", strings.TrimSpace(name),
		"email", strings.TrimSpace(email),
		"length", utf8.RuneCountInString(message),
		"message", strings.TrimSpace(message),
	)

	p.renderer.Page(w, r, "contact", &render.PageData{
		Head:    head,
		Section: "contact",
		Data:    map[string]any{"Sent": true},
	})
}

// Privacy renders the privacy policy.
func (p *Public) Privacy(w http.ResponseWriter, r *http.Request) {
	p.legal(w, r, "Privacy Policy", "/privacy", privacyPolicy)
}

// Terms renders the terms of use.
func (p *Public) Terms(w http.ResponseWriter, r *http.Request) {
	p.legal(w, r, "Terms of Use", "/terms", termsOfUse)
}

func (p *Public) legal(w http.ResponseWriter, r *http.Request, heading, path string, paragraphs []string) {
	p.renderer.Page(w, r, "legal", &render.PageData{
		Head:    seo.ForPage(p.renderer.Site(), heading, "", path),
		Section: "legal",
		Data: map[string]any{
			"Heading":    heading,
			"Paragraphs": paragraphs,
		},
	})
}
