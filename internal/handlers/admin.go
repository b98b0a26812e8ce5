// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"worldpulse/internal/desk"
	"worldpulse/internal/models"
	"worldpulse/internal/render"
	"worldpulse/internal/seo"
)

// Admin groups the editorial desk handlers. The admin area has no
// authentication.
type Admin struct {
	renderer *render.Renderer
	desk     *desk.Desk
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, d *desk.Desk) *Admin {
	return &Admin{renderer: renderer, desk: d}
}

type generateAccepted struct {
	Status string `json:"status"`
	LogID  string `json:"logId"`
}

// Dashboard renders the desk form, the current step and the automation logs.
// The form keeps the topic of the last run, so a failed topic can be retried.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := a.desk.Snapshot()
	a.renderDashboard(w, r, http.StatusOK, snap, snap.Topic, string(snap.Category), "")
}

// Generate submits a topic to the desk. Browsers are redirected back to the
// dashboard; JSON clients receive 202 with the log entry ID.
func (a *Admin) Generate(w http.ResponseWriter, r *http.Request) {
	topic := r.FormValue("topic")
	category := strings.TrimSpace(r.FormValue("category"))

	if errMsg := validateTopic(topic); errMsg != "" {
		a.reject(w, r, http.StatusUnprocessableEntity, topic, category, errMsg)
		return
	}

	job, err := a.desk.Submit(topic, models.Category(category))
	if err != nil {
		status, msg := submitError(err)
		if status >= http.StatusInternalServerError {
			slog.Error("submit generation failed", "error", err)
		}
		a.reject(w, r, status, topic, category, msg)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusAccepted, generateAccepted{Status: "accepted", LogID: job.LogID})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Status returns the desk snapshot as JSON for dashboard polling.
func (a *Admin) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.desk.Snapshot())
}

func (a *Admin) reject(w http.ResponseWriter, r *http.Request, status int, topic, category, msg string) {
	if wantsJSON(r) {
		writeJSONError(w, status, msg)
		return
	}
	a.renderDashboard(w, r, status, a.desk.Snapshot(), topic, category, msg)
}

func (a *Admin) renderDashboard(w http.ResponseWriter, r *http.Request, status int, snap desk.Snapshot, topic, category, errMsg string) {
	a.renderer.PageStatus(w, r, status, "admin", &render.PageData{
		Head:    seo.ForPage(a.renderer.Site(), "Editorial Desk", "", "/admin"),
		Section: "admin",
		Data: map[string]any{
			"Snapshot": snap,
			"Topic":    topic,
			"Category": category,
			"Error":    errMsg,
		},
	})
}

// submitError maps a desk rejection to a status code and a user message.
func submitError(err error) (int, string) {
	switch {
	case errors.Is(err, desk.ErrBusy):
		return http.StatusConflict, "A report is already being generated. Wait for it to finish."
	case errors.Is(err, desk.ErrEmptyTopic):
		return http.StatusUnprocessableEntity, "Topic is required."
	case errors.Is(err, desk.ErrInvalidCategory):
		return http.StatusUnprocessableEntity, "Choose a valid category."
	case errors.Is(err, desk.ErrClosed):
		return http.StatusServiceUnavailable, "The desk is shutting down."
	default:
		return http.StatusInternalServerError, "The report could not be started."
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
