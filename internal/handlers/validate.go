// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxTopicLen   = 500
	maxNameLen    = 200
	maxEmailLen   = 320
	maxMessageLen = 5_000
)

// validateTopic checks the admin generation topic and returns the first
// error found. Emptiness is left to the desk.
func validateTopic(topic string) string {
	if utf8.RuneCountInString(strings.TrimSpace(topic)) > maxTopicLen {
		return "Topic is too long (max 500 characters)."
	}
	return ""
}

// validateContact checks contact form inputs and returns the first error found.
func validateContact(name, email, message string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if len(email) > maxEmailLen {
		return "Email is too long."
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "Email address is not valid."
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}
