// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

const (
	msgFillAllFields    = "Please fill all fields"
	msgInvalidRecipient = "Please enter a valid recipient address"
	msgEmailSent        = "Email sent successfully!"
	msgEmailFailed      = "Failed to send email"
	msgFillSubjectBody  = "Fill in Subject and Body first"
	msgTestEmailSent    = "Test email sent to %s!"
	msgTestEmailFailed  = "Test email failed, check the mail provider configuration"
)

// Composer holds the state of an email being composed.
type Composer struct {
	console *Console

	Recipient string
	Subject   string
	Body      string

	template string
	open     bool
	busy     progress
}

// Compose opens an empty composer.
func (c *Console) Compose() *Composer {
	return &Composer{console: c, open: true}
}

// SelectTemplate prefills subject and body from the cached template with the
// given id. The recipient is left untouched. An empty id clears the
// selection without changing the fields.
func (m *Composer) SelectTemplate(id string) error {
	if id == "" {
		m.template = ""
		return nil
	}

	template, ok := m.console.store.Template(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	m.template = template.ID
	m.Subject = template.Subject
	m.Body = template.Body

	return nil
}

// SelectedTemplate returns the id of the selected template, if any.
func (m *Composer) SelectedTemplate() string {
	return m.template
}

// Send sends the composed email. On success the email log is refreshed and
// the composer is closed.
func (m *Composer) Send(ctx context.Context) error {
	var missing []string

	if isBlank(m.Recipient) {
		missing = append(missing, "recipient")
	}

	if isBlank(m.Subject) {
		missing = append(missing, "subject")
	}

	if isBlank(m.Body) {
		missing = append(missing, "body")
	}

	if len(missing) > 0 {
		return m.console.reject(msgFillAllFields, missing...)
	}

	if _, err := models.ParseRecipient(m.Recipient); err != nil {
		return m.console.reject(msgInvalidRecipient, "recipient")
	}

	request := models.SendEmailRequest{
		Recipient: m.Recipient,
		Subject:   m.Subject,
		Body:      m.Body,
	}

	err := m.console.perform(ctx, &m.busy, action{
		name:    "send email",
		success: msgEmailSent,
		failure: msgEmailFailed,
		refresh: m.console.store.FetchEmails,
	}, func(ctx context.Context) error {
		_, err := m.console.client.SendEmail(ctx, request)
		return err
	})

	if err == nil {
		m.Close()
	}

	return err
}

// SendTest sends the composed subject and body to the configured test
// recipient. The composer stays open.
func (m *Composer) SendTest(ctx context.Context) error {
	var missing []string

	if isBlank(m.Subject) {
		missing = append(missing, "subject")
	}

	if isBlank(m.Body) {
		missing = append(missing, "body")
	}

	if len(missing) > 0 {
		return m.console.reject(msgFillSubjectBody, missing...)
	}

	recipient := m.console.opts.TestRecipient
	request := models.SendEmailRequest{
		Recipient: recipient,
		Subject:   m.Subject,
		Body:      m.Body,
	}

	return m.console.perform(ctx, &m.busy, action{
		name:    "send test email",
		success: fmt.Sprintf(msgTestEmailSent, recipient),
		failure: msgTestEmailFailed,
		refresh: m.console.store.FetchEmails,
	}, func(ctx context.Context) error {
		m.Recipient = recipient

		_, err := m.console.client.SendEmail(ctx, request)
		return err
	})
}

// Open reports whether the composer has not been closed yet.
func (m *Composer) Open() bool {
	return m.open
}

// Close closes the composer. A send in flight still completes.
func (m *Composer) Close() {
	m.open = false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
