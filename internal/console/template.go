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

	"github.com/lukasdietrich/briefdesk/internal/models"
)

const (
	msgTemplateCreated      = "Template created!"
	msgTemplateUpdated      = "Template updated!"
	msgTemplateSaveFailed   = "Failed to save template"
	msgTemplateDeleted      = "Template deleted!"
	msgTemplateDeleteFailed = "Failed to delete template"
)

// TemplateEditor holds the state of a template being created or edited.
type TemplateEditor struct {
	console *Console
	id      string

	Name    string
	Subject string
	Body    string

	open bool
	busy progress
}

// NewTemplate opens an empty editor that creates a template on save.
func (c *Console) NewTemplate() *TemplateEditor {
	return &TemplateEditor{console: c, open: true}
}

// EditTemplate opens an editor prefilled with the cached template.
func (c *Console) EditTemplate(id string) (*TemplateEditor, error) {
	template, ok := c.store.Template(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}

	return &TemplateEditor{
		console: c,
		id:      template.ID,
		Name:    template.Name,
		Subject: template.Subject,
		Body:    template.Body,
		open:    true,
	}, nil
}

// ID returns the id of the edited template or an empty string for new ones.
func (e *TemplateEditor) ID() string {
	return e.id
}

// Save creates or updates the template. On success the template list is
// refreshed and the editor is closed.
func (e *TemplateEditor) Save(ctx context.Context) error {
	var missing []string

	if isBlank(e.Name) {
		missing = append(missing, "name")
	}

	if isBlank(e.Subject) {
		missing = append(missing, "subject")
	}

	if isBlank(e.Body) {
		missing = append(missing, "body")
	}

	if len(missing) > 0 {
		return e.console.reject(msgFillAllFields, missing...)
	}

	fields := models.TemplateFields{
		Name:    e.Name,
		Subject: e.Subject,
		Body:    e.Body,
	}

	a := action{
		name:    "create template",
		success: msgTemplateCreated,
		failure: msgTemplateSaveFailed,
		refresh: e.console.store.FetchTemplates,
	}

	call := func(ctx context.Context) error {
		_, err := e.console.client.CreateTemplate(ctx, fields)
		return err
	}

	if e.id != "" {
		a.name = "update template"
		a.success = msgTemplateUpdated

		call = func(ctx context.Context) error {
			_, err := e.console.client.UpdateTemplate(ctx, e.id, fields)
			return err
		}
	}

	err := e.console.perform(ctx, &e.busy, a, call)
	if err == nil {
		e.Close()
	}

	return err
}

// Open reports whether the editor has not been closed yet.
func (e *TemplateEditor) Open() bool {
	return e.open
}

// Close closes the editor.
func (e *TemplateEditor) Close() {
	e.open = false
}

// DeleteTemplate deletes a template and refreshes the template list. The
// caller is expected to have asked for confirmation.
func (c *Console) DeleteTemplate(ctx context.Context, id string) error {
	return c.perform(ctx, c.deleting.get(id), action{
		name:    "delete template",
		success: msgTemplateDeleted,
		failure: msgTemplateDeleteFailed,
		refresh: c.store.FetchTemplates,
	}, func(ctx context.Context) error {
		return c.client.DeleteTemplate(ctx, id)
	})
}

// Deleting reports whether a delete of the template is in flight.
func (c *Console) Deleting(id string) bool {
	return c.deleting.Active(id)
}

// TemplateSender is a composer prefilled from a cached template. Subject
// and body stay editable and are sent as plain fields.
type TemplateSender struct {
	*Composer

	template models.Template
}

// SendTemplate opens a sender for the cached template.
func (c *Console) SendTemplate(id string) (*TemplateSender, error) {
	composer := c.Compose()

	if err := composer.SelectTemplate(id); err != nil {
		return nil, err
	}

	template, _ := c.store.Template(composer.SelectedTemplate())
	return &TemplateSender{Composer: composer, template: template}, nil
}

// Template returns the template the sender was opened with.
func (s *TemplateSender) Template() models.Template {
	return s.template
}
