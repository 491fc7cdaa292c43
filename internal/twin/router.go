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

package twin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

// Handler returns the http.Handler serving the backend routes below "/api".
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		if b.opts.Username != "" && b.opts.Password != "" {
			r.Use(middleware.BasicAuth("briefdesk twin", map[string]string{
				b.opts.Username: b.opts.Password,
			}))
		}

		r.Route("/emails", func(r chi.Router) {
			r.Get("/", b.handleListEmails)
			r.Post("/send", b.handleSendEmail)
			r.Get("/{id}", b.handleGetEmail)
			r.Post("/{id}/retry", b.handleRetryEmail)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", b.handleListTemplates)
			r.Post("/", b.handleCreateTemplate)
			r.Get("/{id}", b.handleGetTemplate)
			r.Put("/{id}", b.handleUpdateTemplate)
			r.Delete("/{id}", b.handleDeleteTemplate)
		})

		r.Get("/reports/emails/statistics", b.handleStatistics)
	})

	return r
}

func (b *Backend) handleListEmails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Emails())
}

func (b *Backend) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req models.SendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Recipient == "" || req.Subject == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "recipient, subject and body are required")
		return
	}

	writeJSON(w, http.StatusOK, b.send(req))
}

func (b *Backend) handleGetEmail(w http.ResponseWriter, r *http.Request) {
	email, ok := b.email(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "email not found")
		return
	}

	writeJSON(w, http.StatusOK, email)
}

func (b *Backend) handleRetryEmail(w http.ResponseWriter, r *http.Request) {
	result, ok := b.retry(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "email not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (b *Backend) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Templates())
}

func (b *Backend) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeTemplateFields(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, b.createTemplate(fields))
}

func (b *Backend) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	template, ok := b.template(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	writeJSON(w, http.StatusOK, template)
}

func (b *Backend) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeTemplateFields(w, r)
	if !ok {
		return
	}

	template, ok := b.updateTemplate(chi.URLParam(r, "id"), fields)
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	writeJSON(w, http.StatusOK, template)
}

func (b *Backend) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if !b.deleteTemplate(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.statistics())
}

func decodeTemplateFields(w http.ResponseWriter, r *http.Request) (models.TemplateFields, bool) {
	var fields models.TemplateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return fields, false
	}

	if fields.Name == "" || fields.Subject == "" || fields.Body == "" {
		writeError(w, http.StatusBadRequest, "name, subject and body are required")
		return fields, false
	}

	return fields, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v != nil {
		json.NewEncoder(w).Encode(v) // nolint:errcheck
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}
