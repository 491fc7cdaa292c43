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

// Package twin emulates the REST surface of the email notification backend
// in memory. It never delivers anything.
package twin

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

func init() {
	viper.SetDefault("twin.address", "127.0.0.1:8080")
	viper.SetDefault("twin.auth.username", "")
	viper.SetDefault("twin.auth.password", "")
	viper.SetDefault("twin.failingdomain", "fail.example")
	viper.SetDefault("twin.demo", false)
}

// Options configure the twin.
type Options struct {
	Address       string
	Username      string
	Password      string
	FailingDomain string
	Demo          bool
}

// OptionsFromViper reads the twin options from viper.
//
// `twin.address` is the listen address of the twin command.
// `twin.auth.username` and `twin.auth.password` enable basic auth if both are set.
// `twin.failingdomain` is the recipient domain for which every delivery fails.
// `twin.demo` seeds the twin with a week of sample emails and templates.
func OptionsFromViper() Options {
	return Options{
		Address:       viper.GetString("twin.address"),
		Username:      viper.GetString("twin.auth.username"),
		Password:      viper.GetString("twin.auth.password"),
		FailingDomain: viper.GetString("twin.failingdomain"),
		Demo:          viper.GetBool("twin.demo"),
	}
}

// Backend holds the emulated state.
type Backend struct {
	opts  Options
	clock func() time.Time

	mu            sync.Mutex
	failingDomain string
	emails        map[string]models.Email
	templates     map[string]models.Template
}

// NewBackend creates a backend, empty unless demo data is enabled.
func NewBackend(opts Options) *Backend {
	b := Backend{
		opts:          opts,
		clock:         time.Now,
		failingDomain: opts.FailingDomain,
		emails:        make(map[string]models.Email),
		templates:     make(map[string]models.Template),
	}

	if opts.Demo {
		b.Seed(DemoData(b.clock()))
	}

	return &b
}

// SetFailingDomain changes the recipient domain for which deliveries fail.
// An empty domain lets every delivery succeed.
func (b *Backend) SetFailingDomain(domain string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failingDomain = domain
}

// Seed replaces the state with the given emails and templates. Missing ids
// are generated.
func (b *Backend) Seed(emails []models.Email, templates []models.Template) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.emails = make(map[string]models.Email, len(emails))
	b.templates = make(map[string]models.Template, len(templates))

	for _, email := range emails {
		if email.ID == "" {
			email.ID = uuid.NewString()
		}

		b.emails[email.ID] = email
	}

	for _, template := range templates {
		if template.ID == "" {
			template.ID = uuid.NewString()
		}

		b.templates[template.ID] = template
	}
}

// Emails returns all emails ordered by creation.
func (b *Backend) Emails() []models.Email {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sortedEmails()
}

func (b *Backend) sortedEmails() []models.Email {
	emails := make([]models.Email, 0, len(b.emails))
	for _, email := range b.emails {
		emails = append(emails, email)
	}

	sort.SliceStable(emails, func(i, j int) bool {
		if emails[i].CreatedAt.Equal(emails[j].CreatedAt.Time) {
			return emails[i].ID < emails[j].ID
		}

		return emails[i].CreatedAt.Before(emails[j].CreatedAt.Time)
	})

	return emails
}

// Templates returns all templates ordered by name.
func (b *Backend) Templates() []models.Template {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.sortedTemplates()
}

func (b *Backend) sortedTemplates() []models.Template {
	templates := make([]models.Template, 0, len(b.templates))
	for _, template := range b.templates {
		templates = append(templates, template)
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates
}

func (b *Backend) send(req models.SendEmailRequest) models.SendResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	email := models.Email{
		ID:             uuid.NewString(),
		RecipientEmail: req.Recipient,
		Subject:        req.Subject,
		Body:           req.Body,
		CreatedAt:      models.NewTimestamp(b.clock()),
	}

	b.deliver(&email)
	b.emails[email.ID] = email

	message := "Email sent successfully!"
	if email.Status == models.StatusFailed {
		message = "Email failed: " + email.ErrorMessage
	}

	return models.SendResult{ID: email.ID, Status: email.Status, Message: message}
}

func (b *Backend) retry(id string) (models.SendResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.emails[id]
	if !ok {
		return models.SendResult{}, false
	}

	email.RetryCount++
	email.ErrorMessage = ""
	b.deliver(&email)
	b.emails[id] = email

	message := "Retry succeeded!"
	if email.Status == models.StatusFailed {
		message = "Retry failed: " + email.ErrorMessage
	}

	return models.SendResult{ID: id, Status: email.Status, Message: message}, true
}

func (b *Backend) deliver(email *models.Email) {
	addr, err := models.Parse(email.RecipientEmail)

	switch {
	case err != nil:
		email.Status = models.StatusFailed
		email.ErrorMessage = err.Error()

	case b.failingDomain != "" && strings.EqualFold(addr.Domain(), b.failingDomain):
		email.Status = models.StatusFailed
		email.ErrorMessage = "mailbox unavailable"

	default:
		email.Status = models.StatusSent
		email.SentAt = models.NewTimestamp(b.clock())
	}
}

func (b *Backend) email(id string) (models.Email, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.emails[id]
	return email, ok
}

func (b *Backend) createTemplate(fields models.TemplateFields) models.Template {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := models.NewTimestamp(b.clock())
	template := models.Template{
		ID:        uuid.NewString(),
		Name:      fields.Name,
		Subject:   fields.Subject,
		Body:      fields.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	b.templates[template.ID] = template
	return template
}

func (b *Backend) template(id string) (models.Template, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	template, ok := b.templates[id]
	return template, ok
}

func (b *Backend) updateTemplate(id string, fields models.TemplateFields) (models.Template, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	template, ok := b.templates[id]
	if !ok {
		return template, false
	}

	template.Name = fields.Name
	template.Subject = fields.Subject
	template.Body = fields.Body
	template.UpdatedAt = models.NewTimestamp(b.clock())

	b.templates[id] = template
	return template, true
}

func (b *Backend) deleteTemplate(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.templates[id]; !ok {
		return false
	}

	delete(b.templates, id)
	return true
}

func (b *Backend) statistics() models.Statistics {
	b.mu.Lock()
	defer b.mu.Unlock()

	var stats models.Statistics

	for _, email := range b.emails {
		stats.TotalEmails++

		switch email.Status {
		case models.StatusSent:
			stats.TotalSent++
		case models.StatusFailed:
			stats.TotalFailed++
		case models.StatusQueued:
			stats.TotalQueued++
		}
	}

	if stats.TotalEmails > 0 {
		stats.SuccessRate = float64(stats.TotalSent) * 100 / float64(stats.TotalEmails)
	}

	return stats
}
