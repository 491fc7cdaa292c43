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

package shell

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

// finder selects items from a list.
type finder interface {
	Find(slice interface{}, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)
	FindMulti(slice interface{}, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error)
}

type fuzzyFinder struct{}

func (fuzzyFinder) Find(slice interface{}, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(slice, itemFunc, opts...)
}

func (fuzzyFinder) FindMulti(slice interface{}, itemFunc func(int) string, opts ...fuzzyfinder.Option) ([]int, error) {
	return fuzzyfinder.FindMulti(slice, itemFunc, opts...)
}

func selectOneEmail(ctx *cmdContext, emails []models.Email) (models.Email, error) {
	if len(emails) == 0 {
		return models.Email{}, errNoEmails
	}

	index, err := ctx.finder.Find(emails, mapEmailSearch(emails), emailPreview(emails))
	if err != nil {
		return models.Email{}, err
	}

	return emails[index], nil
}

func selectMultipleEmails(ctx *cmdContext, emails []models.Email) ([]models.Email, error) {
	if len(emails) == 0 {
		return nil, errNoEmails
	}

	indices, err := ctx.finder.FindMulti(emails, mapEmailSearch(emails), emailPreview(emails))
	if err != nil {
		return nil, err
	}

	selectedEmails := make([]models.Email, len(indices))
	for i, index := range indices {
		selectedEmails[i] = emails[index]
	}

	return selectedEmails, nil
}

func selectOneTemplate(ctx *cmdContext, templates []models.Template) (models.Template, error) {
	if len(templates) == 0 {
		return models.Template{}, errNoTemplates
	}

	index, err := ctx.finder.Find(templates, mapTemplateSearch(templates), templatePreview(templates))
	if err != nil {
		return models.Template{}, err
	}

	return templates[index], nil
}

func mapEmailSearch(emails []models.Email) func(int) string {
	return func(i int) string {
		email := emails[i]
		return fmt.Sprintf("%-6s  %s  %s", email.Status, email.RecipientEmail, email.Subject)
	}
}

func mapTemplateSearch(templates []models.Template) func(int) string {
	return func(i int) string {
		return templates[i].Name
	}
}

func emailPreview(emails []models.Email) fuzzyfinder.Option {
	return fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
		if i < 0 {
			return ""
		}

		email := emails[i]
		preview := fmt.Sprintf("To: %s\nSubject: %s\nStatus: %s\n\n%s",
			email.RecipientEmail, email.Subject, email.Status, email.Body)

		if email.ErrorMessage != "" {
			preview += "\n\nError: " + email.ErrorMessage
		}

		return preview
	})
}

func templatePreview(templates []models.Template) fuzzyfinder.Option {
	return fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
		if i < 0 {
			return ""
		}

		template := templates[i]
		return fmt.Sprintf("Subject: %s\n\n%s", template.Subject, template.Body)
	})
}
