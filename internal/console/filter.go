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
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

// DateLayout is the layout of the filter dates entered by the operator.
const DateLayout = "2006-01-02"

// EmailFilter narrows the email log. The zero value matches every email.
type EmailFilter struct {
	// Status matches emails with exactly this status.
	Status models.EmailStatus
	// Recipient matches emails whose recipient contains this text, ignoring
	// case.
	Recipient string
	// From matches emails created on or after the start of this day.
	From time.Time
	// To matches emails created on or before the end of this day.
	To time.Time
}

// ParseDate parses a filter date in DateLayout. Dates are interpreted in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}

	return t, nil
}

// Active reports whether any criterion is set.
func (f EmailFilter) Active() bool {
	return f.Status != "" || f.Recipient != "" || !f.From.IsZero() || !f.To.IsZero()
}

// Apply returns the emails matching the filter in their original order. The
// input is not modified.
func (f EmailFilter) Apply(emails []models.Email) []models.Email {
	m := f.matcher()
	filtered := make([]models.Email, 0, len(emails))

	for _, email := range emails {
		if m.match(email) {
			filtered = append(filtered, email)
		}
	}

	return filtered
}

// Match reports whether a single email matches the filter.
func (f EmailFilter) Match(email models.Email) bool {
	return f.matcher().match(email)
}

type matcher struct {
	filter    EmailFilter
	fold      cases.Caser
	recipient string
	from      time.Time
	until     time.Time
}

func (f EmailFilter) matcher() *matcher {
	m := matcher{
		filter: f,
		fold:   cases.Fold(),
	}

	if f.Recipient != "" {
		m.recipient = m.fold.String(f.Recipient)
	}

	if !f.From.IsZero() {
		m.from = startOfDay(f.From)
	}

	if !f.To.IsZero() {
		m.until = startOfDay(f.To).AddDate(0, 0, 1)
	}

	return &m
}

func (m *matcher) match(email models.Email) bool {
	if m.filter.Status != "" && email.Status != m.filter.Status {
		return false
	}

	if m.recipient != "" && !strings.Contains(m.fold.String(email.RecipientEmail), m.recipient) {
		return false
	}

	// Emails without a creation time are never excluded by the date range.
	if created := email.CreatedAt.Time; !created.IsZero() {
		if !m.from.IsZero() && created.Before(m.from) {
			return false
		}

		if !m.until.IsZero() && !created.Before(m.until) {
			return false
		}
	}

	return true
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
