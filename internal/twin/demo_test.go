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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

func TestDemoData(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)
	emails, templates := DemoData(now)

	assert.Len(t, templates, 2)
	assert.NotEmpty(t, emails)

	var failed int

	for _, email := range emails {
		assert.False(t, email.CreatedAt.After(now), "email created in the future")
		assert.True(t, email.CreatedAt.After(now.AddDate(0, 0, -7)), "email older than a week")

		if email.Status == models.StatusFailed {
			failed++
			assert.Equal(t, "dave@fail.example", email.RecipientEmail)
		}
	}

	assert.Positive(t, failed)
}

func TestNewBackendWithDemo(t *testing.T) {
	backend := NewBackend(Options{Demo: true})

	assert.NotEmpty(t, backend.Emails())
	assert.Len(t, backend.Templates(), 2)

	for _, email := range backend.Emails() {
		assert.NotEmpty(t, email.ID)
	}
}
