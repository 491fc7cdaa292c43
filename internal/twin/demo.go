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
	"fmt"
	"time"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

var demoRecipients = []string{
	"alice@example.com",
	"bob@example.com",
	"carol@example.org",
	"dave@fail.example",
}

// DemoData returns a week of sample emails ending at now and a few templates.
// Every fourth email is addressed to the failing domain and failed.
func DemoData(now time.Time) ([]models.Email, []models.Template) {
	now = now.UTC()
	created := now.AddDate(0, 0, -7)

	templates := []models.Template{
		{
			Name:      "Welcome",
			Subject:   "Welcome aboard",
			Body:      "Hi,\n\nthanks for signing up.",
			CreatedAt: models.NewTimestamp(created),
			UpdatedAt: models.NewTimestamp(created),
		},
		{
			Name:      "Password reset",
			Subject:   "Reset your password",
			Body:      "Follow the link to choose a new password.",
			CreatedAt: models.NewTimestamp(created),
			UpdatedAt: models.NewTimestamp(created.Add(time.Hour)),
		},
	}

	var emails []models.Email

	for day := 6; day >= 0; day-- {
		for i, recipient := range demoRecipients[:1+day%len(demoRecipients)] {
			at := now.AddDate(0, 0, -day).Add(-time.Duration(i) * time.Hour)

			email := models.Email{
				RecipientEmail: recipient,
				Subject:        fmt.Sprintf("Weekly digest #%d", 7-day),
				Body:           "Here is what happened this week.",
				CreatedAt:      models.NewTimestamp(at),
			}

			switch {
			case i == 3:
				email.Status = models.StatusFailed
				email.ErrorMessage = "mailbox unavailable"
			case day == 2 && i == 2:
				email.Status = models.StatusQueued
			default:
				email.Status = models.StatusSent
				email.SentAt = models.NewTimestamp(at.Add(time.Minute))
			}

			emails = append(emails, email)
		}
	}

	return emails, templates
}
