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
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lukasdietrich/briefdesk/internal/console"
	"github.com/lukasdietrich/briefdesk/internal/models"
	"github.com/lukasdietrich/briefdesk/internal/store"
)

const (
	timeLayout    = "2006-01-02 15:04"
	dayLayout     = "2006-01-02"
	maxCellLength = 40
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printNotification(w io.Writer, notification store.Notification) {
	fmt.Fprintf(w, "\n%s:\n  %s\n\n", strings.ToUpper(string(notification.Kind)), notification.Message)
}

func renderEmails(w io.Writer, emails []models.Email) {
	if len(emails) == 0 {
		fmt.Fprintln(w, "\n  No emails.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "  CREATED\tSTATUS\tRETRIES\tRECIPIENT\tSUBJECT")

	for _, email := range emails {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\t%s\n",
			formatTimestamp(email.CreatedAt),
			email.Status,
			email.RetryCount,
			truncate(email.RecipientEmail),
			truncate(email.Subject))
	}

	tw.Flush()
	fmt.Fprintln(w)
}

func renderEmail(w io.Writer, email models.Email) {
	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintf(tw, "  ID:\t%s\n", email.ID)
	fmt.Fprintf(tw, "  Recipient:\t%s\n", email.RecipientEmail)
	fmt.Fprintf(tw, "  Subject:\t%s\n", email.Subject)
	fmt.Fprintf(tw, "  Status:\t%s\n", email.Status)
	fmt.Fprintf(tw, "  Retries:\t%d\n", email.RetryCount)
	fmt.Fprintf(tw, "  Created:\t%s\n", formatTimestamp(email.CreatedAt))
	fmt.Fprintf(tw, "  Sent:\t%s\n", formatTimestamp(email.SentAt))

	if email.ErrorMessage != "" {
		fmt.Fprintf(tw, "  Error:\t%s\n", email.ErrorMessage)
	}

	tw.Flush()

	fmt.Fprintln(w)
	for _, line := range strings.Split(email.Body, "\n") {
		fmt.Fprintf(w, "  | %s\n", line)
	}

	fmt.Fprintln(w)
}

func renderTemplates(w io.Writer, templates []models.Template) {
	if len(templates) == 0 {
		fmt.Fprintln(w, "\n  No templates.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w)

	tw := newTable(w)
	fmt.Fprintln(tw, "  NAME\tSUBJECT\tUPDATED")

	for _, template := range templates {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n",
			truncate(template.Name),
			truncate(template.Subject),
			formatTimestamp(template.UpdatedAt))
	}

	tw.Flush()
	fmt.Fprintln(w)
}

func renderStatistics(w io.Writer, statistics models.Statistics, ok bool) {
	fmt.Fprintln(w)

	if !ok {
		fmt.Fprintln(w, "  No statistics loaded.")
		fmt.Fprintln(w)
		return
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "  Total:\t%d\n", statistics.TotalEmails)
	fmt.Fprintf(tw, "  Sent:\t%d\n", statistics.TotalSent)
	fmt.Fprintf(tw, "  Failed:\t%d\n", statistics.TotalFailed)
	fmt.Fprintf(tw, "  Queued:\t%d\n", statistics.TotalQueued)
	fmt.Fprintf(tw, "  Success rate:\t%.1f%%\n", statistics.SuccessRate)
	tw.Flush()

	fmt.Fprintln(w)
}

func renderDashboard(w io.Writer, dashboard console.Dashboard) {
	if loading := dashboard.Loading; loading.Emails || loading.Templates || loading.Stats {
		fmt.Fprintln(w, "\n  Loading...")
	}

	renderStatistics(w, dashboard.Statistics, dashboard.HasStatistics)

	if len(dashboard.Statuses) > 0 {
		tw := newTable(w)
		fmt.Fprintln(tw, "  STATUS\tEMAILS")

		for _, count := range dashboard.Statuses {
			fmt.Fprintf(tw, "  %s\t%d\n", count.Status, count.Count)
		}

		tw.Flush()
		fmt.Fprintln(w)
	}

	if len(dashboard.Trend) > 0 {
		tw := newTable(w)
		fmt.Fprintln(tw, "  DAY\tSENT\tFAILED\tOTHER")

		for _, point := range dashboard.Trend {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\n", point.Day.Format(dayLayout), point.Sent, point.Failed, point.Other)
		}

		tw.Flush()
	}

	if len(dashboard.Recent) > 0 {
		renderEmails(w, dashboard.Recent)
	} else {
		fmt.Fprintln(w)
	}
}

func formatTimestamp(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}

	return t.Local().Format(timeLayout)
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxCellLength {
		return s
	}

	return string(runes[:maxCellLength-3]) + "..."
}
