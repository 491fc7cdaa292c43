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
	"sort"
	"time"

	"github.com/lukasdietrich/briefdesk/internal/models"
	"github.com/lukasdietrich/briefdesk/internal/store"
)

// StatusCount is the number of cached emails with a status.
type StatusCount struct {
	Status models.EmailStatus
	Count  int
}

// TrendPoint aggregates the emails created on a single day.
type TrendPoint struct {
	Day    time.Time
	Sent   int
	Failed int
	Other  int
}

// Total returns the number of emails created on the day.
func (p TrendPoint) Total() int {
	return p.Sent + p.Failed + p.Other
}

// Dashboard is a snapshot of the aggregates shown on the dashboard.
type Dashboard struct {
	Statistics    models.Statistics
	HasStatistics bool
	Statuses      []StatusCount
	Trend         []TrendPoint
	Recent        []models.Email
	Loading       store.Loading
}

// Dashboard builds the dashboard from the cached store state.
func (c *Console) Dashboard() Dashboard {
	emails := c.store.Emails()
	statistics, ok := c.store.Statistics()

	return Dashboard{
		Statistics:    statistics,
		HasStatistics: ok,
		Statuses:      StatusBreakdown(emails),
		Trend:         Trend(emails, c.opts.TrendDays),
		Recent:        Recent(emails, c.opts.RecentEmails),
		Loading:       c.store.Loading(),
	}
}

// StatusBreakdown counts the emails per known status. Statuses without
// emails are omitted.
func StatusBreakdown(emails []models.Email) []StatusCount {
	counts := make(map[models.EmailStatus]int)
	for _, email := range emails {
		counts[email.Status]++
	}

	var breakdown []StatusCount

	for _, status := range models.EmailStatuses {
		if n := counts[status]; n > 0 {
			breakdown = append(breakdown, StatusCount{Status: status, Count: n})
		}
	}

	return breakdown
}

// Trend groups the emails by the UTC day they were created on and returns
// the last days of the data in chronological order. Emails without a
// creation time are skipped.
func Trend(emails []models.Email, days int) []TrendPoint {
	points := make(map[time.Time]*TrendPoint)

	for _, email := range emails {
		if email.CreatedAt.IsZero() {
			continue
		}

		day := startOfDay(email.CreatedAt.UTC())

		point, ok := points[day]
		if !ok {
			point = &TrendPoint{Day: day}
			points[day] = point
		}

		switch email.Status {
		case models.StatusSent:
			point.Sent++
		case models.StatusFailed:
			point.Failed++
		default:
			point.Other++
		}
	}

	trend := make([]TrendPoint, 0, len(points))
	for _, point := range points {
		trend = append(trend, *point)
	}

	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Day.Before(trend[j].Day)
	})

	if days > 0 && len(trend) > days {
		trend = trend[len(trend)-days:]
	}

	return trend
}

// Recent returns up to n emails starting with the last one in the list.
func Recent(emails []models.Email, n int) []models.Email {
	if n > len(emails) || n < 0 {
		n = len(emails)
	}

	recent := make([]models.Email, 0, n)
	for i := len(emails) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, emails[i])
	}

	return recent
}
