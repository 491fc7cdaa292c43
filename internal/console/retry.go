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

	"github.com/lukasdietrich/briefdesk/internal/models"
)

const (
	msgRetryInitiated = "Retry initiated!"
	msgRetryFailed    = "Retry failed"
)

// Retryable reports whether the operator may retry the email.
func Retryable(email models.Email) bool {
	return email.Status == models.StatusFailed
}

// Retry asks the backend to retry a failed email and refreshes the email log.
func (c *Console) Retry(ctx context.Context, email models.Email) error {
	if !Retryable(email) {
		return ErrNotRetryable
	}

	return c.perform(ctx, c.retrying.get(email.ID), action{
		name:    "retry email",
		success: msgRetryInitiated,
		failure: msgRetryFailed,
		refresh: c.store.FetchEmails,
	}, func(ctx context.Context) error {
		_, err := c.client.RetryEmail(ctx, email.ID)
		return err
	})
}

// Retrying reports whether a retry of the email is in flight.
func (c *Console) Retrying(id string) bool {
	return c.retrying.Active(id)
}
