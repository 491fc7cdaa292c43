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

package models

// EmailStatus is the delivery state of an email as reported by the backend.
type EmailStatus string

const (
	// StatusDraft is an email that has been stored but not queued.
	StatusDraft EmailStatus = "DRAFT"
	// StatusQueued is an email waiting for delivery.
	StatusQueued EmailStatus = "QUEUED"
	// StatusSent is an email accepted by the mail provider.
	StatusSent EmailStatus = "SENT"
	// StatusFailed is an email the backend could not deliver. Only failed
	// emails may be retried.
	StatusFailed EmailStatus = "FAILED"
)

// EmailStatuses lists all known statuses in display order.
var EmailStatuses = []EmailStatus{StatusSent, StatusFailed, StatusQueued, StatusDraft}

// Valid reports whether s is one of the known statuses.
func (s EmailStatus) Valid() bool {
	for _, known := range EmailStatuses {
		if s == known {
			return true
		}
	}

	return false
}

// Email is a single email owned by the backend.
type Email struct {
	ID             string      `json:"id"`
	RecipientEmail string      `json:"recipientEmail"`
	Subject        string      `json:"subject"`
	Body           string      `json:"body"`
	Status         EmailStatus `json:"status"`
	RetryCount     int         `json:"retryCount"`
	ErrorMessage   string      `json:"errorMessage,omitempty"`
	SentAt         Timestamp   `json:"sentAt"`
	CreatedAt      Timestamp   `json:"createdAt"`
}

// SendEmailRequest is the body of a send request.
type SendEmailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendResult is the backend's answer to send and retry requests.
type SendResult struct {
	ID      string      `json:"id"`
	Status  EmailStatus `json:"status"`
	Message string      `json:"message"`
}
