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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInProgress is returned when an action is triggered while the same
	// control is still busy.
	ErrInProgress = errors.New("console: action already in progress")
	// ErrNotRetryable is returned for retries of emails that did not fail.
	ErrNotRetryable = errors.New("console: only failed emails can be retried")
	// ErrUnknownTemplate is returned for template ids missing from the store.
	ErrUnknownTemplate = errors.New("console: unknown template")
)

// ValidationError is returned when required input is missing or malformed.
// No backend call has been made.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

// ActionError wraps the backend error of a failed action.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Notified reports whether err has already been shown to the operator as a
// notification.
func Notified(err error) bool {
	var (
		validationErr *ValidationError
		actionErr     *ActionError
	)

	return errors.As(err, &validationErr) || errors.As(err, &actionErr)
}
