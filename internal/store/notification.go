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

package store

import (
	"time"
)

// Kind is the severity of a notification.
type Kind string

const (
	// KindSuccess reports a completed action.
	KindSuccess Kind = "success"
	// KindError reports a failed action or fetch.
	KindError Kind = "error"
	// KindInfo is a neutral message.
	KindInfo Kind = "info"
)

// Notification is a transient message for the operator. At most one
// notification is live at a time.
type Notification struct {
	Message string
	Kind    Kind
}

// scheduleFunc runs f after d unless the returned stop function is called
// first.
type scheduleFunc func(d time.Duration, f func()) (stop func() bool)

func scheduleAfter(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Notify replaces the current notification and clears it after the
// configured lifetime. A pending clear of a previous notification is
// cancelled, so a newer notification always gets its full lifetime.
func (s *Store) Notify(message string, kind Kind) {
	s.mu.Lock()

	if s.stopTimer != nil {
		s.stopTimer()
	}

	s.generation++
	generation := s.generation

	s.notification = &Notification{Message: message, Kind: kind}
	s.stopTimer = s.schedule(s.lifetime, func() {
		s.expireNotification(generation)
	})

	s.mu.Unlock()
	s.publish(EventNotification)
}

func (s *Store) expireNotification(generation uint64) {
	s.mu.Lock()

	if generation != s.generation || s.notification == nil {
		s.mu.Unlock()
		return
	}

	s.notification = nil
	s.stopTimer = nil

	s.mu.Unlock()
	s.publish(EventNotification)
}

// Notification returns the live notification.
func (s *Store) Notification() (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.notification == nil {
		return Notification{}, false
	}

	return *s.notification, true
}
