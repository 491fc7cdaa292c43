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
	"sync"
	"time"
)

type fakeTimer struct {
	duration time.Duration
	fn       func()
	stopped  bool
	fired    bool
}

// fire runs the timer function as if the timer elapsed. Stopped timers do
// not fire.
func (t *fakeTimer) fire() {
	if !t.stopped && !t.fired {
		t.fired = true
		t.fn()
	}
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (f *fakeScheduler) schedule(d time.Duration, fn func()) func() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	timer := &fakeTimer{duration: d, fn: fn}
	f.timers = append(f.timers, timer)

	return func() bool {
		if timer.stopped || timer.fired {
			return false
		}

		timer.stopped = true
		return true
	}
}

func (f *fakeScheduler) timer(i int) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.timers[i]
}

func (f *fakeScheduler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}
