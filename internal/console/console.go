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

// Package console implements the operator actions of briefdesk. Every action
// validates its input locally, performs exactly one backend call, reports the
// outcome as a store notification and refreshes the affected collection.
package console

import (
	"context"
	"sync"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/briefdesk/internal/api"
	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/store"
)

func init() {
	viper.SetDefault("console.testrecipient", "test@example.com")
	viper.SetDefault("console.dashboard.trenddays", 7)
	viper.SetDefault("console.dashboard.recent", 5)
}

// Options configure the console actions.
type Options struct {
	TestRecipient string
	TrendDays     int
	RecentEmails  int
}

// OptionsFromViper reads the console options from viper.
//
// `console.testrecipient` is the address test emails are sent to.
// `console.dashboard.trenddays` is the number of days shown in the trend.
// `console.dashboard.recent` is the number of recent emails on the dashboard.
func OptionsFromViper() Options {
	return Options{
		TestRecipient: viper.GetString("console.testrecipient"),
		TrendDays:     viper.GetInt("console.dashboard.trenddays"),
		RecentEmails:  viper.GetInt("console.dashboard.recent"),
	}
}

// Console performs operator actions against the backend and keeps the store
// in sync afterwards.
type Console struct {
	client api.Client
	store  *store.Store
	opts   Options

	retrying progressSet
	deleting progressSet
}

// NewConsole creates a new Console.
func NewConsole(client api.Client, store *store.Store, opts Options) *Console {
	return &Console{
		client: client,
		store:  store,
		opts:   opts,
	}
}

// Store returns the store the console refreshes after each action.
func (c *Console) Store() *store.Store {
	return c.store
}

// action describes the user visible outcome of a mutation.
type action struct {
	name    string
	success string
	failure string
	refresh func(context.Context)
}

// perform runs call as a single mutation. The in-progress marker is held for
// the duration of the call and released in every case.
func (c *Console) perform(ctx context.Context, busy *progress, a action, call func(context.Context) error) error {
	if !busy.begin() {
		return ErrInProgress
	}

	defer busy.end()

	if err := call(ctx); err != nil {
		log.DebugContext(ctx).
			Str("action", a.name).
			Err(err).
			Msg("action failed")

		if api.IsUnauthorized(err) {
			log.WarnContext(ctx).
				Str("action", a.name).
				Msg(api.MsgCheckCredentials)
		}

		c.store.Notify(a.failure, store.KindError)
		return &ActionError{Action: a.name, Err: err}
	}

	log.InfoContext(ctx).
		Str("action", a.name).
		Msg("action succeeded")

	c.store.Notify(a.success, store.KindSuccess)

	if a.refresh != nil {
		a.refresh(ctx)
	}

	return nil
}

// reject reports a validation failure without touching the network.
func (c *Console) reject(message string, fields ...string) error {
	c.store.Notify(message, store.KindError)
	return &ValidationError{Message: message, Fields: fields}
}

// progress marks a single control as busy.
type progress struct {
	mu     sync.Mutex
	active bool
}

func (p *progress) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		return false
	}

	p.active = true
	return true
}

func (p *progress) end() {
	p.mu.Lock()
	p.active = false
	p.mu.Unlock()
}

// Active reports whether the control is busy.
func (p *progress) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.active
}

// progressSet tracks busy controls per entity id.
type progressSet struct {
	mu     sync.Mutex
	active map[string]*progress
}

func (s *progressSet) get(id string) *progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		s.active = make(map[string]*progress)
	}

	p, ok := s.active[id]
	if !ok {
		p = new(progress)
		s.active[id] = p
	}

	return p
}

func (s *progressSet) Active(id string) bool {
	s.mu.Lock()
	p, ok := s.active[id]
	s.mu.Unlock()

	return ok && p.Active()
}
