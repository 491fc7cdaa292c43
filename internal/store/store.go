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
	"context"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/briefdesk/internal/api"
	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/models"
)

func init() {
	viper.SetDefault("store.notification.lifetime", 3*time.Second)
}

const (
	msgFailedEmails     = "Failed to load emails"
	msgFailedTemplates  = "Failed to load templates"
	msgFailedStatistics = "Failed to load statistics"
)

// Event names the part of the store that changed.
type Event int

const (
	// EventEmails is published after the email list has been replaced.
	EventEmails Event = iota
	// EventTemplates is published after the template list has been replaced.
	EventTemplates
	// EventStatistics is published after new statistics have been stored.
	EventStatistics
	// EventLoading is published whenever a loading flag changes.
	EventLoading
	// EventNotification is published when a notification appears or expires.
	EventNotification
)

// Loading holds a flag per resource, that is set while a fetch is in flight.
type Loading struct {
	Emails    bool
	Templates bool
	Stats     bool
}

// Options configure the store.
type Options struct {
	NotificationLifetime time.Duration
}

// OptionsFromViper reads the store options from viper.
//
// `store.notification.lifetime` is the duration a notification stays visible.
func OptionsFromViper() Options {
	return Options{
		NotificationLifetime: viper.GetDuration("store.notification.lifetime"),
	}
}

// Store is the session-wide cache of backend data. It is the only place
// cached data is written, always by replacing a collection with the result of
// a successful fetch.
type Store struct {
	client   api.Client
	lifetime time.Duration
	schedule scheduleFunc

	mu           sync.RWMutex
	emails       []models.Email
	templates    []models.Template
	statistics   *models.Statistics
	loading      Loading
	notification *Notification
	generation   uint64
	stopTimer    func() bool

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// NewStore creates an empty store fetching from client.
func NewStore(client api.Client, opts Options) *Store {
	return &Store{
		client:      client,
		lifetime:    opts.NotificationLifetime,
		schedule:    scheduleAfter,
		subscribers: make(map[int]func(Event)),
	}
}

// Init fetches emails, templates and statistics in parallel and returns once
// all three fetches completed, in whatever order.
func (s *Store) Init(ctx context.Context) {
	var wg sync.WaitGroup

	for _, fetch := range []func(context.Context){
		s.FetchEmails,
		s.FetchTemplates,
		s.FetchStatistics,
	} {
		wg.Add(1)

		go func(fetch func(context.Context)) {
			defer wg.Done()
			fetch(ctx)
		}(fetch)
	}

	wg.Wait()
}

// FetchEmails replaces the cached email list.
func (s *Store) FetchEmails(ctx context.Context) {
	s.fetch(log.WithResource(ctx, "emails"), loadingEmails, msgFailedEmails,
		func(ctx context.Context) (Event, error) {
			emails, err := s.client.GetAllEmails(ctx)
			if err != nil {
				return 0, err
			}

			s.mu.Lock()
			s.emails = emails
			s.mu.Unlock()

			return EventEmails, nil
		})
}

// FetchTemplates replaces the cached template list.
func (s *Store) FetchTemplates(ctx context.Context) {
	s.fetch(log.WithResource(ctx, "templates"), loadingTemplates, msgFailedTemplates,
		func(ctx context.Context) (Event, error) {
			templates, err := s.client.GetAllTemplates(ctx)
			if err != nil {
				return 0, err
			}

			s.mu.Lock()
			s.templates = templates
			s.mu.Unlock()

			return EventTemplates, nil
		})
}

// FetchStatistics replaces the cached statistics.
func (s *Store) FetchStatistics(ctx context.Context) {
	s.fetch(log.WithResource(ctx, "statistics"), loadingStats, msgFailedStatistics,
		func(ctx context.Context) (Event, error) {
			statistics, err := s.client.GetStatistics(ctx)
			if err != nil {
				return 0, err
			}

			s.mu.Lock()
			s.statistics = statistics
			s.mu.Unlock()

			return EventStatistics, nil
		})
}

type loadingFlag func(*Loading) *bool

func loadingEmails(l *Loading) *bool    { return &l.Emails }
func loadingTemplates(l *Loading) *bool { return &l.Templates }
func loadingStats(l *Loading) *bool     { return &l.Stats }

// fetch wraps a single load with the loading flag and the error
// notification. A failed load leaves the cached value untouched.
func (s *Store) fetch(ctx context.Context, flag loadingFlag, failure string,
	load func(context.Context) (Event, error)) {

	s.setLoading(flag, true)
	defer s.setLoading(flag, false)

	event, err := load(ctx)
	if err != nil {
		log.WarnContext(ctx).
			Err(err).
			Msg("could not fetch resource")

		if api.IsUnauthorized(err) {
			log.WarnContext(ctx).Msg(api.MsgCheckCredentials)
		}

		s.Notify(failure, KindError)
		return
	}

	log.DebugContext(ctx).Msg("resource fetched")
	s.publish(event)
}

func (s *Store) setLoading(flag loadingFlag, value bool) {
	s.mu.Lock()
	*flag(&s.loading) = value
	s.mu.Unlock()

	s.publish(EventLoading)
}

// Loading returns the current loading flags.
func (s *Store) Loading() Loading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Emails returns a copy of the cached emails in backend order.
func (s *Store) Emails() []models.Email {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Email(nil), s.emails...)
}

// Email returns the cached email with the given id.
func (s *Store) Email(id string) (models.Email, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, email := range s.emails {
		if email.ID == id {
			return email, true
		}
	}

	return models.Email{}, false
}

// Templates returns a copy of the cached templates in backend order.
func (s *Store) Templates() []models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Template(nil), s.templates...)
}

// Template returns the cached template with the given id.
func (s *Store) Template(id string) (models.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, template := range s.templates {
		if template.ID == id {
			return template, true
		}
	}

	return models.Template{}, false
}

// Statistics returns the cached statistics. ok is false until the first
// successful fetch.
func (s *Store) Statistics() (statistics models.Statistics, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.statistics == nil {
		return models.Statistics{}, false
	}

	return *s.statistics, true
}

// Subscribe registers fn to be called after every change. fn runs on the
// goroutine that caused the change and must not block. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()

		delete(s.subscribers, id)
	}
}

func (s *Store) publish(event Event) {
	s.subMu.Lock()
	subscribers := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.subMu.Unlock()

	log.Trace().
		Int("event", int(event)).
		Int("subscribers", len(subscribers)).
		Msg("store changed")

	for _, fn := range subscribers {
		fn(event)
	}
}
