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
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/briefdesk/internal/api"
	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/models"

	mocks "github.com/lukasdietrich/briefdesk/internal/mocks/api"
)

func TestOptionsFromViper(t *testing.T) {
	viper.Set("store.notification.lifetime", "5s")

	assert.Equal(t, Options{NotificationLifetime: 5 * time.Second}, OptionsFromViper())
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite

	ctx       context.Context
	client    *mocks.Client
	scheduler *fakeScheduler
	store     *Store

	eventsMu sync.Mutex
	events   []Event
	loading  []Loading
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client = new(mocks.Client)
	s.scheduler = new(fakeScheduler)

	s.store = NewStore(s.client, Options{NotificationLifetime: 3 * time.Second})
	s.store.schedule = s.scheduler.schedule

	s.events = nil
	s.loading = nil
	s.store.Subscribe(func(event Event) {
		s.eventsMu.Lock()
		defer s.eventsMu.Unlock()

		s.events = append(s.events, event)
		if event == EventLoading {
			s.loading = append(s.loading, s.store.Loading())
		}
	})
}

func (s *StoreTestSuite) TearDownTest() {
	s.client.AssertExpectations(s.T())
}

func (s *StoreTestSuite) TestFetchEmails() {
	emails := []models.Email{
		{ID: "e1", Status: models.StatusSent},
		{ID: "e2", Status: models.StatusFailed},
	}

	s.client.On("GetAllEmails", mock.Anything).Return(emails, nil).Once()

	s.store.FetchEmails(s.ctx)

	s.Assert().Equal(emails, s.store.Emails())
	s.Assert().Equal([]Loading{{Emails: true}, {}}, s.loading)
	s.Assert().Equal([]Event{EventLoading, EventEmails, EventLoading}, s.events)

	_, ok := s.store.Notification()
	s.Assert().False(ok)
}

func (s *StoreTestSuite) TestFetchEmailsFailureKeepsCache() {
	emails := []models.Email{{ID: "e1", Status: models.StatusSent}}

	s.client.On("GetAllEmails", mock.Anything).Return(emails, nil).Once()
	s.client.On("GetAllEmails", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	s.store.FetchEmails(s.ctx)
	s.store.FetchEmails(s.ctx)

	s.Assert().Equal(emails, s.store.Emails())
	s.Assert().False(s.store.Loading().Emails)

	notification, ok := s.store.Notification()
	s.Assert().True(ok)
	s.Assert().Equal(Notification{Message: "Failed to load emails", Kind: KindError}, notification)
}

func (s *StoreTestSuite) TestFetchWithRejectedCredentials() {
	var buffer bytes.Buffer

	previous := log.Logger
	log.Logger = zerolog.New(&buffer).Level(zerolog.TraceLevel)
	defer func() { log.Logger = previous }()

	rejected := &api.StatusError{
		Method:     http.MethodGet,
		Path:       "/emails",
		StatusCode: http.StatusForbidden,
	}
	s.client.On("GetAllEmails", mock.Anything).Return(nil, rejected).Once()

	s.store.FetchEmails(s.ctx)

	s.Assert().Contains(buffer.String(), api.MsgCheckCredentials)
	s.Assert().Contains(buffer.String(), "store changed")

	notification, _ := s.store.Notification()
	s.Assert().Equal(Notification{Message: "Failed to load emails", Kind: KindError}, notification)
}

func (s *StoreTestSuite) TestFetchTemplates() {
	templates := []models.Template{{ID: "t1", Name: "Welcome", Subject: "Hi", Body: "Hello"}}

	s.client.On("GetAllTemplates", mock.Anything).Return(templates, nil).Once()

	s.store.FetchTemplates(s.ctx)

	s.Assert().Equal(templates, s.store.Templates())
	s.Assert().Equal([]Loading{{Templates: true}, {}}, s.loading)

	template, ok := s.store.Template("t1")
	s.Assert().True(ok)
	s.Assert().Equal("Welcome", template.Name)

	_, ok = s.store.Template("t2")
	s.Assert().False(ok)
}

func (s *StoreTestSuite) TestFetchTemplatesFailure() {
	s.client.On("GetAllTemplates", mock.Anything).Return(nil, errors.New("err")).Once()

	s.store.FetchTemplates(s.ctx)

	s.Assert().Empty(s.store.Templates())
	s.Assert().False(s.store.Loading().Templates)

	notification, _ := s.store.Notification()
	s.Assert().Equal(Notification{Message: "Failed to load templates", Kind: KindError}, notification)
}

func (s *StoreTestSuite) TestFetchStatistics() {
	stats := &models.Statistics{TotalSent: 3, TotalFailed: 1, TotalEmails: 4, SuccessRate: 75}

	s.client.On("GetStatistics", mock.Anything).Return(stats, nil).Once()

	_, ok := s.store.Statistics()
	s.Assert().False(ok)

	s.store.FetchStatistics(s.ctx)

	actual, ok := s.store.Statistics()
	s.Assert().True(ok)
	s.Assert().Equal(*stats, actual)
	s.Assert().Equal([]Loading{{Stats: true}, {}}, s.loading)
}

func (s *StoreTestSuite) TestFetchStatisticsFailure() {
	s.client.On("GetStatistics", mock.Anything).Return(nil, errors.New("err")).Once()

	s.store.FetchStatistics(s.ctx)

	_, ok := s.store.Statistics()
	s.Assert().False(ok)

	notification, _ := s.store.Notification()
	s.Assert().Equal(Notification{Message: "Failed to load statistics", Kind: KindError}, notification)
}

func (s *StoreTestSuite) TestInit() {
	s.client.On("GetAllEmails", mock.Anything).Return([]models.Email{{ID: "e1"}}, nil).Once()
	s.client.On("GetAllTemplates", mock.Anything).Return([]models.Template{{ID: "t1"}}, nil).Once()
	s.client.On("GetStatistics", mock.Anything).Return(&models.Statistics{TotalEmails: 1}, nil).Once()

	s.store.Init(s.ctx)

	s.Assert().Len(s.store.Emails(), 1)
	s.Assert().Len(s.store.Templates(), 1)
	s.Assert().Equal(Loading{}, s.store.Loading())

	stats, ok := s.store.Statistics()
	s.Assert().True(ok)
	s.Assert().EqualValues(1, stats.TotalEmails)
}

func (s *StoreTestSuite) TestInitPartialFailure() {
	s.client.On("GetAllEmails", mock.Anything).Return(nil, errors.New("err")).Once()
	s.client.On("GetAllTemplates", mock.Anything).Return([]models.Template{{ID: "t1"}}, nil).Once()
	s.client.On("GetStatistics", mock.Anything).Return(&models.Statistics{}, nil).Once()

	s.store.Init(s.ctx)

	s.Assert().Empty(s.store.Emails())
	s.Assert().Len(s.store.Templates(), 1)
	s.Assert().Equal(Loading{}, s.store.Loading())

	notification, ok := s.store.Notification()
	s.Assert().True(ok)
	s.Assert().Equal("Failed to load emails", notification.Message)
}

func (s *StoreTestSuite) TestAccessorsReturnCopies() {
	s.client.On("GetAllEmails", mock.Anything).Return([]models.Email{{ID: "e1", Subject: "original"}}, nil).Once()

	s.store.FetchEmails(s.ctx)

	emails := s.store.Emails()
	emails[0].Subject = "changed"

	email, ok := s.store.Email("e1")
	s.Assert().True(ok)
	s.Assert().Equal("original", email.Subject)
}

func (s *StoreTestSuite) TestNotifyExpires() {
	s.store.Notify("Email sent successfully!", KindSuccess)

	notification, ok := s.store.Notification()
	s.Require().True(ok)
	s.Assert().Equal(Notification{Message: "Email sent successfully!", Kind: KindSuccess}, notification)

	s.Require().Equal(1, s.scheduler.count())
	s.Assert().Equal(3*time.Second, s.scheduler.timer(0).duration)

	s.scheduler.timer(0).fire()

	_, ok = s.store.Notification()
	s.Assert().False(ok)
	s.Assert().Equal([]Event{EventNotification, EventNotification}, s.events)
}

func (s *StoreTestSuite) TestNotifyReplacesPending() {
	s.store.Notify("first", KindInfo)
	s.store.Notify("second", KindError)

	s.Require().Equal(2, s.scheduler.count())
	s.Assert().True(s.scheduler.timer(0).stopped)

	notification, ok := s.store.Notification()
	s.Require().True(ok)
	s.Assert().Equal(Notification{Message: "second", Kind: KindError}, notification)

	s.scheduler.timer(1).fire()

	_, ok = s.store.Notification()
	s.Assert().False(ok)
}

func (s *StoreTestSuite) TestStaleTimerDoesNotClearNewerNotification() {
	s.store.Notify("first", KindInfo)
	stale := s.scheduler.timer(0).fn

	s.store.Notify("second", KindSuccess)

	// the first timer elapsed before it could be stopped
	stale()

	notification, ok := s.store.Notification()
	s.Require().True(ok)
	s.Assert().Equal("second", notification.Message)
}

func (s *StoreTestSuite) TestUnsubscribe() {
	var calls int

	unsubscribe := s.store.Subscribe(func(Event) { calls++ })
	s.store.Notify("one", KindInfo)
	unsubscribe()
	s.store.Notify("two", KindInfo)

	s.Assert().Equal(1, calls)
}

func TestNotifyWithRealTimer(t *testing.T) {
	store := NewStore(new(mocks.Client), Options{NotificationLifetime: 10 * time.Millisecond})
	store.Notify("short lived", KindInfo)

	_, ok := store.Notification()
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := store.Notification()
		return !ok
	}, time.Second, 5*time.Millisecond)
}
