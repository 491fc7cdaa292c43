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

package twin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/briefdesk/internal/models"
)

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

type RouterTestSuite struct {
	suite.Suite

	backend *Backend
	handler http.Handler
}

func (s *RouterTestSuite) SetupTest() {
	s.backend = NewBackend(Options{
		Username:      "operator",
		Password:      "secret",
		FailingDomain: "fail.example",
	})
	s.backend.clock = func() time.Time {
		return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	}
	s.handler = s.backend.Handler()
}

func (s *RouterTestSuite) request(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if authenticated {
		req.SetBasicAuth("operator", "secret")
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func (s *RouterTestSuite) TestRejectsMissingCredentials() {
	rec := s.request(http.MethodGet, "/api/emails", "", false)
	s.Assert().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestListEmailsEmpty() {
	rec := s.request(http.MethodGet, "/api/emails", "", true)
	s.Assert().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq("[]", rec.Body.String())
}

func (s *RouterTestSuite) TestSendEmail() {
	rec := s.request(http.MethodPost, "/api/emails/send",
		`{"recipient":"someone@example.com","subject":"Hi","body":"Hello"}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	emails := s.backend.Emails()
	s.Require().Len(emails, 1)
	s.Assert().Equal(models.StatusSent, emails[0].Status)
	s.Assert().Equal("someone@example.com", emails[0].RecipientEmail)
	s.Assert().Contains(rec.Body.String(), emails[0].ID)
}

func (s *RouterTestSuite) TestSendEmailMissingField() {
	rec := s.request(http.MethodPost, "/api/emails/send", `{"recipient":"someone@example.com"}`, true)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Empty(s.backend.Emails())
}

func (s *RouterTestSuite) TestSendEmailToFailingDomain() {
	rec := s.request(http.MethodPost, "/api/emails/send",
		`{"recipient":"someone@fail.example","subject":"Hi","body":"Hello"}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Body.String(), "\"status\":\"FAILED\"")

	emails := s.backend.Emails()
	s.Require().Len(emails, 1)
	s.Assert().Equal(models.StatusFailed, emails[0].Status)
	s.Assert().Equal("mailbox unavailable", emails[0].ErrorMessage)
}

func (s *RouterTestSuite) TestRetryEmail() {
	s.backend.Seed([]models.Email{
		{ID: "e1", RecipientEmail: "someone@fail.example", Status: models.StatusFailed},
	}, nil)
	s.backend.SetFailingDomain("")

	rec := s.request(http.MethodPost, "/api/emails/e1/retry", "", true)
	s.Require().Equal(http.StatusOK, rec.Code)

	emails := s.backend.Emails()
	s.Require().Len(emails, 1)
	s.Assert().Equal(models.StatusSent, emails[0].Status)
	s.Assert().Equal(1, emails[0].RetryCount)
}

func (s *RouterTestSuite) TestRetryUnknownEmail() {
	rec := s.request(http.MethodPost, "/api/emails/unknown/retry", "", true)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestTemplateLifecycle() {
	rec := s.request(http.MethodPost, "/api/templates",
		`{"name":"Welcome","subject":"Hi","body":"Hello"}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)

	templates := s.backend.Templates()
	s.Require().Len(templates, 1)
	id := templates[0].ID

	rec = s.request(http.MethodPut, "/api/templates/"+id,
		`{"name":"Welcome","subject":"Hey","body":"Hello again"}`, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Equal("Hey", s.backend.Templates()[0].Subject)

	rec = s.request(http.MethodDelete, "/api/templates/"+id, "", true)
	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Assert().Empty(s.backend.Templates())

	rec = s.request(http.MethodGet, "/api/templates/"+id, "", true)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestStatistics() {
	s.backend.Seed([]models.Email{
		{ID: "e1", Status: models.StatusSent},
		{ID: "e2", Status: models.StatusSent},
		{ID: "e3", Status: models.StatusFailed},
		{ID: "e4", Status: models.StatusQueued},
	}, nil)

	rec := s.request(http.MethodGet, "/api/reports/emails/statistics", "", true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(
		`{"totalSent":2,"totalFailed":1,"totalQueued":1,"totalEmails":4,"successRate":50}`,
		rec.Body.String())
}
