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

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/models"
)

// Client is the set of REST operations the console performs against the
// backend. Errors are returned unmodified, nothing is retried.
type Client interface {
	// SendEmail creates an email and lets the backend attempt delivery.
	SendEmail(context.Context, models.SendEmailRequest) (*models.SendResult, error)
	// RetryEmail re-attempts the delivery of a failed email.
	RetryEmail(context.Context, string) (*models.SendResult, error)
	// GetAllEmails returns every email known to the backend.
	GetAllEmails(context.Context) ([]models.Email, error)
	// GetEmailByID returns a single email.
	GetEmailByID(context.Context, string) (*models.Email, error)

	// CreateTemplate stores a new template.
	CreateTemplate(context.Context, models.TemplateFields) (*models.Template, error)
	// GetAllTemplates returns every template.
	GetAllTemplates(context.Context) ([]models.Template, error)
	// GetTemplateByID returns a single template.
	GetTemplateByID(context.Context, string) (*models.Template, error)
	// UpdateTemplate replaces all fields of an existing template.
	UpdateTemplate(context.Context, string, models.TemplateFields) (*models.Template, error)
	// DeleteTemplate removes a template.
	DeleteTemplate(context.Context, string) error

	// GetStatistics returns the aggregate email statistics.
	GetStatistics(context.Context) (*models.Statistics, error)
}

type client struct {
	baseURL     string
	http        *http.Client
	credentials credentials
}

// NewClient creates a Client for the backend at opts.BaseURL. The password
// file, if configured, is read from fs.
func NewClient(fs afero.Fs, opts Options) (Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", opts.BaseURL, err)
	}

	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", opts.BaseURL)
	}

	creds, err := loadCredentials(fs, opts)
	if err != nil {
		return nil, err
	}

	return &client{
		baseURL:     strings.TrimRight(base.String(), "/"),
		http:        new(http.Client),
		credentials: creds,
	}, nil
}

func (c *client) SendEmail(ctx context.Context, req models.SendEmailRequest) (*models.SendResult, error) {
	var result models.SendResult

	if err := c.do(ctx, http.MethodPost, "/emails/send", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *client) RetryEmail(ctx context.Context, id string) (*models.SendResult, error) {
	var result models.SendResult

	if err := c.do(ctx, http.MethodPost, "/emails/"+url.PathEscape(id)+"/retry", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *client) GetAllEmails(ctx context.Context) ([]models.Email, error) {
	var emails []models.Email

	if err := c.do(ctx, http.MethodGet, "/emails", nil, &emails); err != nil {
		return nil, err
	}

	return emails, nil
}

func (c *client) GetEmailByID(ctx context.Context, id string) (*models.Email, error) {
	var email models.Email

	if err := c.do(ctx, http.MethodGet, "/emails/"+url.PathEscape(id), nil, &email); err != nil {
		return nil, err
	}

	return &email, nil
}

func (c *client) CreateTemplate(ctx context.Context, fields models.TemplateFields) (*models.Template, error) {
	var template models.Template

	if err := c.do(ctx, http.MethodPost, "/templates", fields, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *client) GetAllTemplates(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template

	if err := c.do(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, err
	}

	return templates, nil
}

func (c *client) GetTemplateByID(ctx context.Context, id string) (*models.Template, error) {
	var template models.Template

	if err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id), nil, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *client) UpdateTemplate(ctx context.Context, id string, fields models.TemplateFields) (*models.Template, error) {
	var template models.Template

	if err := c.do(ctx, http.MethodPut, "/templates/"+url.PathEscape(id), fields, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/templates/"+url.PathEscape(id), nil, nil)
}

func (c *client) GetStatistics(ctx context.Context) (*models.Statistics, error) {
	var statistics models.Statistics

	if err := c.do(ctx, http.MethodGet, "/reports/emails/statistics", nil, &statistics); err != nil {
		return nil, err
	}

	return &statistics, nil
}

// do performs a single request. in is encoded as json body if not nil, the
// response body is decoded into out if not nil and not empty.
func (c *client) do(ctx context.Context, method, path string, in, out interface{}) error {
	requestID := uuid.NewString()
	ctx = log.WithRequest(ctx, requestID)

	var body io.Reader

	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}

		log.TraceContext(ctx).
			Str("method", method).
			Str("path", path).
			RawJSON("body", encoded).
			Msg("api request body")

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	c.credentials.apply(req)

	start := time.Now()

	res, err := c.http.Do(req)
	if err != nil {
		log.DebugContext(ctx).
			Str("method", method).
			Str("path", path).
			Err(err).
			Msg("api request failed")

		return err
	}

	defer res.Body.Close()

	log.DebugContext(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request completed")

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: res.StatusCode,
			Body:       string(content),
		}
	}

	if out == nil || len(bytes.TrimSpace(content)) == 0 {
		return nil
	}

	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("could not decode response of %s %s: %w", method, path, err)
	}

	return nil
}
