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
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"

	"github.com/lukasdietrich/briefdesk/internal/log"
)

var (
	errMissingPassword = errors.New("api: username configured without password")
	errMissingUsername = errors.New("api: password configured without username")
)

type credentials interface {
	apply(*http.Request)
}

type noCredentials struct{}

func (noCredentials) apply(*http.Request) {}

type basicAuth struct {
	username string
	password string
}

func (b basicAuth) apply(r *http.Request) {
	r.SetBasicAuth(b.username, b.password)
}

type bearerToken string

func (b bearerToken) apply(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+string(b))
}

// loadCredentials resolves the configured credentials. Secrets are never
// compiled in, they come from the configuration or a file next to it.
func loadCredentials(fs afero.Fs, opts Options) (credentials, error) {
	if opts.Token != "" {
		warnExpiredToken(opts.Token, time.Now())
		return bearerToken(opts.Token), nil
	}

	password := opts.Password

	if opts.PasswordFile != "" {
		content, err := afero.ReadFile(fs, opts.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("could not read password file %q: %w", opts.PasswordFile, err)
		}

		password = strings.TrimRight(string(content), "\r\n")
	}

	switch {
	case opts.Username == "" && password == "":
		log.Warn().Msg("no api credentials configured, requests are sent anonymously")
		return noCredentials{}, nil

	case opts.Username == "":
		return nil, errMissingUsername

	case password == "":
		return nil, errMissingPassword
	}

	return basicAuth{username: opts.Username, password: password}, nil
}

// tokenExpiry returns the expiry of a JWT bearer token. Opaque tokens and
// tokens without an "exp" claim report ok=false.
func tokenExpiry(token string) (expiresAt time.Time, ok bool) {
	var claims jwt.RegisteredClaims

	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

func warnExpiredToken(token string, now time.Time) bool {
	expiresAt, ok := tokenExpiry(token)
	if ok && expiresAt.Before(now) {
		log.Warn().
			Time("expiresAt", expiresAt).
			Msg("configured api token has expired, requests will likely be rejected")

		return true
	}

	return false
}
