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
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromViper(t *testing.T) {
	viper.Set("api.baseurl", "https://mail.example.com/api")
	viper.Set("api.auth.username", "operator")
	viper.Set("api.auth.password", "secret")
	viper.Set("api.auth.passwordfile", "/run/secrets/api")
	viper.Set("api.auth.token", "token")

	expected := Options{
		BaseURL:      "https://mail.example.com/api",
		Username:     "operator",
		Password:     "secret",
		PasswordFile: "/run/secrets/api",
		Token:        "token",
	}
	assert.Equal(t, expected, OptionsFromViper())
}

func TestLoadCredentialsBasic(t *testing.T) {
	creds, err := loadCredentials(afero.NewMemMapFs(), Options{Username: "operator", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, basicAuth{username: "operator", password: "secret"}, creds)

	req, _ := http.NewRequest(http.MethodGet, "http://localhost/", nil)
	creds.apply(req)

	username, password, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "operator", username)
	assert.Equal(t, "secret", password)
}

func TestLoadCredentialsPasswordFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/secrets/api", []byte("from-file\n"), 0600))

	creds, err := loadCredentials(fs, Options{
		Username:     "operator",
		Password:     "ignored",
		PasswordFile: "/secrets/api",
	})
	require.NoError(t, err)
	assert.Equal(t, basicAuth{username: "operator", password: "from-file"}, creds)
}

func TestLoadCredentialsMissingPasswordFile(t *testing.T) {
	creds, err := loadCredentials(afero.NewMemMapFs(), Options{
		Username:     "operator",
		PasswordFile: "/secrets/missing",
	})
	assert.Nil(t, creds)
	assert.Error(t, err)
}

func TestLoadCredentialsIncomplete(t *testing.T) {
	_, err := loadCredentials(afero.NewMemMapFs(), Options{Username: "operator"})
	assert.Equal(t, errMissingPassword, err)

	_, err = loadCredentials(afero.NewMemMapFs(), Options{Password: "secret"})
	assert.Equal(t, errMissingUsername, err)
}

func TestLoadCredentialsAnonymous(t *testing.T) {
	creds, err := loadCredentials(afero.NewMemMapFs(), Options{})
	require.NoError(t, err)
	assert.Equal(t, noCredentials{}, creds)
}

func TestLoadCredentialsTokenPrecedence(t *testing.T) {
	creds, err := loadCredentials(afero.NewMemMapFs(), Options{
		Username: "operator",
		Password: "secret",
		Token:    "token",
	})
	require.NoError(t, err)
	assert.Equal(t, bearerToken("token"), creds)
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("key"))
	require.NoError(t, err)

	actual, ok := tokenExpiry(token)
	assert.True(t, ok)
	assert.True(t, expiresAt.Equal(actual))

	assert.True(t, warnExpiredToken(token, expiresAt.Add(time.Minute)))
	assert.False(t, warnExpiredToken(token, expiresAt.Add(-time.Minute)))
}

func TestTokenExpiryOpaque(t *testing.T) {
	_, ok := tokenExpiry("not-a-jwt")
	assert.False(t, ok)
	assert.False(t, warnExpiredToken("not-a-jwt", time.Now()))
}
