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

package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyAddress(t *testing.T) {
	addr, err := Parse("")
	assert.Equal(t, ErrInvalidAddressFormat, err)
	assert.Zero(t, addr)
}

func TestInvalidAddress(t *testing.T) {
	addr, err := Parse("no-at-sign")
	assert.Equal(t, ErrInvalidAddressFormat, err)
	assert.Zero(t, addr)
}

func TestTooLongAddress(t *testing.T) {
	for _, raw := range []string{
		longString(200) + "@" + longString(200),
		"@" + longString(256),
		longString(65) + "@",
		longString(64) + "@" + longString(192),
	} {
		addr, err := Parse(raw)
		assert.Equal(t, ErrPathTooLong, err)
		assert.Zero(t, addr)
	}
}

func TestParseRecipient(t *testing.T) {
	for raw, expected := range map[string]string{
		"someone@example.com":          "someone@example.com",
		"  someone@example.com\t":      "someone@example.com",
		"Some.One+tag@Example.com":     "Some.One+tag@example.com",
		"user@xn--mller-kva.example":   "user@müller.example",
		"\"quoted@local\"@example.com": "\"quoted@local\"@example.com",
	} {
		addr, err := ParseRecipient(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, expected, addr.String(), raw)
	}
}

func TestParseRecipientInvalid(t *testing.T) {
	for raw, expected := range map[string]error{
		"":                     ErrInvalidAddressFormat,
		"   ":                  ErrInvalidAddressFormat,
		"no-at-sign":           ErrInvalidAddressFormat,
		"@example.com":         ErrInvalidAddressFormat,
		"someone@":             ErrInvalidAddressFormat,
		"some one@example.com": ErrInvalidAddressFormat,
		"someone@exa_mple.com": ErrInvalidDomain,
	} {
		addr, err := ParseRecipient(raw)
		assert.Equal(t, expected, err, raw)
		assert.Zero(t, addr, raw)
	}
}

func TestAddressParts(t *testing.T) {
	addr, err := Parse("local@domain.example")
	assert.NoError(t, err)
	assert.Equal(t, "local", addr.LocalPart())
	assert.Equal(t, "domain.example", addr.Domain())
}

func longString(n int) string {
	return strings.Repeat("a", n)
}
