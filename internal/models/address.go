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
	"errors"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidAddressFormat is used for addresses of zero length, without
	// an "@" sign or with an empty local-part or domain.
	ErrInvalidAddressFormat = errors.New("address: invalid format")

	// ErrPathTooLong is used for addresses, that are too long or contain a path
	// that is too long according to RFC#5321.
	ErrPathTooLong = errors.New("address: path too long")

	// ErrInvalidDomain is used for addresses with a domain, that cannot be
	// represented as an IDNA hostname.
	ErrInvalidDomain = errors.New("address: invalid domain")

	// ZeroAddress is an invalid, zero value Address.
	ZeroAddress Address
)

// Address is a recipient address of the form "local-part@domain".
type Address struct {
	raw string
	at  int
}

// ParseRecipient parses an address entered by an operator. Surrounding
// whitespace is removed and the domain is normalized to NFC unicode.
func ParseRecipient(raw string) (Address, error) {
	addr, err := Parse(strings.TrimSpace(raw))
	if err != nil {
		return addr, err
	}

	if addr.at == 0 || addr.at == len(addr.raw)-1 || strings.ContainsAny(addr.raw, " \t\r\n") {
		return ZeroAddress, ErrInvalidAddressFormat
	}

	domain, err := DomainToUnicode(addr.Domain())
	if err != nil {
		return ZeroAddress, ErrInvalidDomain
	}

	if domain != addr.Domain() {
		addr.raw = addr.LocalPart() + "@" + domain
	}

	return addr, nil
}

// Parse splits raw at the last "@" sign without any normalization.
func Parse(raw string) (Address, error) {
	if len(raw) == 0 {
		return ZeroAddress, ErrInvalidAddressFormat
	}

	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return ZeroAddress, ErrInvalidAddressFormat
	}

	// see RFC#5321 4.5.3.1
	if at > 64 || len(raw)-at > 256 || len(raw) > 256 {
		return ZeroAddress, ErrPathTooLong
	}

	return Address{raw, at}, nil
}

func (a Address) String() string {
	return a.raw
}

// LocalPart returns the part left of the "@" sign (exclusive).
func (a Address) LocalPart() string {
	return a.raw[:a.at]
}

// Domain return the part right of the "@" sign (exclusive).
func (a Address) Domain() string {
	return a.raw[a.at+1:]
}

// DomainToUnicode normalizes a punycode domain to unicode and applies the
// NFC normal form.
func DomainToUnicode(domain string) (string, error) {
	mapped, err := idna.Lookup.ToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return norm.NFC.String(mapped), nil
}
