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
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("api.baseurl", "http://localhost:8080/api")
	viper.SetDefault("api.auth.username", "")
	viper.SetDefault("api.auth.password", "")
	viper.SetDefault("api.auth.passwordfile", "")
	viper.SetDefault("api.auth.token", "")
}

// Options configure the backend client.
type Options struct {
	BaseURL      string
	Username     string
	Password     string
	PasswordFile string
	Token        string
}

// OptionsFromViper reads the client options from viper.
//
// `api.baseurl` is the url every path is appended to.
// `api.auth.username` and `api.auth.password` are basic auth credentials.
// `api.auth.passwordfile` is read instead of `api.auth.password` if set.
// `api.auth.token` is sent as bearer token and takes precedence over basic auth.
func OptionsFromViper() Options {
	return Options{
		BaseURL:      viper.GetString("api.baseurl"),
		Username:     viper.GetString("api.auth.username"),
		Password:     viper.GetString("api.auth.password"),
		PasswordFile: viper.GetString("api.auth.passwordfile"),
		Token:        viper.GetString("api.auth.token"),
	}
}
