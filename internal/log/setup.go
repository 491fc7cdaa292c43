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

package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)
}

// Options configure the global Logger.
type Options struct {
	Level  string
	Pretty bool
}

// OptionsFromViper reads the logging options from viper.
//
// `log.level` is a zerolog level name.
// `log.pretty` switches from json lines to a human readable console format.
func OptionsFromViper() Options {
	return Options{
		Level:  viper.GetString("log.level"),
		Pretty: viper.GetBool("log.pretty"),
	}
}

// Setup replaces the global Logger with one writing to w according to opts.
func Setup(w io.Writer, opts Options) error {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	if w == nil {
		w = os.Stderr
	}

	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return nil
}
