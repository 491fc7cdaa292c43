//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/google/wire"

	"github.com/lukasdietrich/briefdesk/internal/api"
	"github.com/lukasdietrich/briefdesk/internal/console"
	"github.com/lukasdietrich/briefdesk/internal/shell"
	"github.com/lukasdietrich/briefdesk/internal/store"
	"github.com/lukasdietrich/briefdesk/internal/twin"
)

func newShellCommand() (*shellCommand, error) {
	panic(wire.Build(
		wire.Struct(new(shellCommand), "*"),

		provideFs,
		api.WireSet,
		store.WireSet,
		console.WireSet,
		shell.WireSet,
	))
}

func newTwinCommand() (*twinCommand, error) {
	panic(wire.Build(
		wire.Struct(new(twinCommand), "*"),

		twin.WireSet,
	))
}
