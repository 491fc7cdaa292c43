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
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/twin"
)

const shutdownTimeout = 5 * time.Second

type twinCommand struct {
	Options twin.Options
	Backend *twin.Backend
}

func (t *twinCommand) run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := http.Server{
		Addr:    t.Options.Address,
		Handler: t.Backend.Handler(),
	}

	errs := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", t.Options.Address).
			Str("failingDomain", t.Options.FailingDomain).
			Msg("starting backend twin")

		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
		log.Info().Msg("shutting down backend twin")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
