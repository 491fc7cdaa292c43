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

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/pflag"

	"github.com/lukasdietrich/briefdesk/internal/console"
	"github.com/lukasdietrich/briefdesk/internal/log"
	"github.com/lukasdietrich/briefdesk/internal/store"
)

// Shell is an interactive shell to send emails, manage templates and watch
// the delivery log of the notification backend.
type Shell struct {
	console  *console.Console
	store    *store.Store
	finder   finder
	out      io.Writer
	commands cmdSlice
}

// NewShell creates a new shell instance.
func NewShell(console *console.Console) *Shell {
	return &Shell{
		console: console,
		store:   console.Store(),
		finder:  fuzzyFinder{},
		out:     os.Stdout,
		commands: cmdSlice{
			{
				name:   "dashboard",
				help:   "Show statistics, status breakdown, trend and recent emails.",
				action: showDashboard,
			},
			{
				name:   "stats",
				help:   "Show the delivery statistics.",
				action: showStatistics,
				children: cmdSlice{
					{
						name:   "refresh",
						help:   "Reload the statistics from the backend.",
						action: refreshStatistics,
					},
				},
			},
			{
				name: "email",
				help: "Send emails and browse the delivery log.",
				children: cmdSlice{
					{
						name:   "list",
						help:   "List emails. Filter with --status, --recipient, --from and --to.",
						action: listEmails,
					},
					{
						name:   "show",
						help:   "Show the details of an email.",
						action: showEmail,
					},
					{
						name:   "compose",
						help:   "Compose and send a new email.",
						action: composeEmail,
					},
					{
						name:   "retry",
						help:   "Retry failed emails.",
						action: retryEmails,
					},
					{
						name:   "refresh",
						help:   "Reload the emails from the backend.",
						action: refreshEmails,
					},
				},
			},
			{
				name: "template",
				help: "Manage reusable email templates.",
				children: cmdSlice{
					{
						name:   "list",
						help:   "List templates.",
						action: listTemplates,
					},
					{
						name:   "add",
						help:   "Add a new template.",
						action: addTemplate,
					},
					{
						name:   "edit",
						help:   "Edit an existing template.",
						action: editTemplate,
					},
					{
						name:   "delete",
						help:   "Delete an existing template.",
						action: deleteTemplate,
					},
					{
						name:   "send",
						help:   "Send a template to a recipient.",
						action: sendTemplate,
					},
					{
						name:   "refresh",
						help:   "Reload the templates from the backend.",
						action: refreshTemplates,
					},
				},
			},
		},
	}
}

// Run loads the initial data and starts the shell read loop.
func (s *Shell) Run(ctx context.Context) error {
	config := readline.Config{
		Prompt:       ">>> ",
		AutoComplete: readline.NewPrefixCompleter(s.commands.buildCompleters()...),
	}

	rl, err := readline.NewEx(&config)
	if err != nil {
		return err
	}

	defer rl.Close()

	s.out = rl.Stdout()

	unsubscribe := s.watchNotifications()
	defer unsubscribe()

	s.store.Init(ctx)

	for {
		rl.SetPrompt(">>> ")

		line, err := rl.Readline()
		if err != nil {
			if isUnimportantError(err) {
				return nil
			}

			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		if err := s.handleCommand(ctx, rl, args); err != nil && !isUnimportantError(err) {
			fmt.Fprintf(s.out, "\nERROR:\n  %s\n\n", err)
		}
	}
}

// watchNotifications prints every new notification of the store.
func (s *Shell) watchNotifications() func() {
	return s.store.Subscribe(func(event store.Event) {
		if event != store.EventNotification {
			return
		}

		if notification, ok := s.store.Notification(); ok {
			printNotification(s.out, notification)
		}
	})
}

func isUnimportantError(err error) bool {
	return errors.Is(err, fuzzyfinder.ErrAbort) ||
		errors.Is(err, readline.ErrInterrupt) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, pflag.ErrHelp) ||
		console.Notified(err)
}

type cmdFunc func(*cmdContext) error

type cmdSlice []cmdDef

// lookup finds the deepest command matching the leading args. The remaining
// args are passed to the command as arguments.
func (s cmdSlice) lookup(args []string) (cmdDef, []string, bool) {
	if len(s) == 0 || len(args) == 0 {
		return cmdDef{}, nil, false
	}

	var (
		head = args[0]
		tail = args[1:]
	)

	for _, cmd := range s {
		if head == cmd.name {
			if len(tail) > 0 {
				if child, rest, ok := cmd.children.lookup(tail); ok {
					return child, rest, true
				}

				if cmd.action == nil {
					return cmdDef{}, nil, false
				}
			}

			return cmd, tail, true
		}
	}

	return cmdDef{}, nil, false
}

func (s cmdSlice) buildCompleters() []readline.PrefixCompleterInterface {
	var completers []readline.PrefixCompleterInterface

	for _, cmd := range s {
		cmdCompleter := readline.PcItem(cmd.name, cmd.children.buildCompleters()...)
		completers = append(completers, cmdCompleter)
	}

	return completers
}

type cmdDef struct {
	name     string
	help     string
	action   cmdFunc
	children cmdSlice
}

// lineReader is the part of readline used to ask questions.
type lineReader interface {
	SetPrompt(string)
	ReadlineWithDefault(string) (string, error)
	HistoryDisable()
	HistoryEnable()
}

type cmdContext struct {
	context.Context
	console   *console.Console
	store     *store.Store
	finder    finder
	rl        lineReader
	out       io.Writer
	args      []string
	infoLines []string
}

func (c *cmdContext) info(format string, v ...interface{}) {
	text := fmt.Sprintf(format, v...)
	c.infoLines = append(c.infoLines, text)
}

func (c *cmdContext) ask(prompt string) (string, error) {
	return c.askWithDefault(prompt, "")
}

func (c *cmdContext) askWithDefault(prompt, defaultValue string) (string, error) {
	c.rl.HistoryDisable()
	defer c.rl.HistoryEnable()

	c.rl.SetPrompt(prompt)

	for {
		answer, err := c.rl.ReadlineWithDefault(defaultValue)
		if err != nil || len(answer) > 0 {
			return answer, err
		}
	}
}

// askText reads lines until a line containing a single dot. A dot on the
// first line keeps defaultValue, if there is one.
func (c *cmdContext) askText(prompt, defaultValue string) (string, error) {
	c.rl.HistoryDisable()
	defer c.rl.HistoryEnable()

	c.rl.SetPrompt(prompt)

	var lines []string

	for {
		line, err := c.rl.ReadlineWithDefault("")
		if err != nil {
			return "", err
		}

		if line == "." {
			if len(lines) > 0 {
				return strings.Join(lines, "\n"), nil
			}

			if defaultValue != "" {
				return defaultValue, nil
			}

			continue
		}

		lines = append(lines, line)
		c.rl.SetPrompt("... ")
	}
}

// confirm asks a yes/no question. Anything but yes is a no.
func (c *cmdContext) confirm(prompt string) (bool, error) {
	c.rl.HistoryDisable()
	defer c.rl.HistoryEnable()

	c.rl.SetPrompt(prompt + " [y/N]: ")

	answer, err := c.rl.ReadlineWithDefault("")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Shell) handleCommand(ctx context.Context, rl lineReader, args []string) error {
	cmd, rest, ok := s.commands.lookup(args)
	if ok {
		if cmd.action != nil {
			path := strings.Join(args[:len(args)-len(rest)], " ")
			return s.executeCommand(log.WithCommand(ctx, path), rl, cmd, rest)
		}

		s.printCommandHelp(cmd)
	} else {
		s.printCommandUnknown(s.commands, args)
	}

	return nil
}

func (s *Shell) executeCommand(ctx context.Context, rl lineReader, cmd cmdDef, args []string) error {
	cmdCtx := cmdContext{
		Context: ctx,
		console: s.console,
		store:   s.store,
		finder:  s.finder,
		rl:      rl,
		out:     s.out,
		args:    args,
	}

	log.DebugContext(ctx).Strs("args", args).Msg("executing command")

	if err := cmd.action(&cmdCtx); err != nil {
		return err
	}

	if len(cmdCtx.infoLines) > 0 {
		fmt.Fprintln(s.out)

		for _, infoLine := range cmdCtx.infoLines {
			fmt.Fprint(s.out, "  ")
			fmt.Fprintln(s.out, infoLine)
		}

		fmt.Fprintln(s.out)
	}

	return nil
}

func (s *Shell) printCommandUnknown(cmds cmdSlice, args []string) {
	fmt.Fprintf(s.out, "\n  Unknown command %q\n", strings.Join(args, " "))
	s.printCommandUsage(cmds)
}

func (s *Shell) printCommandHelp(cmd cmdDef) {
	fmt.Fprintf(s.out, "\n  %s\n", cmd.help)
	s.printCommandUsage(cmd.children)
}

func (s *Shell) printCommandUsage(cmds cmdSlice) {
	if len(cmds) > 0 {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Commands:")

		for _, cmd := range cmds {
			fmt.Fprintf(s.out, "  %-10s  %s\n", cmd.name, cmd.help)
		}
	}

	fmt.Fprintln(s.out)
}
