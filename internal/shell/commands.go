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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/lukasdietrich/briefdesk/internal/console"
	"github.com/lukasdietrich/briefdesk/internal/models"
)

var (
	errNoEmails       = errors.New("there are no emails")
	errNoFailedEmails = errors.New("there are no failed emails")
	errNoTemplates    = errors.New("there are no templates")
)

func showDashboard(ctx *cmdContext) error {
	renderDashboard(ctx.out, ctx.console.Dashboard())
	return nil
}

func showStatistics(ctx *cmdContext) error {
	statistics, ok := ctx.store.Statistics()
	renderStatistics(ctx.out, statistics, ok)
	return nil
}

func refreshStatistics(ctx *cmdContext) error {
	ctx.store.FetchStatistics(ctx)
	return showStatistics(ctx)
}

func listEmails(ctx *cmdContext) error {
	filter, err := parseEmailFilter(ctx)
	if err != nil {
		return err
	}

	emails := ctx.store.Emails()
	filtered := filter.Apply(emails)

	renderEmails(ctx.out, filtered)

	if filter.Active() {
		ctx.info("%d of %d emails match the filter.", len(filtered), len(emails))
	}

	return nil
}

func parseEmailFilter(ctx *cmdContext) (console.EmailFilter, error) {
	var filter console.EmailFilter

	flags := pflag.NewFlagSet("email list", pflag.ContinueOnError)
	flags.SetOutput(ctx.out)

	status := flags.StringP("status", "s", "", "only emails with this status (SENT, FAILED, QUEUED, DRAFT)")
	recipient := flags.StringP("recipient", "r", "", "only emails whose recipient contains this text")
	from := flags.String("from", "", "only emails created on or after this day (YYYY-MM-DD)")
	to := flags.String("to", "", "only emails created on or before this day (YYYY-MM-DD)")

	if err := flags.Parse(ctx.args); err != nil {
		return filter, err
	}

	if *status != "" {
		filter.Status = models.EmailStatus(strings.ToUpper(*status))

		if !filter.Status.Valid() {
			return filter, fmt.Errorf("unknown status %q", *status)
		}
	}

	filter.Recipient = *recipient

	if *from != "" {
		date, err := console.ParseDate(*from)
		if err != nil {
			return filter, err
		}

		filter.From = date
	}

	if *to != "" {
		date, err := console.ParseDate(*to)
		if err != nil {
			return filter, err
		}

		filter.To = date
	}

	return filter, nil
}

func showEmail(ctx *cmdContext) error {
	email, err := selectOneEmail(ctx, ctx.store.Emails())
	if err != nil {
		return err
	}

	renderEmail(ctx.out, email)
	return nil
}

func composeEmail(ctx *cmdContext) error {
	composer := ctx.console.Compose()

	if err := chooseComposerTemplate(ctx, composer); err != nil {
		return err
	}

	return runComposer(ctx, composer)
}

// runComposer fills the composer and asks for the next action until the
// email is sent or discarded.
func runComposer(ctx *cmdContext, composer *console.Composer) error {
	if err := fillComposer(ctx, composer); err != nil {
		return err
	}

	for composer.Open() {
		answer, err := ctx.askWithDefault("[s]end, [t]est, [e]dit or [c]ancel: ", "s")
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s", "send":
			err = composer.Send(ctx)
		case "t", "test":
			err = composer.SendTest(ctx)
		case "e", "edit":
			err = fillComposer(ctx, composer)
		case "c", "cancel":
			composer.Close()
			ctx.info("Email discarded.")
		default:
			fmt.Fprintf(ctx.out, "  Unknown choice %q\n", answer)
		}

		if err != nil && !console.Notified(err) {
			return err
		}
	}

	return nil
}

func chooseComposerTemplate(ctx *cmdContext, composer *console.Composer) error {
	templates := ctx.store.Templates()
	if len(templates) == 0 {
		return nil
	}

	useTemplate, err := ctx.confirm("Start from a template?")
	if err != nil || !useTemplate {
		return err
	}

	template, err := selectOneTemplate(ctx, templates)
	if err != nil {
		return err
	}

	return composer.SelectTemplate(template.ID)
}

func fillComposer(ctx *cmdContext, composer *console.Composer) error {
	recipient, err := ctx.askWithDefault("Recipient: ", composer.Recipient)
	if err != nil {
		return err
	}

	subject, err := ctx.askWithDefault("Subject: ", composer.Subject)
	if err != nil {
		return err
	}

	body, err := ctx.askText(textPrompt("Body", composer.Body), composer.Body)
	if err != nil {
		return err
	}

	composer.Recipient = recipient
	composer.Subject = subject
	composer.Body = body

	return nil
}

func retryEmails(ctx *cmdContext) error {
	var retryable []models.Email

	for _, email := range ctx.store.Emails() {
		if console.Retryable(email) && !ctx.console.Retrying(email.ID) {
			retryable = append(retryable, email)
		}
	}

	if len(retryable) == 0 {
		return errNoFailedEmails
	}

	emails, err := selectMultipleEmails(ctx, retryable)
	if err != nil {
		return err
	}

	for _, email := range emails {
		if err := ctx.console.Retry(ctx, email); err != nil && !console.Notified(err) {
			return fmt.Errorf("could not retry email to %q: %w", email.RecipientEmail, err)
		}
	}

	return nil
}

func refreshEmails(ctx *cmdContext) error {
	ctx.store.FetchEmails(ctx)
	ctx.info("%d emails loaded.", len(ctx.store.Emails()))
	return nil
}

func listTemplates(ctx *cmdContext) error {
	renderTemplates(ctx.out, ctx.store.Templates())
	return nil
}

func addTemplate(ctx *cmdContext) error {
	editor := ctx.console.NewTemplate()

	if err := fillTemplateEditor(ctx, editor); err != nil {
		return err
	}

	return editor.Save(ctx)
}

func editTemplate(ctx *cmdContext) error {
	template, err := selectOneTemplate(ctx, ctx.store.Templates())
	if err != nil {
		return err
	}

	editor, err := ctx.console.EditTemplate(template.ID)
	if err != nil {
		return err
	}

	if err := fillTemplateEditor(ctx, editor); err != nil {
		return err
	}

	return editor.Save(ctx)
}

func fillTemplateEditor(ctx *cmdContext, editor *console.TemplateEditor) error {
	name, err := ctx.askWithDefault("Name: ", editor.Name)
	if err != nil {
		return err
	}

	subject, err := ctx.askWithDefault("Subject: ", editor.Subject)
	if err != nil {
		return err
	}

	body, err := ctx.askText(textPrompt("Body", editor.Body), editor.Body)
	if err != nil {
		return err
	}

	editor.Name = name
	editor.Subject = subject
	editor.Body = body

	return nil
}

func deleteTemplate(ctx *cmdContext) error {
	template, err := selectOneTemplate(ctx, ctx.store.Templates())
	if err != nil {
		return err
	}

	if ctx.console.Deleting(template.ID) {
		return fmt.Errorf("template %q is already being deleted", template.Name)
	}

	confirmed, err := ctx.confirm(fmt.Sprintf("Delete template %q?", template.Name))
	if err != nil || !confirmed {
		return err
	}

	return ctx.console.DeleteTemplate(ctx, template.ID)
}

func sendTemplate(ctx *cmdContext) error {
	template, err := selectOneTemplate(ctx, ctx.store.Templates())
	if err != nil {
		return err
	}

	sender, err := ctx.console.SendTemplate(template.ID)
	if err != nil {
		return err
	}

	return runComposer(ctx, sender.Composer)
}

func refreshTemplates(ctx *cmdContext) error {
	ctx.store.FetchTemplates(ctx)
	ctx.info("%d templates loaded.", len(ctx.store.Templates()))
	return nil
}

func textPrompt(label, current string) string {
	if current != "" {
		return label + " (end with \".\", a single \".\" keeps the current text): "
	}

	return label + " (end with \".\"): "
}
