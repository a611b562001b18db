package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/client/services"
)

var errUsage = errors.New("usage")

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) reportArtifact(art *models.Artifact) {
	a.println(fmt.Sprintf("%s mockup %s (%d bytes). Use 'show' to preview, 'edit <prompt>' to revise.",
		art.Origin, a.theme.Accent.Render(art.ScreenID), len(art.Markup)))
	if c := a.credits.Read(); c != nil {
		a.println(a.theme.Muted.Render(fmt.Sprintf("%d screens, %d revisions left",
			c.RemainingScreenCredits, c.RemainingRevisionCredits)))
	}
}

func (a *App) promptOrAsk(args []string, question string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return getSimpleText(a.reader, question, a.out)
}

// Generate creates a mockup for the configured device.
func (a *App) Generate(ctx context.Context, args []string) error {
	prompt, err := a.promptOrAsk(args, "Describe the screen")
	if err != nil {
		return err
	}

	a.println(a.theme.Muted.Render("Generating..."))
	art, err := a.session.Generate(ctx, prompt, a.config.Device)
	if err != nil {
		a.println(a.theme.Danger.Render(services.UserMessage(err)))
		return err
	}
	a.reportArtifact(art)
	return nil
}

// Edit revises the active mockup, or the one named with "@id".
func (a *App) Edit(ctx context.Context, args []string) error {
	var screenID string
	if len(args) > 0 && strings.HasPrefix(args[0], "@") {
		screenID, args = strings.TrimPrefix(args[0], "@"), args[1:]
	}

	prompt, err := a.promptOrAsk(args, "What should change?")
	if err != nil {
		return err
	}

	a.println(a.theme.Muted.Render("Editing..."))
	art, err := a.session.Edit(ctx, screenID, prompt)
	if err != nil {
		a.println(a.theme.Danger.Render(services.UserMessage(err)))
		return err
	}
	a.reportArtifact(art)
	return nil
}

// Open loads an existing mockup, by default the last one produced here.
func (a *App) Open(ctx context.Context, args []string) error {
	var screenID string
	if len(args) > 0 {
		screenID = args[0]
	} else if id, ok := a.session.LastScreenID(ctx); ok {
		screenID = id
	} else {
		a.println("Usage: open <id>")
		return errUsage
	}

	art, err := a.session.LoadExisting(ctx, screenID)
	if err != nil {
		a.println(a.theme.Danger.Render(services.UserMessage(err)))
		return err
	}
	a.reportArtifact(art)
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.session.ListMine(ctx)
	if err != nil {
		a.println(a.theme.Danger.Render(services.UserMessage(err)))
		return err
	}
	a.println(a.theme.renderMockups(list))
	return nil
}

// Show prints the markup waiting in a handoff slot. Without an origin the
// slot of the active artifact is used; "--consume" empties the slot after
// reading. "@id" prints the local copy of an earlier screen instead.
func (a *App) Show(ctx context.Context, args []string) error {
	consume := false
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--consume" {
			consume = true
			continue
		}
		rest = append(rest, arg)
	}

	if len(rest) > 0 && strings.HasPrefix(rest[0], "@") {
		return a.showRecorded(ctx, strings.TrimPrefix(rest[0], "@"))
	}

	var origin models.Origin
	if len(rest) > 0 {
		o, err := models.ParseOrigin(rest[0])
		if err != nil {
			a.println("Usage: show [generated|edited|@id] [--consume]")
			return errUsage
		}
		origin = o
	} else if active := a.session.Snapshot().Active; active != nil {
		origin = active.Origin
	} else {
		origin = models.OriginGenerated
	}

	var (
		markup string
		ok     bool
	)
	if consume {
		markup, ok = a.slots.Take(origin)
	} else {
		markup, ok = a.slots.Read(origin)
	}
	if !ok {
		a.println("Nothing to preview yet.")
		return nil
	}
	a.println(a.theme.Muted.Render(fmt.Sprintf("%s preview #%d", origin, a.slots.Version(origin))))
	a.println(markup)
	return nil
}

func (a *App) showRecorded(ctx context.Context, screenID string) error {
	rec, ok, err := a.history.ByScreenID(ctx, screenID)
	if err != nil {
		a.println(a.theme.Danger.Render("Failed to read history: " + err.Error()))
		return err
	}
	if !ok {
		a.println("No local copy of", screenID)
		return nil
	}
	a.println(a.theme.Muted.Render(fmt.Sprintf("%s %s, recorded %s",
		rec.Origin, rec.ScreenID, rec.CreatedAt.Local().Format(time.DateTime))))
	a.println(rec.Markup)
	return nil
}
