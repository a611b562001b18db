package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/screenmock/internal/client/config"
	"github.com/dmitrijs2005/screenmock/internal/client/exporter"
)

const historyDefaultLimit = 10

// Export writes the active mockup as a standalone HTML document.
func (a *App) Export(ctx context.Context, args []string) error {
	target := sinkFile
	if len(args) > 0 {
		target = args[0]
	}
	sink, ok := a.sinks[target]
	if !ok {
		a.println("Export target not configured:", target)
		return exporter.ErrNotConfigured
	}

	active := a.session.Snapshot().Active
	if active == nil {
		a.println("Nothing to export yet.")
		return nil
	}

	loc, err := exporter.Export(ctx, sink, active, a.config.Device.Platform)
	if err != nil {
		a.logger.Error(ctx, "export failed", "error", err)
		a.println(a.theme.Danger.Render("Export failed: " + err.Error()))
		return err
	}
	a.println("Exported to", loc)
	return nil
}

// History lists the artifacts recorded locally, newest first.
func (a *App) History(ctx context.Context, args []string) error {
	limit := historyDefaultLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			a.println("Usage: history [n]")
			return errUsage
		}
		limit = n
	}

	records, err := a.history.Latest(ctx, limit)
	if err != nil {
		a.println(a.theme.Danger.Render("Failed to read history: " + err.Error()))
		return err
	}
	a.println(a.theme.renderHistory(records))
	return nil
}

// Device prints or replaces the device profile used for generation.
func (a *App) Device(ctx context.Context, args []string) error {
	if len(args) > 0 {
		d, err := config.ParseDevice(args[0])
		if err != nil {
			a.println(err.Error())
			return err
		}
		a.config.Device = d
	}
	a.println("Device:", config.FormatDevice(a.config.Device))
	return nil
}
