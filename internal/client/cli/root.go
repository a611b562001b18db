package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return "(signed out)"
	}
	snap := a.session.Snapshot()
	s := string(snap.State)
	if snap.Credits != nil {
		s = fmt.Sprintf("%s, %d screens, %d revisions", s,
			snap.Credits.RemainingScreenCredits, snap.Credits.RemainingRevisionCredits)
	}
	return "(" + s + ")"
}

// Root runs the interactive session until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to screenmock CLI (type 'help' for commands)")

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	} else {
		a.credits.Refresh(ctx, false)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartCreditsWatcher(ctx, a.config.RefreshInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
