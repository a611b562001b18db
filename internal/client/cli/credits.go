package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Credits shows the ledger. "credits refresh" forces a fetch.
func (a *App) Credits(ctx context.Context, args []string) error {
	force := len(args) > 0 && args[0] == "refresh"
	a.credits.Refresh(ctx, force)
	a.println(a.theme.renderCredits(a.credits.State()))
	return nil
}

// Grant stands in for a confirmed purchase: the ledger is credited at once
// and reconciled by the next refresh.
func (a *App) Grant(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		a.println("Usage: grant <screens> [revisions]")
		return errUsage
	}

	deltas := [2]int{}
	for i, s := range args {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			a.println("Usage: grant <screens> [revisions]")
			return fmt.Errorf("%w: bad count %q", errUsage, s)
		}
		deltas[i] = n
	}

	if a.credits.Read() == nil {
		a.println("Credits are not loaded yet. Run 'credits refresh' first.")
		return nil
	}
	a.credits.ApplyOptimisticGrant(deltas[0], deltas[1])
	a.println(a.theme.renderCredits(a.credits.State()))
	return nil
}
