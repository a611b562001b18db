package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/screenmock/internal/client/auth"
	"github.com/dmitrijs2005/screenmock/internal/client/client"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login asks for the session token issued by the auth provider and stores it.
// The credit ledger is fetched right away so the prompt can show balances.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret("Paste session token", a.out)
	if err != nil {
		return err
	}

	if err := a.tokens.SignIn(ctx, token); err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			a.println("That token has expired. Please sign in again.")
		case errors.Is(err, client.ErrAuthTokenMissing):
			a.println("No token entered.")
		default:
			a.println("Login unsuccessful:", err.Error())
		}
		return err
	}

	a.credits.Refresh(ctx, true)
	a.println("Login successful")
	return nil
}

// Logout forgets the token together with everything derived from the session,
// including the local history of generated screens.
func (a *App) Logout(ctx context.Context) error {
	if err := a.tokens.SignOut(ctx); err != nil {
		a.println("Logout failed:", err.Error())
		return err
	}
	if err := a.history.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "failed to clear history", "error", err)
	}
	a.credits.Reset()
	a.slots.Clear()
	a.session.Leave()
	a.println("Logged out")
	return nil
}
