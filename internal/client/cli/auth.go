package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvasiljevs/commhub/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an identifier (email or username) and password and tries
// to authenticate. On success the transport's session-expired latch is
// re-armed and a greeting is shown.
//
// The password bytes are wiped before returning. Credential errors carry the
// server's message and are returned for display; the session stays
// unauthenticated.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(password)

	identity, err := a.session.Login(ctx, identifier, string(password))
	if err != nil {
		return err
	}

	a.transport.Reset()
	a.sink.Success(fmt.Sprintf("Welcome back, %s!", identity.Username))
	return nil
}

// Register prompts for the signup fields and creates a new account. Depending
// on server policy the user either has to verify their email first or is
// logged in right away.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(password)

	result, err := a.session.Register(ctx, email, username, string(password))
	if err != nil {
		return err
	}

	if result.VerificationSent {
		a.sink.Success("Almost there! Check your email for a verification link.")
		return nil
	}

	a.transport.Reset()
	a.sink.Success(fmt.Sprintf("Welcome to CommHub, %s!", username))
	return nil
}

// Logout invalidates the session. Local state is cleared even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.sink.Success("Logged out.")
	return nil
}

// InjectTokens accepts a token pair obtained out-of-band (OAuth callback,
// email verification link) and adopts it as the current session.
func (a *App) InjectTokens(ctx context.Context) error {
	access, err := getSimpleText(a.reader, "Paste access token", os.Stdout)
	if err != nil {
		return err
	}
	refresh, err := getSimpleText(a.reader, "Paste refresh token", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.SetTokens(ctx, access, refresh); err != nil {
		return err
	}

	a.transport.Reset()
	if u := a.session.User(); u != nil {
		a.sink.Success(fmt.Sprintf("Signed in as %s", u.Username))
	}
	return nil
}
