package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/onlyventilateur/ovcli/internal/client/viewmodels"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getOptionalText = GetOptionalText

// reportErr prints a user-facing message for a failed command. An auth
// requirement gets a fixed hint; anything else is shown as returned, since
// the view-models already wrap failures with a displayable message.
func reportErr(err error) {
	if errors.Is(err, viewmodels.ErrAuthRequired) {
		printlnFn("Please login first.")
		return
	}
	printlnFn("Error:", err.Error())
}

// Login prompts the user for an email and password and attempts to
// authenticate. On success the session is persisted and the prompt picks
// up the identity.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, password); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Success!")
	return nil
}

// Signup prompts for email, username, and password and creates an account.
// The returned session is established immediately.
func (a *App) Signup(ctx context.Context) error {
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

	if err := a.auth.Signup(ctx, email, username, password); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Success!")
	return nil
}

// Logout drops the session from memory and durable storage.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(); err != nil {
		reportErr(err)
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// Whoami shows the current identity.
func (a *App) Whoami(ctx context.Context) error {
	user, ok := a.auth.User()
	if !ok {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", user.Username, user.Email))
	if user.Bio != "" {
		printlnFn(user.Bio)
	}
	return nil
}
