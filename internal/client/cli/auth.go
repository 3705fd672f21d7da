package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

// Signup prompts for a name, email and password (entered twice) and
// registers the account. It does not log in. Both password entries are wiped
// before returning.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Repeat the password to confirm.")
	confirm, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errPasswordMismatch
	}

	msg, err := a.authService.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and starts a session. The email of the
// previous session is offered as the default.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter email"
	last, err := a.authService.LastEmail(ctx)
	if err != nil {
		return err
	}
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}

	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.setSession(email, true)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Me prints the identity of the current session. An expired access token is
// refreshed transparently by the client; when that fails too the session is
// dropped.
func (a *App) Me(ctx context.Context) error {
	id, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.setSession("", false)
			fmt.Fprintln(a.out, "Session expired, please log in again")
		}
		return err
	}

	fmt.Fprintf(a.out, "User ID: %s\nEmail:   %s\n", id.UserID, id.Email)
	return nil
}

// Logout ends the session. The local session is dropped even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.setSession("", false)
	if err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Ping checks server reachability and updates the mode.
func (a *App) Ping(ctx context.Context) error {
	if err := a.checkOnline(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is reachable")
	return nil
}
