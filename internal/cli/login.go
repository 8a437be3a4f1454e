package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/marketpro/internal/common"
	"github.com/dmitrijs2005/marketpro/internal/session"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

// Login prompts for credentials and establishes a session.
//
// If credentials were remembered on a previous login, the operator is
// offered them as a prefill. A "remember me" confirmation decides both
// where the session is persisted (durable vs ephemeral slot) and
// whether the credentials are kept for the next prefill; declining it
// also forgets any previously remembered pair.
func (a *App) Login(ctx context.Context) error {
	var phone, password string

	remembered, err := a.creds.Recall(ctx)
	if err != nil {
		a.log.Warn(ctx, "remembered credentials unavailable", "error", err)
	}
	if remembered != nil {
		use, err := getConfirmation(a.reader, fmt.Sprintf("Use remembered credentials for %s?", remembered.Phone), a.out)
		if err != nil {
			return err
		}
		if use {
			phone, password = remembered.Phone, remembered.Password
		}
	}

	if phone == "" {
		phone, err = getSimpleText(a.reader, "Enter phone number (10 digits)", a.out)
		if err != nil {
			return err
		}

		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		password = string(pw)
	}

	p, err := a.validator.Validate(phone, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidPhoneFormat):
			printlnFn("Please enter a valid 10-digit phone number")
		case errors.Is(err, common.ErrPasswordTooShort):
			printlnFn("Password must be at least 3 characters")
		case errors.Is(err, common.ErrInvalidCredentials):
			printlnFn("Invalid phone number or password")
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.Login(ctx, p, remember); err != nil {
		printlnFn("Could not save the session:", err.Error())
		return err
	}

	if remember {
		if err := a.creds.Remember(ctx, session.Credentials{Phone: phone, Password: password}); err != nil {
			a.log.Warn(ctx, "failed to remember credentials", "error", err)
		}
	} else {
		if err := a.creds.Forget(ctx); err != nil {
			a.log.Warn(ctx, "failed to forget credentials", "error", err)
		}
	}

	printlnFn(fmt.Sprintf("Login successful! Welcome, %s", p.Name))
	return nil
}

// Logout clears the session from both persistence slots.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the current session state.
func (a *App) WhoAmI(ctx context.Context) error {
	p := a.sessions.Current()
	if p == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s (%s), role %s", p.Name, p.Phone, p.Role))
	return nil
}
