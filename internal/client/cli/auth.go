package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventboard/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for name, email and password and registers a new account.
// On success the returned token becomes the current session.
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
	defer clear(password)

	token, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		printlnFn("Signup unsuccessful:", describe(err))
		return err
	}

	a.startSession(email, token)
	printlnFn("Account created, you are logged in")
	return nil
}

// Login prompts for email and password and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login unsuccessful:", describe(err))
		return err
	}

	a.startSession(email, token)
	printlnFn("Login successful")
	return nil
}

// Me prints the identity the server associates with the current token.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return client.ErrUnauthorized
	}

	p, err := a.client.Me(ctx, a.token)
	if err != nil {
		if errors.Is(err, client.ErrTokenExpired) || errors.Is(err, client.ErrUnauthorized) {
			a.endSession()
		}
		printlnFn("Request failed:", describe(err))
		return err
	}

	printlnFn(fmt.Sprintf("%s <%s> id=%s canPostEvents=%t isAdmin=%t expires=%s",
		p.Name, p.Email, p.ID, p.CanPostEvents, p.IsAdmin, p.ExpiresAt.Format(time.RFC3339)))
	return nil
}

// Logout drops the current session. Tokens are stateless, so nothing is sent
// to the server.
func (a *App) Logout(context.Context) error {
	a.endSession()
	printlnFn("Logged out")
	return nil
}

func (a *App) startSession(email, token string) {
	a.userName = email
	a.token = token
}

func (a *App) endSession() {
	a.userName = ""
	a.token = ""
}

// describe turns a client error into a short user-facing message.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, client.ErrTokenExpired):
		return client.ErrTokenExpired.Error()
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return err.Error()
	}
}
