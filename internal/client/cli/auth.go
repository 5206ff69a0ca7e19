package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

// getSimpleText and getPassword point at the interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for the account fields, registers the user and keeps the
// returned session. Phone and address may be left empty.
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

	phone, err := getSimpleText(a.reader, "Enter phone number (optional)", a.out)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Enter address (optional)", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Signup(ctx, models.SignupRequest{
		Name:        name,
		Email:       email,
		Password:    string(password),
		PhoneNumber: phone,
		Address:     address,
	})
	if err != nil {
		return err
	}

	a.setSession(s)
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", s.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.setSession(s)
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Email)
	return nil
}

// Me prints the profile of the logged-in user.
func (a *App) Me(ctx context.Context) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return a.checkSession(err)
	}

	fmt.Fprintf(a.out, "ID:      %s\n", u.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	if u.PhoneNumber != "" {
		fmt.Fprintf(a.out, "Phone:   %s\n", u.PhoneNumber)
	}
	if u.Address != "" {
		fmt.Fprintf(a.out, "Address: %s\n", u.Address)
	}
	fmt.Fprintf(a.out, "Since:   %s\n", u.CreatedAt.Format("2006-01-02"))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setSession(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// checkSession drops the in-memory session when the server rejected the
// token; the saved copy is already gone by then.
func (a *App) checkSession(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.setSession(nil)
		return fmt.Errorf("session expired, please log in again: %w", err)
	}
	return err
}
