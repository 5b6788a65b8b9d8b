package main

import (
	"context"
	"fmt"
)

type credentials struct {
	email    string
	password string
	confirm  string
}

// readCredentials fills in missing values from stdin.
func (c *cli) readCredentials(creds *credentials, confirm bool) error {
	var err error
	if creds.email == "" {
		if creds.email, err = c.in.Prompt(c.out, "email: "); err != nil {
			return err
		}
	}
	if creds.password == "" {
		if creds.password, err = c.in.Prompt(c.out, "password: "); err != nil {
			return err
		}
	}
	if confirm && creds.confirm == "" {
		if creds.confirm, err = c.in.Prompt(c.out, "confirm password: "); err != nil {
			return err
		}
	}
	return nil
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	var creds credentials
	fs := newFlagSet("register")
	fs.StringVar(&creds.email, "email", "", "account email")
	fs.StringVar(&creds.password, "password", "", "account password")
	fs.StringVar(&creds.confirm, "confirm", "", "password confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.readCredentials(&creds, true); err != nil {
		return err
	}

	token, err := c.api.Register(ctx, creds.email, creds.password, creds.confirm)
	if err != nil {
		return err
	}
	if err := c.session.SignIn(token); err != nil {
		return err
	}
	c.printf("registered and signed in as %s\n", creds.email)
	return nil
}

func runLogin(ctx context.Context, c *cli, args []string) error {
	var creds credentials
	fs := newFlagSet("login")
	fs.StringVar(&creds.email, "email", "", "account email")
	fs.StringVar(&creds.password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.readCredentials(&creds, false); err != nil {
		return err
	}

	token, err := c.api.Login(ctx, creds.email, creds.password)
	if err != nil {
		return err
	}
	if err := c.session.SignIn(token); err != nil {
		return err
	}
	c.printf("signed in as %s\n", creds.email)
	return nil
}

func runLogout(_ context.Context, c *cli, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	if err := c.session.SignOut(); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	c.printf("signed out\n")
	return nil
}

func runHealth(ctx context.Context, c *cli, _ []string) error {
	if err := c.api.Health(ctx); err != nil {
		return err
	}
	c.printf("ok\n")
	return nil
}
