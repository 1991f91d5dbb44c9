package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/dukerupert/hbnb/internal/backend"
	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/view"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = app.readLine("Email: "); err != nil {
					return err
				}
			}
			password, err := app.readPassword("Password: ")
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}
			token, err := client.Login(cmd.Context(), model.Credentials{
				Email:    strings.TrimSpace(email),
				Password: password,
			})
			if errors.Is(err, backend.ErrUnauthorized) {
				if clearErr := app.tokens().Clear(); clearErr != nil {
					return clearErr
				}
				return fmt.Errorf("%s: invalid email or password", view.LoginFailed)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", view.LoginFailed, err)
			}

			if err := app.tokens().Save(token); err != nil {
				return err
			}
			app.success("Logged in as %s", strings.TrimSpace(email))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.tokens().Clear(); err != nil {
				return err
			}
			app.success("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show whether a token is saved and what it claims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.tokens().Get()
			if err != nil {
				return err
			}
			if token == "" {
				app.notice("Not logged in")
				return nil
			}

			fmt.Fprintln(app.Out, "Logged in")
			describeToken(app, token)
			return nil
		},
	}
}

// describeToken prints the token's claims. The signature is not checked; the
// backend stays the only judge of validity.
func describeToken(app *App, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		fmt.Fprintf(app.Out, "  user id: %s\n", sub)
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		fmt.Fprintf(app.Out, "  email:   %s\n", email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Fprintf(app.Out, "  expires: %s\n", exp.Local().Format(time.RFC1123))
	}
}
