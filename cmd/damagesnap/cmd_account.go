package main

import (
	"errors"
	"fmt"
	"time"

	"damagesnap/internal/auth"
	"damagesnap/internal/forms"
	"damagesnap/internal/toast"
	"damagesnap/internal/ui"

	"github.com/spf13/cobra"
)

var (
	accountName     string
	accountEmail    string
	accountPassword string
	whoamiLocal     bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a DamageSnap account",
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the signed-in user.

With --local the stored token is decoded without contacting the server.
Its claims are not verified.`,
	RunE: runWhoami,
}

func init() {
	registerCmd.Flags().StringVar(&accountName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&accountEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&accountPassword, "password", "", "Password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&accountEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&accountPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	whoamiCmd.Flags().BoolVar(&whoamiLocal, "local", false, "Decode the stored token instead of asking the server")
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	f := forms.RegisterForm{Name: accountName, Email: accountEmail, Password: accountPassword}
	u, err := f.Submit(ctx, rt.API, notifier)
	if err != nil {
		return reported(err)
	}
	ui.User(stdout, *u)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	f := forms.LoginForm{Email: accountEmail, Password: accountPassword}
	return reported(f.Submit(ctx, rt.API, rt.Tokens, notifier))
}

func runLogout(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	return reported(forms.Logout(ctx, rt.Tokens, notifier))
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if whoamiLocal {
		token, err := rt.Tokens.Token(ctx)
		if err != nil {
			if errors.Is(err, auth.ErrNoToken) {
				notifier.Notify(toast.Failure("Error", "Not authenticated."))
			} else {
				notifier.Notify(toast.Failure("Error", err.Error()))
			}
			return reported(err)
		}
		claims, err := auth.Inspect(token)
		if err != nil {
			fmt.Fprintln(stdout, ui.Muted("Stored token is opaque; ask the server with `damagesnap whoami`."))
			return nil
		}
		ui.Card(stdout, "local", "Stored token",
			ui.Field("Subject", claims.Subject),
			ui.Field("Issued", ui.DateTime(claims.IssuedAt)),
			ui.Field("Expires", ui.DateTime(claims.ExpiresAt)),
			expiryNote(claims),
		)
		return nil
	}

	u, err := load(rt.API.CurrentUser(ctx), "Error")
	if err != nil {
		return err
	}
	ui.User(stdout, u)
	return nil
}

func expiryNote(c auth.Claims) string {
	if c.Expired(time.Now()) {
		return ui.Muted("This token has expired. Run `damagesnap login`.")
	}
	return ""
}

// currentUserID resolves the signed-in user. Without a token it fails
// locally with a toast.
func currentUserID(cmd *cobra.Command) (string, error) {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	u, err := load(rt.API.CurrentUser(ctx), "Error")
	if err != nil {
		return "", err
	}
	return u.ID.String(), nil
}
