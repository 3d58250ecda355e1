package forms

import (
	"context"
	"fmt"

	"damagesnap/internal/api"
	"damagesnap/internal/auth"
	"damagesnap/internal/models"
	"damagesnap/internal/toast"
)

// Authenticator is the part of the API client the account forms use.
type Authenticator interface {
	Login(ctx context.Context, in models.UserLogin) api.Result[models.Token]
	Register(ctx context.Context, in models.UserCreate) api.Result[models.User]
}

// LoginForm signs a user in and stores the access token.
type LoginForm struct {
	Email    string
	Password string
}

// Submit logs in. On success the token is persisted in store.
func (f *LoginForm) Submit(ctx context.Context, c Authenticator, store auth.Store, n toast.Notifier) error {
	res := c.Login(ctx, models.UserLogin{Email: f.Email, Password: f.Password})
	token := res.Value().AccessToken
	if !res.OK() || token == "" {
		msg := res.Error
		if msg == "" {
			msg = "Invalid credentials."
		}
		notify(n, toast.Failure("Login Failed", msg))
		return &api.Error{StatusCode: res.StatusCode, Message: msg}
	}

	if err := store.SetToken(ctx, token); err != nil {
		notify(n, toast.Failure("Login Failed", "Could not save your session."))
		return fmt.Errorf("store token: %w", err)
	}
	notify(n, toast.Success("Login Successful", "Welcome back!"))
	f.Reset()
	return nil
}

func (f *LoginForm) Reset() {
	*f = LoginForm{}
}

// RegisterForm creates an account.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

func (f *RegisterForm) Submit(ctx context.Context, c Authenticator, n toast.Notifier) (*models.User, error) {
	res := c.Register(ctx, models.UserCreate{Name: f.Name, Email: f.Email, Password: f.Password})
	if !res.OK() {
		notify(n, toast.Failure("Registration Failed", res.Error))
		return nil, res.Err()
	}
	notify(n, toast.Success("Registration Successful", "You can now log in with your new account."))
	f.Reset()
	return res.Data, nil
}

func (f *RegisterForm) Reset() {
	*f = RegisterForm{}
}

// Logout clears the stored token. Later authenticated calls fail locally
// until the user logs in again.
func Logout(ctx context.Context, store auth.Store, n toast.Notifier) error {
	if err := store.ClearToken(ctx); err != nil {
		notify(n, toast.Failure("Logout Failed", err.Error()))
		return err
	}
	notify(n, toast.Success("Logged Out", "You have been logged out."))
	return nil
}
