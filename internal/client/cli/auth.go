package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/surlink/internal/client/services"
)

// Register prompts for email, password and an optional picture. It does not
// log the new account in.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	picture, err := GetSimpleText(a.reader, "Profile picture path (optional)", a.out)
	if err != nil {
		return err
	}

	if _, err := a.auth.Register(ctx, email, password, picture); err != nil {
		return err
	}
	a.println("Registration successful! You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.println("Welcome, " + user.Email + "!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	user, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}

	picture := "none"
	switch {
	case strings.HasPrefix(user.ProfilePicture, "data:"):
		picture = "stored locally"
	case user.ProfilePicture != "":
		picture = user.ProfilePicture
	}
	a.println(fmt.Sprintf("Email: %s\nProfile picture: %s", user.Email, picture))
	return nil
}

// Avatar replaces the profile picture of the logged-in account.
func (a *App) Avatar(ctx context.Context, path string) error {
	if path == "" {
		return services.ErrNotImage
	}
	if _, err := a.auth.SetProfilePicture(ctx, path); err != nil {
		return err
	}
	a.println("Profile picture updated.")
	return nil
}
