package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"noticeease/internal/client/api"
	"noticeease/internal/client/models"
	"noticeease/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and attempts to create a new
// student account. The backend sends a verification email; the account
// stays unverified until "verify <token>" succeeds.
func (a *App) Register(ctx context.Context) error {
	form := api.RegisterForm{}

	var err error
	if form.Username, err = getSimpleText(a.reader, "Enter username", os.Stdout); err != nil {
		return err
	}
	if form.RollNumber, err = getSimpleText(a.reader, "Enter roll number", os.Stdout); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if form.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number (optional)", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	form.Password = string(password)

	if err := a.session.Register(ctx, form); err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Account created. Check your inbox for the verification link.")
	return nil
}

// Verify confirms the account email with the token from the verification
// link.
func (a *App) Verify(ctx context.Context, token string) error {
	if err := a.session.VerifyEmail(ctx, token); err != nil {
		fmt.Println(err.Error())
		return err
	}
	fmt.Println("Email verified. You can log in now.")
	return nil
}

// Login prompts for credentials and authenticates. Notification
// permission is part of the login flow: a login cannot complete while
// notifications are declined.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	err = a.session.Login(ctx, api.LoginForm{Email: email, Password: string(password)})
	if err != nil {
		if errors.Is(err, common.ErrPermission) {
			fmt.Println("please enable notifications to login")
		} else {
			fmt.Println(err.Error())
		}
		return err
	}

	if info := a.session.StudentInfo(); info != nil {
		fmt.Printf("Logged in as %s (%s)\n", info.Username, info.RollNumber)
	}
	return nil
}

// Logout wipes the cookie, the cached student record and all cached
// notices. It always succeeds from the user's point of view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.filter = models.Filter{}
	fmt.Println("Logged out.")
	return nil
}

// Status prints the session summary: account, verification state and
// auth token expiry.
func (a *App) Status(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if info := a.session.StudentInfo(); info != nil {
		fmt.Printf("Account:  %s (%s)\n", info.Username, info.RollNumber)
		fmt.Printf("Email:    %s", info.Email)
		if info.Verified {
			fmt.Print(" (verified)")
		}
		fmt.Println()
	}

	if expiry, ok := a.session.TokenExpiry(); ok {
		fmt.Printf("Token expires: %s\n", expiry.Format("2006-01-02 15:04 MST"))
	}
	return nil
}
