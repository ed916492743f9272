package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/saferide/saferide/internal/common"
)

// Login prompts for credentials and drives the session manager. Failures are
// reported through the session's error field, never as a thrown error.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.session.Login(ctx, email, string(password))

	if msg := a.session.ErrorMessage(); msg != "" {
		printlnFn("Login failed:", msg)
		return nil
	}

	if user := a.session.User(); user != nil {
		printlnFn(fmt.Sprintf("Logged in as %s (%s)", user.Email, user.Role))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// WhoAmI re-fetches the profile so the output reflects the backend's current
// view, not a stale cached one.
func (a *App) WhoAmI(ctx context.Context) error {
	a.session.RefreshUser(ctx)

	user := a.session.User()
	if user == nil {
		printlnFn("Not logged in")
		return nil
	}

	printlnFn(fmt.Sprintf("%s %s <%s> role=%s active=%t",
		user.FirstName, user.LastName, user.Email, user.Role, user.IsActive))
	return nil
}
