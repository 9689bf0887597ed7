package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ehrdesk/internal/client/auth"
)

func (a *App) Status(ctx context.Context, _ []string) error {
	s := a.session.Session()
	printFields(a.out,
		"State", s.State.String(),
		"Wallet", s.Address,
		"Signed in", yesNo(s.Authenticated()),
	)
	if s.Err != nil {
		printlnFn("Last error:", describeError(s.Err))
	}
	return nil
}

func (a *App) Connect(ctx context.Context, _ []string) error {
	s := a.session.Session()
	if a.busy(s) {
		return nil
	}
	if s.Authenticated() {
		printlnFn("Already signed in as", s.Address)
		return nil
	}
	_, err := a.session.Connect(ctx)
	return a.report(ctx, err)
}

func (a *App) Reconnect(ctx context.Context, _ []string) error {
	if a.busy(a.session.Session()) {
		return nil
	}
	s, err := a.session.Reconnect(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if !s.Authenticated() {
		printlnFn("No connected wallet account. Run 'connect' to grant access.")
	}
	return nil
}

// busy tells the user when a restore or sign-in is still running.
func (a *App) busy(s auth.Session) bool {
	if !s.State.Busy() {
		return false
	}
	printlnFn("Sign-in in progress (" + s.State.String() + "). Try again when it finishes.")
	return true
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	return a.report(ctx, a.session.Logout(ctx))
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	s := a.session.Session()
	if s.User == nil {
		return a.report(ctx, auth.ErrWalletNotConnected)
	}
	u := s.User
	printFields(a.out,
		"Name", u.DisplayName(),
		"Username", u.Username,
		"Email", u.Email,
		"Role", string(u.Role),
		"Wallet", s.Address,
	)
	return nil
}

// Sign signs the words after the command, or a prompted message.
func (a *App) Sign(ctx context.Context, args []string) error {
	msg := strings.Join(args, " ")
	if msg == "" {
		var err error
		if msg, err = GetSimpleText(a.reader, "Message to sign", a.out); err != nil {
			return err
		}
	}
	sig, err := a.session.SignMessage(ctx, msg)
	if err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, sig)
	return nil
}

func (a *App) Dashboard(ctx context.Context, _ []string) error {
	c, err := a.dashboard.Counts(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	printFields(a.out,
		"Doctors", fmt.Sprint(c.Doctors),
		"Patients", fmt.Sprint(c.Patients),
	)
	return nil
}
