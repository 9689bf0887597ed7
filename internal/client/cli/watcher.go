package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/auth"
)

// WatchSession prints session state changes until ctx is done. The returned
// channel is closed once the watcher has stopped.
func (a *App) WatchSession(ctx context.Context) <-chan struct{} {
	events, cancel := a.session.Subscribe(0)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer cancel()
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				if msg := describeEvent(ev); msg != "" {
					printlnFn(msg)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return done
}

func describeEvent(ev auth.Event) string {
	s := ev.Session
	switch ev.To {
	case auth.StateRestoring:
		return "* restoring saved session"
	case auth.StateConnecting:
		return "* connecting wallet"
	case auth.StateSigning:
		return "* waiting for signature in wallet"
	case auth.StateVerifying:
		return "* verifying signature"
	case auth.StateAuthenticated:
		if ev.From == auth.StateAuthenticated || s.Err != nil {
			return ""
		}
		who := shortAddress(s.Address)
		if s.User != nil {
			who = fmt.Sprintf("%s (%s, %s)", s.User.DisplayName(), s.User.Role, who)
		}
		return "* signed in as " + who
	case auth.StateUnauthenticated:
		if ev.From == auth.StateAuthenticated {
			return "* signed out"
		}
		return ""
	case auth.StateFailed:
		return "* sign-in failed: " + describeError(s.Err)
	}
	return ""
}
