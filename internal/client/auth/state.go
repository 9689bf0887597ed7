package auth

import (
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
)

type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateUnauthenticated
	StateConnecting
	StateSigning
	StateVerifying
	StateAuthenticated
	// StateFailed is an unauthenticated state reached when the server
	// rejected a sign-in. Session.Err holds the reason.
	StateFailed
)

var stateNames = map[State]string{
	StateUninitialized:   "uninitialized",
	StateRestoring:       "restoring",
	StateUnauthenticated: "unauthenticated",
	StateConnecting:      "connecting",
	StateSigning:         "signing",
	StateVerifying:       "verifying",
	StateAuthenticated:   "authenticated",
	StateFailed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Busy reports whether a sign-in or restore is in progress.
func (s State) Busy() bool {
	switch s {
	case StateRestoring, StateConnecting, StateSigning, StateVerifying:
		return true
	}
	return false
}

// Session is a point-in-time copy of the machine's session. Address, Token
// and User are either all set or all empty.
type Session struct {
	State   State
	Address string
	Token   string
	User    *models.User
	Err     error
}

func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Event describes one state transition.
type Event struct {
	From    State
	To      State
	Session Session
	At      time.Time
}
