// Package wallet talks to an external signer (a browser-extension bridge or a
// local signing daemon) over JSON-RPC 2.0. The client never holds key
// material; it only asks the signer for accounts and signatures.
package wallet

import (
	"context"
	"errors"
)

var (
	// ErrWalletUnavailable is returned when no signer is configured or it
	// cannot be reached.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// ErrUserRejected is returned when the user declines a request in the
	// signer.
	ErrUserRejected = errors.New("user rejected request")
)

// Provider is the wallet contract used by the authentication flow.
type Provider interface {
	// Accounts lists accounts the signer already exposes, without prompting.
	Accounts(ctx context.Context) ([]string, error)
	// RequestAccounts asks the user to grant account access.
	RequestAccounts(ctx context.Context) ([]string, error)
	// SignMessage signs a UTF-8 message with account and returns the
	// hex-encoded signature.
	SignMessage(ctx context.Context, account, message string) (string, error)
}
