package auth

import "errors"

var (
	// ErrAuthenticationFailed is returned when the server rejects a signed
	// challenge. The stored session is cleared.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrWalletNotConnected is returned by SignMessage without a session.
	ErrWalletNotConnected = errors.New("wallet not connected")
	// ErrNoAccounts is returned when the wallet grants access to no account.
	ErrNoAccounts = errors.New("wallet returned no accounts")
	// ErrAborted is returned when Logout runs while a sign-in is in flight;
	// the sign-in result is discarded.
	ErrAborted = errors.New("sign-in aborted by logout")
)
