// Package common holds protocol constants shared by the client packages.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	// RequestIDHeaderName tags each outbound request for log correlation.
	RequestIDHeaderName = "X-Request-Id"
)

// Local storage keys. Both are written together and cleared together.
const (
	TokenKey   = "token"
	AddressKey = "address"
)

// ChallengePrefix is the fixed text of the wallet sign-in challenge; the
// server-issued nonce is appended verbatim.
const ChallengePrefix = "Sign this message to authenticate with EHR system. Nonce: "
