package cli

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/ehrdesk/internal/client/auth"
	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/wallet"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

// describeError turns an error from the client stack into a line for the
// user. Validation errors list every field.
func describeError(err error) string {
	var ve *common.ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, auth.ErrAuthenticationFailed):
		if reason := serverReason(err); reason != "" {
			return "Authentication failed: " + reason
		}
		return "Authentication failed. The server rejected the signature."
	case errors.As(err, &ve):
		return describeValidation(ve)
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out."
	case errors.Is(err, wallet.ErrWalletUnavailable):
		return "No wallet signer reachable. Set -w or EHR_WALLET_URL."
	case errors.Is(err, wallet.ErrUserRejected):
		return "Request declined in the wallet."
	case errors.Is(err, auth.ErrNoAccounts):
		return "The wallet did not share any account."
	case errors.Is(err, auth.ErrAborted):
		return "Sign-in discarded after logout."
	case errors.Is(err, auth.ErrWalletNotConnected):
		return "Wallet not connected. Run 'connect' first."
	case errors.Is(err, common.ErrUnauthorized):
		return "Session expired or rejected. Run 'connect' to sign in again."
	case errors.Is(err, common.ErrNotFound):
		return "Not found."
	case client.IsRetryable(err):
		return "Server unavailable. Try again later."
	case errors.Is(err, common.ErrMalformedResponse):
		return "Unexpected response from the server."
	}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return "Request failed: " + apiErr.Message
	}
	return "Error: " + err.Error()
}

// serverReason extracts the message the server gave with a rejection.
func serverReason(err error) string {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		if ve.Message != "" {
			return ve.Message
		}
		fields := make([]string, 0, len(ve.Fields))
		for f, msgs := range ve.Fields {
			fields = append(fields, f+": "+strings.Join(msgs, "; "))
		}
		sort.Strings(fields)
		return strings.Join(fields, ", ")
	}
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func describeValidation(ve *common.ValidationError) string {
	var b strings.Builder
	b.WriteString("Please fix the following:")
	if ve.Message != "" {
		b.WriteString("\n  " + ve.Message)
	}

	fields := make([]string, 0, len(ve.Fields))
	for f := range ve.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		b.WriteString("\n  " + f + ": " + strings.Join(ve.Fields[f], "; "))
	}
	return b.String()
}

// report prints err for the user and returns it unchanged.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	a.log.Debug(ctx, "command failed", "error", err)
	printlnFn(describeError(err))
	return err
}
