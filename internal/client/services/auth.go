package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const (
	noncePath         = "/auth/nonce/"
	authenticatePath  = "/auth/authenticate/"
	verifySessionPath = "/auth/verify-session/"
)

// AuthService covers the server half of wallet sign-in.
//
// Contract:
//   - Nonce: fetch a single-use nonce for address.
//   - Authenticate: exchange address and signature for a session token.
//   - VerifySession: check the stored bearer token and return its user.
type AuthService interface {
	Nonce(ctx context.Context, address string) (string, error)
	Authenticate(ctx context.Context, address, signature string) (*AuthResult, error)
	VerifySession(ctx context.Context) (*models.User, error)
}

// AuthResult is a successful sign-in.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type authService struct {
	client client.Client
	log    logging.Logger
}

func NewAuthService(c client.Client, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{client: c, log: log.With("service", "auth")}
}

func (a *authService) Nonce(ctx context.Context, address string) (string, error) {
	path, err := itemPath(noncePath, address)
	if err != nil {
		return "", err
	}

	var resp struct {
		Nonce string `json:"nonce"`
	}
	if err := a.client.Get(ctx, path, &resp); err != nil {
		a.log.Error(ctx, "failed to get nonce", "address", address, "error", err)
		return "", fmt.Errorf("get nonce: %w", err)
	}
	if resp.Nonce == "" {
		return "", fmt.Errorf("get nonce: %w: empty nonce", common.ErrMalformedResponse)
	}
	return resp.Nonce, nil
}

func (a *authService) Authenticate(ctx context.Context, address, signature string) (*AuthResult, error) {
	ve := &common.ValidationError{}
	if strings.TrimSpace(address) == "" {
		ve.Add("address", "is required")
	}
	if strings.TrimSpace(signature) == "" {
		ve.Add("signature", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	req := struct {
		Address   string `json:"address"`
		Signature string `json:"signature"`
	}{Address: address, Signature: signature}

	var resp AuthResult
	if err := a.client.Post(ctx, authenticatePath, req, &resp); err != nil {
		a.log.Error(ctx, "authentication rejected", "address", address, "error", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("authenticate: %w: empty token", common.ErrMalformedResponse)
	}
	if resp.User.Address == "" {
		resp.User.Address = address
	}
	return &resp, nil
}

func (a *authService) VerifySession(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := a.client.Get(ctx, verifySessionPath, &resp); err != nil {
		if !errors.Is(err, common.ErrUnauthorized) {
			a.log.Error(ctx, "failed to verify session", "error", err)
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if resp.User == nil {
		return nil, fmt.Errorf("verify session: %w: missing user", common.ErrMalformedResponse)
	}
	return resp.User, nil
}
