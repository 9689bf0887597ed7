package wallet

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	methodAccounts        = "eth_accounts"
	methodRequestAccounts = "eth_requestAccounts"
	methodPersonalSign    = "personal_sign"

	// codeUserRejected is the EIP-1193 "user rejected the request" code.
	codeUserRejected = 4001
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error object returned by the signer.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wallet rpc error %d: %s", e.Code, e.Message)
}

func (e *RPCError) rejected() bool {
	if e.Code == codeUserRejected {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "denied") || strings.Contains(msg, "rejected")
}

// RPCProvider implements Provider against a JSON-RPC endpoint.
type RPCProvider struct {
	endpoint string
	http     *http.Client
	log      logging.Logger
}

// NewRPCProvider returns a provider for endpoint. An empty endpoint yields a
// provider whose every call fails with ErrWalletUnavailable.
func NewRPCProvider(endpoint string, timeout time.Duration, log logging.Logger) *RPCProvider {
	if log == nil {
		log = logging.Nop()
	}
	if timeout <= 0 {
		// signing waits on a human
		timeout = 2 * time.Minute
	}
	return &RPCProvider{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	var out []string
	if err := p.call(ctx, methodAccounts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var out []string
	if err := p.call(ctx, methodRequestAccounts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *RPCProvider) SignMessage(ctx context.Context, account, message string) (string, error) {
	if account == "" {
		return "", errors.New("sign message: empty account")
	}

	params := []any{"0x" + hex.EncodeToString([]byte(message)), account}

	var sig string
	if err := p.call(ctx, methodPersonalSign, params, &sig); err != nil {
		return "", err
	}
	if sig == "" {
		return "", fmt.Errorf("%s: empty signature", methodPersonalSign)
	}
	return sig, nil
}

func (p *RPCProvider) call(ctx context.Context, method string, params []any, out any) error {
	if p.endpoint == "" {
		return fmt.Errorf("%w: no wallet endpoint configured", ErrWalletUnavailable)
	}
	if params == nil {
		params = []any{}
	}

	id := uuid.NewString()
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrWalletUnavailable, method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrWalletUnavailable, method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		p.log.Debug(ctx, "wallet call failed", "method", method, "id", id, "code", rpcResp.Error.Code)
		if rpcResp.Error.rejected() {
			return fmt.Errorf("%w: %w", ErrUserRejected, rpcResp.Error)
		}
		return rpcResp.Error
	}
	if rpcResp.ID != "" && rpcResp.ID != id {
		return fmt.Errorf("%s: response id %q does not match request", method, rpcResp.ID)
	}

	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
