package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	tokens    TokenSource
	log       logging.Logger
	requestID func() string

	onUnauthorized func(ctx context.Context)
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// WithUnauthorizedHandler registers fn to run after a 401 has purged the
// stored credentials, so in-memory session holders can drop theirs too.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(h *HTTPClient) { h.onUnauthorized = fn }
}

// NewHTTPClient builds an adapter for baseURL (for example
// "http://localhost:8000/api"). tokens may be nil for anonymous use.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: defaultTimeout},
		tokens:    tokens,
		log:       logging.Nop(),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *HTTPClient) Patch(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPatch, path, in, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, in any) (*http.Request, string, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	return req, reqID, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	req, reqID, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	log := c.log.With("method", method, "path", path, "request_id", reqID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Debug(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", common.ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeSuccess(body, out)
	}
	return c.mapError(ctx, log, resp.StatusCode, body)
}

func (c *HTTPClient) mapError(ctx context.Context, log logging.Logger, status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		if c.tokens != nil {
			if err := c.tokens.Purge(ctx); err != nil {
				log.Warn(ctx, "failed to purge credentials", "error", err)
			} else {
				log.Info(ctx, "session rejected, credentials purged")
			}
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return common.NewAPIError(status, messageFromBody(body), common.ErrUnauthorized)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return validationFromBody(body)
	case status == http.StatusNotFound:
		return common.NewAPIError(status, messageFromBody(body), common.ErrNotFound)
	case status >= 500:
		return common.NewAPIError(status, messageFromBody(body), common.ErrUnavailable)
	default:
		return common.NewAPIError(status, messageFromBody(body), nil)
	}
}

// IsRetryable reports whether err is a transport-level failure. The adapter
// never retries; callers use this to word their messages.
func IsRetryable(err error) bool {
	return errors.Is(err, common.ErrUnavailable)
}
