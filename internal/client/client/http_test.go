package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	mu     sync.Mutex
	token  string
	purges int
	err    error
}

func (f *fakeTokens) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.err
}

func (f *fakeTokens) Purge(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purges++
	f.token = ""
	return nil
}

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/api/", tokens)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:8000", nil)
	require.Error(t, err)
}

func TestHTTPClient_AttachesHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = io.WriteString(w, `{"id":1,"name":"a"}`)
	}, &fakeTokens{token: "abc"})

	var out item
	require.NoError(t, c.Get(context.Background(), "/doctors/1/", &out))

	assert.Equal(t, "/api/doctors/1/", got.URL.Path)
	assert.Equal(t, "Bearer abc", got.Header.Get(common.AuthorizationHeaderName))
	assert.NotEmpty(t, got.Header.Get(common.RequestIDHeaderName))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, item{ID: 1, Name: "a"}, out)
}

func TestHTTPClient_NoTokenNoHeader(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get(common.AuthorizationHeaderName)
		_, _ = io.WriteString(w, `[]`)
	}, &fakeTokens{})

	var out []item
	require.NoError(t, c.Get(context.Background(), "/doctors/", &out))
	assert.Empty(t, auth)
	assert.Empty(t, out)
}

func TestHTTPClient_PostSendsJSON(t *testing.T) {
	var body map[string]any
	var method, ctype string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ctype = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"status":"success","data":{"id":7,"name":"x"}}`)
	}, nil)

	var out item
	require.NoError(t, c.Post(context.Background(), "/doctors/", map[string]string{"name": "x"}, &out))

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/json", ctype)
	assert.Equal(t, "x", body["name"])
	assert.Equal(t, 7, out.ID)
}

func TestHTTPClient_UnauthorizedPurges(t *testing.T) {
	tokens := &fakeTokens{token: "stale"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Invalid token"}`)
	}, tokens)

	err := c.Get(context.Background(), "/doctors/", &[]item{})
	require.ErrorIs(t, err, common.ErrUnauthorized)

	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid token", apiErr.Message)
	assert.Equal(t, 1, tokens.purges)

	// a second 401 purges again without failing
	err = c.Delete(context.Background(), "/doctors/1/")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 2, tokens.purges)
}

func TestHTTPClient_UnauthorizedHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	tokens := &fakeTokens{token: "t"}
	calls := 0
	c, err := NewHTTPClient(srv.URL, tokens, WithUnauthorizedHandler(func(context.Context) {
		calls++
		assert.Equal(t, 1, tokens.purges)
	}))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/auth/verify-session/", &item{})
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, calls)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"detail":"Not found."}`, common.ErrNotFound},
		{"server error", http.StatusInternalServerError, `<html>boom</html>`, common.ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ``, common.ErrUnavailable},
		{"validation 400", http.StatusBadRequest, `{"emailID":["Enter a valid email address."]}`, common.ErrValidation},
		{"validation 422", http.StatusUnprocessableEntity, `{"status":"error","data":{"date":"required"},"message":"invalid"}`, common.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{token: "t"}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, tokens)

			err := c.Get(context.Background(), "/x/", &item{})
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, tokens.purges)
		})
	}
}

func TestHTTPClient_OtherStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":"forbidden"}`)
	}, nil)

	err := c.Get(context.Background(), "/x/", &item{})
	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "forbidden", apiErr.Message)
	assert.NotErrorIs(t, err, common.ErrUnauthorized)
}

func TestHTTPClient_ValidationFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"emailID":["Enter a valid email address."],"docID":"duplicate"}`)
	}, nil)

	err := c.Post(context.Background(), "/doctors/", item{}, nil)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"Enter a valid email address."}, ve.Fields["emailID"])
	assert.Equal(t, []string{"duplicate"}, ve.Fields["docID"])
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, nil, WithTimeout(time.Second))
	require.NoError(t, err)

	err = c.Get(context.Background(), "/doctors/", &[]item{})
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.True(t, IsRetryable(err))
}

func TestHTTPClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/doctors/", &item{})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, common.ErrUnavailable)
}

func TestHTTPClient_TokenReadError(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeTokens{err: errors.New("disk gone")})

	err := c.Get(context.Background(), "/doctors/", &item{})
	require.Error(t, err)
	assert.False(t, called)
}

func TestHTTPClient_MalformedSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success","data":null}`)
	}, nil)

	err := c.Get(context.Background(), "/dashboard/getCount", &item{})
	require.ErrorIs(t, err, common.ErrMalformedResponse)
}

func TestHTTPClient_DeleteNoContent(t *testing.T) {
	var method string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, c.Delete(context.Background(), "/patients/3/"))
	assert.Equal(t, http.MethodDelete, method)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(common.ErrUnavailable))
	assert.True(t, IsRetryable(common.NewAPIError(503, "", common.ErrUnavailable)))
	assert.False(t, IsRetryable(common.NewAPIError(401, "", common.ErrUnauthorized)))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(nil))
}
