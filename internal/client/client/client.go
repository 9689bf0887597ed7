package client

import "context"

// Client is the transport contract used by the services. Paths are relative
// to the API base URL and start with a slash. A nil out discards the body.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Patch(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

// TokenSource yields the bearer token to attach and forgets it on 401.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Purge(ctx context.Context) error
}
