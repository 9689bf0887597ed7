// Package metadata is the client's local key/value storage. It plays the
// role of browser local storage: the session credentials live here between
// runs. SQLite is the default backend; Redis serves shared kiosk setups.
package metadata

import (
	"context"
)

// Repository is a flat key/value store.
//
// Get returns (nil, nil) for an absent key. SetMany and DeleteMany are
// atomic: either every key is written (removed) or none is. Deleting absent
// keys is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
	Close() error
}
