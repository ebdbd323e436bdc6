// Package store defines the persistence adapter used by every service.
//
// THE CONTRACT:
// All state lives in a handful of named collections, each persisted as
// one JSON payload under its key. The KV interface is deliberately tiny:
// get a payload, set a payload, set several payloads together, wipe
// everything. Anything that can do those four things can back the app.
//
// TWO SCOPES:
// The app uses two KV instances at runtime — a durable one (SQLite
// file, survives restarts) and an ephemeral one (in-process map, gone
// on restart). Remembered login sessions go to the durable scope,
// one-time sessions to the ephemeral scope; everything else is durable.
package store

import "context"

// Collection keys. These are the only names ever written to a KV.
const (
	KeyUsers    = "users"
	KeyProducts = "products"
	KeySales    = "sales"
	KeySessions = "sessions"
	KeyTheme    = "theme"
)

// KV is the raw key-value store contract.
//
// Get returns (nil, nil) when the key has never been written — absence
// is not an error, it just means an empty collection.
//
// SetMany applies all pairs as one atomic unit: either every payload is
// persisted or none is. The sale recorder relies on this to commit the
// stock decrement and the appended sale together.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	SetMany(ctx context.Context, pairs map[string][]byte) error
	Clear(ctx context.Context) error
}
