package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned by Get when no data exists for the session.
var ErrNoSession = errors.New("session: no data stored")

// Store keeps opaque per-visitor payloads keyed by session id. The cart is
// the only payload the core stores.
type Store interface {
	Get(ctx context.Context, sid string) ([]byte, error)
	Set(ctx context.Context, sid string, data []byte) error
	Delete(ctx context.Context, sid string) error
}
