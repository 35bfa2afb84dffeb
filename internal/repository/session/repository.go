package session

import "context"

// Store is the key-value session service backing anonymous identity. Get
// returns an empty string, not an error, when the session has no stored key.
type Store interface {
	Get(ctx context.Context, sessionID string) (string, error)
	Set(ctx context.Context, sessionID, customerKey string) error
}
