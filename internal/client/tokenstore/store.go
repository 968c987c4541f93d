// Package tokenstore persists the session credentials (access and refresh
// token) so a session survives process restarts. The store is a dumb byte
// store: it performs no validation of the values it holds.
package tokenstore

import "context"

// Keys under which credentials are persisted.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
)

// Store is the durable credential holder used by the session and the
// authenticated transport.
type Store interface {
	// Get returns the current access and refresh token. Absent values are
	// returned as empty strings.
	Get(ctx context.Context) (access string, refresh string, err error)

	// Set writes both tokens, overwriting any previous values.
	Set(ctx context.Context, access string, refresh string) error

	// SetAccess writes only the access token. Used after a refresh response
	// that did not rotate the refresh token.
	SetAccess(ctx context.Context, access string) error

	// Clear removes both tokens.
	Clear(ctx context.Context) error
}
