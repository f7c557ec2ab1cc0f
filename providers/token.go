package providers

import "context"

// ITokenProvider defines vendor access token store.
type ITokenProvider interface {
	// GetToken returns cached token or obtains a new one.
	// Non-positive maxRetries means configured default.
	GetToken(ctx context.Context, maxRetries int) (string, error)
	// Invalidate drops cached token.
	Invalidate()
}
