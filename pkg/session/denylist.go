package session

import (
	"context"
	"time"
)

// Denylist is the optional revocation store consulted before trusting a
// cookie's claims. Without one, logout relies on cookie deletion alone and a
// stolen token stays valid until expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
