package cache

import (
	"context"
	"errors"
	"fmt"
)

// sessionPrefix is the Redis key prefix for token→user associations.
const sessionPrefix = "sess:"

// ErrSessionNotFound indicates no user id is stored for the given token.
var ErrSessionNotFound = errors.New("session not found")

// PutSession associates a token with a user id.
// An existing value for the same token is overwritten. The association
// itself carries no expiration; expiry is encoded in the signed token.
func (c *Cache) PutSession(ctx context.Context, token, userID string) error {
	if err := c.client.Set(ctx, sessionPrefix+token, userID, 0).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// ResolveSession returns the user id associated with a token.
// A missing key and any store error both map to ErrSessionNotFound;
// the caller cannot act on the distinction.
func (c *Cache) ResolveSession(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, sessionPrefix+token).Result()
	if err != nil {
		return "", ErrSessionNotFound
	}
	return userID, nil
}
