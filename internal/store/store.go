package store

import (
	"context"
	"errors"

	"github.com/singerjob/singerjob/internal/domain/user"
)

// Store is the durable string-keyed record store every service sits
// on. Values are JSON-encoded records; absence is ErrNotFound, never
// a nil-slice ambiguity. Implementations must not return partial
// writes: a Set either lands whole or errors.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("store: key not found")

// Fixed keys for the named collections.
const (
	KeySession      = "session:current"
	KeySavedOpps    = "saved:opportunities"
	KeyCatalog      = "catalog:opportunities"
	KeyAuthToken    = "auth:token"
	KeyRefreshToken = "auth:refreshToken"
	keyUsersPrefix  = "users:"
)

// UsersKey returns the collection key for a user-type variant.
func UsersKey(t user.UserType) string {
	return keyUsersPrefix + string(t)
}
