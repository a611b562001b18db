// Package metadata stores small key/value facts about the local session,
// such as the session token handed over by the auth provider.
package metadata

import "context"

// Well-known keys.
const (
	KeySessionToken = "session_token"
	KeyLastScreenID = "last_screen_id"
)

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
