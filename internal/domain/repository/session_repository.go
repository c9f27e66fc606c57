package repository

import "context"

// SessionStore keeps an opaque value per session token.
// Get returns ok=false when nothing is stored for the token.
type SessionStore interface {
	Get(ctx context.Context, token string) (value string, ok bool, err error)
	Set(ctx context.Context, token, value string) error
	Delete(ctx context.Context, token string) error
}
