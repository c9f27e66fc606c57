package application

import (
	"context"

	"github.com/samber/oops"

	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// SessionBinder maps session tokens to authenticated usernames. The token is
// treated as an opaque key.
type SessionBinder struct {
	Store repository.SessionStore
}

func NewSessionBinder(store repository.SessionStore) *SessionBinder {
	return &SessionBinder{Store: store}
}

// Bind associates username with the session, replacing any prior association.
func (b *SessionBinder) Bind(ctx context.Context, sid, username string) error {
	if sid == "" {
		return oops.In("session_binder").Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}
	return b.Store.Set(ctx, sid, username)
}

// CurrentUsername returns the bound username; ok is false for anonymous sessions.
func (b *SessionBinder) CurrentUsername(ctx context.Context, sid string) (username string, ok bool, err error) {
	if sid == "" {
		return "", false, nil
	}
	username, ok, err = b.Store.Get(ctx, sid)
	if err != nil || !ok || username == "" {
		return "", false, err
	}
	return username, true, nil
}

// Clear leaves the session anonymous.
func (b *SessionBinder) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return b.Store.Delete(ctx, sid)
}
