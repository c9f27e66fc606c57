package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
)

// Decision is the outcome of an admin authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny_unauthenticated"
	case DenyForbidden:
		return "deny_forbidden"
	default:
		return "unknown"
	}
}

// Err maps a denial to its error kind; Allow maps to nil.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case DenyUnauthenticated:
		return ErrUnauthenticated
	default:
		return ErrForbidden
	}
}

// Guard decides whether a session may run an admin-only use case.
// Nothing is cached: every call reloads the user so promotions and
// deletions apply to the very next request.
type Guard struct {
	Repo     repo.UserRepository
	Sessions *SessionBinder
}

func NewGuard(r repo.UserRepository, sessions *SessionBinder) *Guard {
	return &Guard{Repo: r, Sessions: sessions}
}

// IsAdminAuthorized resolves the session's user and returns the decision.
// The user is returned whenever one was resolved. A non-nil error means the
// check itself failed and no decision was reached.
func (g *Guard) IsAdminAuthorized(ctx context.Context, sid string) (Decision, *entity.User, error) {
	username, ok, err := g.Sessions.CurrentUsername(ctx, sid)
	if err != nil {
		return DenyUnauthenticated, nil, err
	}
	if !ok {
		return DenyUnauthenticated, nil, nil
	}
	u, err := g.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return DenyForbidden, nil, nil
		}
		return DenyForbidden, nil, err
	}
	if !u.IsAdmin {
		return DenyForbidden, u, nil
	}
	return Allow, u, nil
}

// RequireAdmin returns the acting admin, or ErrUnauthenticated / ErrForbidden.
func (g *Guard) RequireAdmin(ctx context.Context, sid string) (*entity.User, error) {
	d, u, err := g.IsAdminAuthorized(ctx, sid)
	if err != nil {
		return nil, err
	}
	if err := d.Err(); err != nil {
		recordDenial(d)
		return nil, err
	}
	return u, nil
}
