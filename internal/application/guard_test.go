package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/infrastructure/memory"
)

type failingStore struct{ err error }

func (s failingStore) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s failingStore) Set(context.Context, string, string) error         { return s.err }
func (s failingStore) Delete(context.Context, string) error              { return s.err }

func TestDecision(t *testing.T) {
	assert.NoError(t, Allow.Err())
	assert.ErrorIs(t, DenyUnauthenticated.Err(), ErrUnauthenticated)
	assert.ErrorIs(t, DenyForbidden.Err(), ErrForbidden)
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "deny_forbidden", DenyForbidden.String())
	assert.Equal(t, "unknown", Decision(42).String())
}

func TestGuard_IsAdminAuthorized(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "root", PasswordHash: "x", IsAdmin: true}))
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "bob", PasswordHash: "x"}))

	binder := NewSessionBinder(memory.NewSessionStore(time.Hour))
	require.NoError(t, binder.Bind(ctx, "root-sid", "root"))
	require.NoError(t, binder.Bind(ctx, "bob-sid", "bob"))
	require.NoError(t, binder.Bind(ctx, "ghost-sid", "ghost"))
	g := NewGuard(repo, binder)

	tests := []struct {
		sid  string
		want Decision
		user string
	}{
		{"", DenyUnauthenticated, ""},
		{"unbound", DenyUnauthenticated, ""},
		{"ghost-sid", DenyForbidden, ""},
		{"bob-sid", DenyForbidden, "bob"},
		{"root-sid", Allow, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.sid, func(t *testing.T) {
			d, u, err := g.IsAdminAuthorized(ctx, tt.sid)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			if tt.user == "" {
				assert.Nil(t, u)
			} else {
				require.NotNil(t, u)
				assert.Equal(t, tt.user, u.Username)
			}
		})
	}
}

func TestGuard_StoreFailureIsNotADecision(t *testing.T) {
	boom := errors.New("redis unavailable")
	g := NewGuard(memory.NewUserRepository(), NewSessionBinder(failingStore{err: boom}))

	_, err := g.RequireAdmin(context.Background(), "sid")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestSessionBinder(t *testing.T) {
	ctx := context.Background()
	b := NewSessionBinder(memory.NewSessionStore(time.Hour))

	assert.Error(t, b.Bind(ctx, "", "alice"))
	assert.NoError(t, b.Clear(ctx, ""))

	require.NoError(t, b.Bind(ctx, "s", "alice"))
	name, ok, err := b.CurrentUsername(ctx, "s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	require.NoError(t, b.Clear(ctx, "s"))
	_, ok, err = b.CurrentUsername(ctx, "s")
	require.NoError(t, err)
	assert.False(t, ok)
}
