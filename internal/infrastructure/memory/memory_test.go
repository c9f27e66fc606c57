package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := &entity.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice"}))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	got.IsAdmin = true

	again, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, again.IsAdmin)
}

func TestUserRepository_DuplicateUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Create(ctx, &entity.User{Username: "alice"})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrDuplicateUsername):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dup)

	all, err := repo.ListByCreatedDesc(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		if tick == 3 {
			return base.Add(time.Minute) // same instant as the first user
		}
		return base.Add(time.Duration(tick) * time.Minute)
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.User{Username: fmt.Sprintf("u%d", i)}))
	}

	all, err := repo.ListByCreatedDesc(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"u1", "u2", "u0"}, []string{all[0].Username, all[1].Username, all[2].Username})
}

func TestUserRepository_PromoteAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	admin := &entity.User{Username: entity.RootAdminUsername, IsAdmin: true}
	bob := &entity.User{Username: "bob"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, bob))
	assert.Equal(t, int64(1), bob.Version)

	promoted, err := repo.Promote(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)
	promoted, err = repo.Promote(ctx, bob.ID)
	require.NoError(t, err, "promote is idempotent")
	assert.True(t, promoted.IsAdmin)
	assert.Equal(t, int64(3), promoted.Version)

	_, err = repo.Promote(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Delete(ctx, admin.ID)
	assert.ErrorIs(t, err, repository.ErrProtectedAccount)
	_, err = repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", deleted.Username)
	assert.Equal(t, int64(4), deleted.Version)
	_, err = repo.Delete(ctx, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// the name is free again
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "bob"}))
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, ok, err := store.Get(ctx, "t")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "t", "alice"))
	v, ok, err := store.Get(ctx, "t")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	now = now.Add(time.Minute)
	_, ok, err = store.Get(ctx, "t")
	require.NoError(t, err)
	assert.False(t, ok, "entries expire after the ttl")

	require.NoError(t, store.Set(ctx, "t", "bob"))
	require.NoError(t, store.Delete(ctx, "t"))
	_, ok, _ = store.Get(ctx, "t")
	assert.False(t, ok)
}
