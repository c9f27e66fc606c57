package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

// UserRepository keeps users in process memory. Every method holds the
// mutex for its whole duration, so each mutation is atomic.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*entity.User
	byName map[string]int64
	now    func() time.Time
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:   make(map[int64]*entity.User),
		byName: make(map[string]int64),
		now:    time.Now,
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[u.Username]; taken {
		return repository.ErrDuplicateUsername
	}
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = r.now().UTC()
	u.Version = 1
	stored := *u
	r.byID[u.ID] = &stored
	r.byName[u.Username] = u.ID
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) ListByCreatedDesc(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *UserRepository) Promote(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.IsAdmin = true
	u.Version++
	return clone(u), nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if u.IsRootAdmin() {
		return nil, repository.ErrProtectedAccount
	}
	delete(r.byID, id)
	delete(r.byName, u.Username)
	u.Version++
	return u, nil
}

func clone(u *entity.User) *entity.User {
	c := *u
	return &c
}

var _ repository.UserRepository = (*UserRepository)(nil)
