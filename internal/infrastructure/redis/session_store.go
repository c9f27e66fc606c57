package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/pkg/helpers"
)

type sessionRecord struct {
	Value string `json:"value"`
}

// SessionStore keeps session values in Redis under user:session:<token>,
// expiring after TTL.
type SessionStore struct {
	RDB goredis.Cmdable
	TTL time.Duration
}

func NewSessionStore(rdb goredis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{RDB: rdb, TTL: ttl}
}

func (s *SessionStore) Get(ctx context.Context, token string) (string, bool, error) {
	var rec sessionRecord
	ok, err := helpers.RedisGetJSON(ctx, s.RDB, helpers.KeySession(token), &rec)
	if err != nil {
		return "", false, oops.In("session_store").Code("SESSION_READ_FAILED").Wrapf(err, "read session")
	}
	return rec.Value, ok, nil
}

func (s *SessionStore) Set(ctx context.Context, token, value string) error {
	if err := helpers.RedisSetJSON(ctx, s.RDB, helpers.KeySession(token), sessionRecord{Value: value}, s.TTL); err != nil {
		return oops.In("session_store").Code("SESSION_WRITE_FAILED").Wrapf(err, "write session")
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := helpers.RedisDel(ctx, s.RDB, helpers.KeySession(token)); err != nil {
		return oops.In("session_store").Code("SESSION_DELETE_FAILED").Wrapf(err, "delete session")
	}
	return nil
}

var _ repository.SessionStore = (*SessionStore)(nil)
