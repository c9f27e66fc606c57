package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	repo "github.com/oksasatya/go-account-service/internal/domain/repository"
	"github.com/oksasatya/go-account-service/internal/infrastructure/search"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

// PasswordHasher is satisfied by helpers.PBKDF2Hasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) bool
}

// UserSearcher is satisfied by search.UserIndex.
type UserSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.UserDocument, error)
}

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// Service runs the account use cases: registration, login/logout and the
// admin-gated listing, promotion, deletion and search.
type Service struct {
	Repo     repo.UserRepository
	Sessions *SessionBinder
	Guard    *Guard
	Hasher   PasswordHasher
	Events   EventPublisher
	Search   UserSearcher
	Logger   *logrus.Logger

	now       func() time.Time
	dummyOnce sync.Once
	dummyHash string
}

func NewService(r repo.UserRepository, sessions repo.SessionStore, hasher PasswordHasher, logger *logrus.Logger) *Service {
	binder := NewSessionBinder(sessions)
	return &Service{
		Repo:     r,
		Sessions: binder,
		Guard:    NewGuard(r, binder),
		Hasher:   hasher,
		Logger:   logger,
		now:      time.Now,
	}
}

// WithEvents enables account event publishing.
func (s *Service) WithEvents(p EventPublisher) *Service {
	s.Events = p
	return s
}

// WithSearch enables admin user search.
func (s *Service) WithSearch(x UserSearcher) *Service {
	s.Search = x
	return s
}

// Register validates the password, hashes it and creates a non-admin user.
func (s *Service) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if violations := validation.ValidatePassword(password); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	metrics.Add(metricRegistered, 1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	s.publish(ctx, entity.EventUserRegistered, u)
	return u, nil
}

// Login checks the credentials and binds the session to the user. Unknown
// usernames and wrong passwords fail identically with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, sid, username, password string) (*entity.Session, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		// burn the same work as a real comparison
		s.Hasher.Verify(password, s.dummy())
		metrics.Add(metricLoginFailed, 1)
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		metrics.Add(metricLoginFailed, 1)
		return nil, ErrInvalidCredentials
	}
	if err := s.Sessions.Bind(ctx, sid, u.Username); err != nil {
		return nil, err
	}
	metrics.Add(metricLoginSucceeded, 1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user logged in")
	}
	return &entity.Session{ID: sid, Username: u.Username}, nil
}

// Logout clears the session. It never fails; store errors are only logged.
func (s *Service) Logout(ctx context.Context, sid string) {
	if err := s.Sessions.Clear(ctx, sid); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("clear session failed")
	}
}

// CurrentUser returns the session's user, or nil for anonymous sessions and
// sessions whose user no longer exists.
func (s *Service) CurrentUser(ctx context.Context, sid string) (*entity.User, error) {
	username, ok, err := s.Sessions.CurrentUsername(ctx, sid)
	if err != nil || !ok {
		return nil, err
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// ListUsers returns every user, newest first, to any authenticated session.
func (s *Service) ListUsers(ctx context.Context, sid string) ([]*entity.User, error) {
	_, ok, err := s.Sessions.CurrentUsername(ctx, sid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.Repo.ListByCreatedDesc(ctx)
}

// AdminListUsers returns every user, newest first, to admins.
func (s *Service) AdminListUsers(ctx context.Context, sid string) ([]*entity.User, error) {
	if _, err := s.Guard.RequireAdmin(ctx, sid); err != nil {
		return nil, err
	}
	return s.Repo.ListByCreatedDesc(ctx)
}

// PromoteUser grants admin rights to the user with the given id.
func (s *Service) PromoteUser(ctx context.Context, sid string, id int64) (*entity.User, error) {
	actor, err := s.Guard.RequireAdmin(ctx, sid)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.Promote(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"actor_id": actor.ID, "user_id": u.ID}).Info("user promoted")
	}
	s.publish(ctx, entity.EventUserPromoted, u)
	return u, nil
}

// DeleteUser removes the user with the given id. The root admin is refused
// with ErrProtectedAccount whoever asks.
func (s *Service) DeleteUser(ctx context.Context, sid string, id int64) (*entity.User, error) {
	actor, err := s.Guard.RequireAdmin(ctx, sid)
	if err != nil {
		return nil, err
	}
	u, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"actor_id": actor.ID, "user_id": u.ID}).Info("user deleted")
	}
	s.publish(ctx, entity.EventUserDeleted, u)
	return u, nil
}

// SearchUsers queries the search index for admins. size is clamped to
// 1..50 and defaults to 10.
func (s *Service) SearchUsers(ctx context.Context, sid, q string, size int) ([]search.UserDocument, error) {
	if _, err := s.Guard.RequireAdmin(ctx, sid); err != nil {
		return nil, err
	}
	if s.Search == nil || q == "" {
		return []search.UserDocument{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	return s.Search.Search(ctx, q, size)
}

// EnsureRootAdmin creates the root admin account if it does not exist yet.
// It reports whether an account was created.
func (s *Service) EnsureRootAdmin(ctx context.Context, password string) (bool, error) {
	_, err := s.Repo.GetByUsername(ctx, entity.RootAdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}
	if violations := validation.ValidatePassword(password); len(violations) > 0 {
		return false, &ValidationError{Violations: violations}
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return false, err
	}
	u := &entity.User{Username: entity.RootAdminUsername, PasswordHash: hash, IsAdmin: true}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return false, nil
		}
		return false, oops.In("account_service").Code("ROOT_ADMIN_SEED_FAILED").Wrap(err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("root admin created")
	}
	s.publish(ctx, entity.EventUserRegistered, u)
	return true, nil
}

// dummy returns a hash of a throwaway secret, computed once with the
// configured hasher so unknown-user logins cost the same as real ones.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password-0")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
