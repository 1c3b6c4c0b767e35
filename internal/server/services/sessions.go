// Package services contains server-side business logic: sessions and
// accounts, and the economy rules that mutate coins, highscores and tags.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/auth"
	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/sessions"
	"github.com/google/uuid"
)

// IssuedSession is what the HTTP layer puts into the cookie.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// SessionService is the session guard: it opens sessions on login/signup,
// resolves cookie tokens to an Identity and closes sessions on logout.
type SessionService struct {
	repo     sessions.Repository
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewSessionService(repo sessions.Repository, cfg *config.Config) *SessionService {
	return &SessionService{
		repo:     repo,
		secret:   []byte(cfg.SecretKey),
		validity: cfg.SessionValidityDuration,
		now:      time.Now,
	}
}

// Open persists a new session for userName and returns its signed token.
func (s *SessionService) Open(ctx context.Context, userName string) (*IssuedSession, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserName:  userName,
		ExpiresAt: now.Add(s.validity),
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(session.ID, userName, s.secret, session.ExpiresAt)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &IssuedSession{Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Authenticate resolves a cookie token to an Identity. Every form of bad
// token yields common.ErrorUnauthorized; store failures are returned wrapped.
func (s *SessionService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return models.Identity{}, common.ErrorUnauthorized
	}

	session, err := s.repo.Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Identity{}, common.ErrorUnauthorized
		}
		return models.Identity{}, fmt.Errorf("error searching session: %w", err)
	}

	if session.Expired(s.now()) {
		_ = s.repo.Delete(ctx, session.ID)
		return models.Identity{}, common.ErrorUnauthorized
	}
	if session.UserName != claims.Subject {
		return models.Identity{}, common.ErrorUnauthorized
	}

	return models.Identity{UserName: session.UserName}, nil
}

// Close deletes the session behind token. Tokens that don't verify are ignored.
func (s *SessionService) Close(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil
	}
	if err := s.repo.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// Sweep removes expired sessions.
func (s *SessionService) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}
