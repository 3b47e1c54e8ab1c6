package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ospteam/marketplace/internal/repository"
	"github.com/ospteam/marketplace/internal/session"
	"github.com/ospteam/marketplace/pkg/logger"
)

type SessionStore interface {
	Create(p session.Principal) (string, error)
	Get(token string) (*session.Principal, error)
	Destroy(token string) error
}

type AuthService struct {
	userRepo UserRepository
	sessions SessionStore
}

func NewAuthService(userRepo UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// SignIn resolves the account by uid, compares the password in plaintext and
// mints a session token. The authenticated flag on the row mirrors session
// existence; nothing reads it for authorization.
func (s *AuthService) SignIn(ctx context.Context, uid, password string) (string, *session.Principal, error) {
	u, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%w: user %s", ErrNotFound, uid)
		}
		return "", nil, err
	}
	if u.Password != password {
		return "", nil, ErrWrongPassword
	}

	p := session.Principal{
		UserUID: u.UID,
		Role:    u.Role,
		Name:    u.Name,
		Email:   u.Email,
	}
	token, err := s.sessions.Create(p)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.userRepo.SetAuthenticated(ctx, u.UID, true); err != nil {
		logger.Warn("Failed to set authenticated flag", "uid", u.UID, "error", err)
	}

	logger.Info("User signed in", "uid", u.UID, "role", string(u.Role))

	return token, &p, nil
}

// Resolve maps a session token to its principal.
func (s *AuthService) Resolve(token string) (*session.Principal, error) {
	p, err := s.sessions.Get(token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("%w: session", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	p, err := s.sessions.Get(token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.sessions.Destroy(token); err != nil {
		return err
	}
	if err := s.userRepo.SetAuthenticated(ctx, p.UserUID, false); err != nil {
		logger.Warn("Failed to clear authenticated flag", "uid", p.UserUID, "error", err)
	}

	logger.Info("User signed out", "uid", p.UserUID)

	return nil
}
