package auth

import (
	"context"

	"race-admin/core/models"
	"race-admin/core/policy"
	"race-admin/core/session"

	"go.uber.org/zap"
)

// Authenticator verifies account credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, kind models.Kind, account, secret string) (policy.Principal, error)
}

// Service logs principals in and out.
type Service struct {
	logger   *zap.Logger
	accounts Authenticator
	sessions session.Store
}

// NewService creates a new auth service.
func NewService(logger *zap.Logger, accounts Authenticator, sessions session.Store) *Service {
	return &Service{logger: logger, accounts: accounts, sessions: sessions}
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, kind models.Kind, account, secret string) (string, policy.Principal, error) {
	p, err := s.accounts.Authenticate(ctx, kind, account, secret)
	if err != nil {
		return "", policy.Principal{}, err
	}
	token, err := s.sessions.Create(ctx, p)
	if err != nil {
		return "", policy.Principal{}, err
	}
	return token, p, nil
}

// Logout closes the session of token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
