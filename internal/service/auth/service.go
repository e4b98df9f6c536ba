package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
	adminrepo "storefront/internal/repository/admin"
	sessionrepo "storefront/internal/repository/session"
)

// ErrCredentialsRequired is returned when username or password is blank.
var ErrCredentialsRequired = fmt.Errorf("%w: Username and password required", domain.ErrValidation)

// Service handles admin login and session validation.
type Service struct {
	repo   adminrepo.Repository
	tokens *tokenManager
	ttl    time.Duration
	logger *log.Logger
}

func New(repo adminrepo.Repository, sessions sessionrepo.Store, secret string, ttl time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		repo:   repo,
		tokens: newTokenManager(sessions, secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Login checks the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrCredentialsRequired
	}
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("auth: unknown admin username=%s", username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		s.logger.Printf("auth: password mismatch username=%s", username)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, *a, s.ttl)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	s.logger.Printf("auth: login username=%s", a.Username)
	return token, a, nil
}

// Validate returns the username bound to a live token.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	sess, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	return sess.Username, nil
}

// Logout ends the session behind token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

// HashPassword produces the stored form of an admin password.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password required", domain.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
