// Package session tracks the admin's login state on the client side.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"

	"storefront/internal/domain"
	"storefront/internal/storefront/client"
)

// State is the admin session lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Authenticator exchanges credentials for a token and later confirms the
// token is still honoured.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResult, error)
	ValidateSession(ctx context.Context, token string) (string, error)
}

type snapshot struct {
	state   State
	session domain.Session
}

// Manager holds at most one admin session. The token never leaves the
// process; logout simply forgets it.
type Manager struct {
	auth    Authenticator
	logger  *log.Logger
	current atomic.Pointer[snapshot]
}

func New(auth Authenticator, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Manager{auth: auth, logger: logger}
	m.current.Store(&snapshot{})
	return m
}

// Login authenticates against the remote authenticator. Empty credentials are
// rejected without a network call. Any failure leaves the manager
// unauthenticated.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password required", domain.ErrValidation)
	}
	m.current.Store(&snapshot{state: Authenticating})

	res, err := m.auth.Login(ctx, username, password)
	if err != nil {
		m.current.Store(&snapshot{})
		m.logger.Printf("session: login failed user=%s: %v", username, err)
		return err
	}
	m.current.Store(&snapshot{
		state: Authenticated,
		session: domain.Session{
			Authenticated: true,
			Token:         res.Token,
			Username:      res.Username,
		},
	})
	m.logger.Printf("session: logged in user=%s", res.Username)
	return nil
}

// Verify asks the authenticator whether the held token is still valid. A
// token the authenticator no longer knows ends the local session; a transport
// failure leaves it in place.
func (m *Manager) Verify(ctx context.Context) error {
	cur := m.current.Load()
	if cur.state != Authenticated {
		return domain.ErrNotAuthenticated
	}
	if _, err := m.auth.ValidateSession(ctx, cur.session.Token); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) && m.current.CompareAndSwap(cur, &snapshot{}) {
			m.logger.Printf("session: token rejected, signed out user=%s", cur.session.Username)
		}
		return err
	}
	return nil
}

// Logout discards the token and display name.
func (m *Manager) Logout() {
	prev := m.current.Swap(&snapshot{})
	if prev.state == Authenticated {
		m.logger.Printf("session: logged out user=%s", prev.session.Username)
	}
}

// Token returns the session token when authenticated.
func (m *Manager) Token() (string, bool) {
	s := m.current.Load()
	if s.state != Authenticated {
		return "", false
	}
	return s.session.Token, true
}

func (m *Manager) Session() domain.Session {
	return m.current.Load().session
}

func (m *Manager) State() State {
	return m.current.Load().state
}
