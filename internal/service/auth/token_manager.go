package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"storefront/internal/domain"
	sessionrepo "storefront/internal/repository/session"
)

type claims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// tokenManager signs HS256 tokens and records their id in the session store,
// so a token is only honoured while its session exists.
type tokenManager struct {
	store  sessionrepo.Store
	secret []byte
	now    func() time.Time
}

func newTokenManager(store sessionrepo.Store, secret string) *tokenManager {
	return &tokenManager{store: store, secret: []byte(secret), now: time.Now}
}

func (m *tokenManager) Issue(ctx context.Context, admin domain.Admin, ttl time.Duration) (string, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	for i := 0; i < 5; i++ {
		id := uuid.NewString()
		err := m.store.Put(ctx, sessionrepo.Session{
			Token:     id,
			AdminID:   admin.ID,
			Username:  admin.Username,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		})
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			Username: admin.Username,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        id,
				Subject:   strconv.FormatInt(admin.ID, 10),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		})
		return tok.SignedString(m.secret)
	}
	return "", errors.New("token collision")
}

// Validate returns the live session behind raw.
func (m *tokenManager) Validate(ctx context.Context, raw string) (*sessionrepo.Session, bool) {
	c, ok := m.parse(raw)
	if !ok {
		return nil, false
	}
	sess, err := m.store.Get(ctx, c.ID)
	if err != nil {
		return nil, false
	}
	return sess, true
}

// Revoke drops the session behind raw. Unknown or malformed tokens are
// reported as domain.ErrNotFound.
func (m *tokenManager) Revoke(ctx context.Context, raw string) error {
	c, ok := m.parse(raw)
	if !ok {
		return domain.ErrNotFound
	}
	return m.store.Delete(ctx, c.ID)
}

func (m *tokenManager) parse(raw string) (*claims, bool) {
	if raw == "" {
		return nil, false
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var c claims
	tok, err := parser.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !tok.Valid || c.ID == "" {
		return nil, false
	}
	return &c, true
}
