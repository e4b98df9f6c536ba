package session

import (
	"context"
	"time"
)

// Session is a server-side record of an issued admin token.
type Session struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"adminId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store keeps sessions until they expire or are deleted. Get and Delete
// return domain.ErrNotFound for unknown or expired tokens; Put returns
// domain.ErrAlreadyExists when the token is taken.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
