package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"storefront/internal/domain"
)

const keyPrefix = "storefront:session:"

type redisStore struct {
	client *redis.Client
	logger *log.Logger
	now    func() time.Time
}

// NewRedis returns a Store keeping each session under its own key with the
// session's remaining lifetime as TTL.
func NewRedis(client *redis.Client, logger *log.Logger) Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisStore{client: client, logger: logger, now: time.Now}
}

// DialRedis parses a redis:// URL and verifies the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *redisStore) Put(ctx context.Context, s Session) error {
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(now)
		if ttl <= 0 {
			return fmt.Errorf("%w: session already expired", domain.ErrValidation)
		}
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, keyPrefix+s.Token, raw, ttl).Result()
	if err != nil {
		r.logger.Printf("session store: put username=%s error=%v", s.Username, err)
		return err
	}
	if !ok {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("session store: get error=%v", err)
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		r.logger.Printf("session store: decode error=%v", err)
		return nil, err
	}
	if s.Expired(r.now()) {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *redisStore) Delete(ctx context.Context, token string) error {
	n, err := r.client.Del(ctx, keyPrefix+token).Result()
	if err != nil {
		r.logger.Printf("session store: delete error=%v", err)
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
