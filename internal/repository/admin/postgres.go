package admin

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const q = `
SELECT id, username, password_hash, created_at
FROM admins
WHERE username = $1
LIMIT 1
`
	return r.scanAdmin(r.pool.QueryRow(ctx, q, strings.TrimSpace(username)))
}

func (r *postgresRepo) Upsert(ctx context.Context, username, passwordHash string) (*domain.Admin, error) {
	const q = `
INSERT INTO admins (username, password_hash)
VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
RETURNING id, username, password_hash, created_at
`
	a, err := r.scanAdmin(r.pool.QueryRow(ctx, q, strings.TrimSpace(username), passwordHash))
	if err != nil {
		return nil, err
	}
	r.logger.Printf("admin repo: upsert id=%d username=%s", a.ID, a.Username)
	return a, nil
}

func (r *postgresRepo) scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("admin repo: scan error=%v", err)
		return nil, err
	}
	return &a, nil
}
