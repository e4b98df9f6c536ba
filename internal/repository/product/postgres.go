package product

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const columns = `id, name, price, category, image, COALESCE(description, ''), created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	q := `SELECT ` + columns + ` FROM products ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	q := `SELECT ` + columns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (name, price, category, image, description)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING ` + columns
	p, err := scanProduct(r.pool.QueryRow(ctx, q, in.Name, in.Price, in.Category, in.Image, in.Description))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("product repo: create name=%q exists", in.Name)
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create name=%q error=%v", in.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: create id=%d name=%q", p.ID, p.Name)
	return p, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var createdAt time.Time
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &createdAt); err != nil {
		return nil, err
	}
	p.CreatedAt = &createdAt
	return &p, nil
}
