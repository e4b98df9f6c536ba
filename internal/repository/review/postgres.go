package review

import (
	"context"
	"errors"
	"io"
	"log"

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

func (r *postgresRepo) List(ctx context.Context, productID *int64) ([]domain.Review, error) {
	const q = `
SELECT id, product_id, author_name, rating, comment, created_at
FROM reviews
WHERE $1::bigint IS NULL OR product_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		r.logger.Printf("review repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("review repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, author_name, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, author_name, rating, comment, created_at
`
	rv, err := scanReview(r.pool.QueryRow(ctx, q, in.ProductID, in.AuthorName, in.Rating, in.Comment))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("review repo: create product_id=%d error=%v", in.ProductID, err)
		return nil, err
	}
	r.logger.Printf("review repo: create id=%d product_id=%d", rv.ID, rv.ProductID)
	return rv, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.ProductID, &rv.AuthorName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}
