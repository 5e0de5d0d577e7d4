package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// DealRepository defines persistence access for deals.
type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	List(ctx context.Context) ([]domain.Deal, error)
}

type dealRepository struct {
	pool *pgxpool.Pool
}

// NewDealRepository returns a Postgres-backed implementation.
func NewDealRepository(pool *pgxpool.Pool) DealRepository {
	return &dealRepository{pool: pool}
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	const query = `
        INSERT INTO deals (product_id, seller, buyer, quantity, price, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		deal.ProductID,
		deal.Seller,
		deal.Buyer,
		deal.Quantity,
		deal.Price,
		deal.Status,
	).Scan(&deal.ID, &deal.CreatedAt)
}

func (r *dealRepository) List(ctx context.Context) ([]domain.Deal, error) {
	const query = `
        SELECT id, product_id, seller, buyer, quantity, price, status, created_at
        FROM deals ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		var deal domain.Deal
		if err := rows.Scan(
			&deal.ID,
			&deal.ProductID,
			&deal.Seller,
			&deal.Buyer,
			&deal.Quantity,
			&deal.Price,
			&deal.Status,
			&deal.CreatedAt,
		); err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}
