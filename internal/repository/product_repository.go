package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, category, origin, status, owner_username)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Category,
		product.Origin,
		product.Status,
		product.Owner,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error) {
	const query = `
        UPDATE products SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, name, category, origin, status, owner_username, created_at, updated_at`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Origin,
		&product.Status,
		&product.Owner,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
        SELECT id, name, category, origin, status, owner_username, created_at, updated_at
        FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Origin,
		&product.Status,
		&product.Owner,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
        SELECT id, name, category, origin, status, owner_username, created_at, updated_at
        FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Origin,
			&product.Status,
			&product.Owner,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
