package dto

import (
	"time"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// AddProductRequest payload for product registration.
type AddProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Origin   string `json:"origin"`
	Owner    string `json:"owner"`
}

// UpdateProductStatusRequest payload for status transitions.
type UpdateProductStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ProductResponse is the public projection of a product.
type ProductResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Category  string               `json:"category"`
	Origin    string               `json:"origin"`
	Status    domain.ProductStatus `json:"status"`
	Owner     string               `json:"owner"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// NewProductResponse projects a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Origin:    product.Origin,
		Status:    product.Status,
		Owner:     product.Owner,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
