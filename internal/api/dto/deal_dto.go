package dto

import (
	"time"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// CreateDealRequest payload for deal creation.
type CreateDealRequest struct {
	ProductID string `json:"productId"`
	Seller    string `json:"seller"`
	Buyer     string `json:"buyer"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

// DealResponse is the public projection of a deal.
type DealResponse struct {
	ID        string            `json:"id"`
	ProductID string            `json:"productId"`
	Seller    string            `json:"seller"`
	Buyer     string            `json:"buyer"`
	Quantity  int64             `json:"quantity"`
	Price     int64             `json:"price"`
	Status    domain.DealStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewDealResponse projects a domain deal.
func NewDealResponse(deal *domain.Deal) DealResponse {
	return DealResponse{
		ID:        deal.ID,
		ProductID: deal.ProductID,
		Seller:    deal.Seller,
		Buyer:     deal.Buyer,
		Quantity:  deal.Quantity,
		Price:     deal.Price,
		Status:    deal.Status,
		CreatedAt: deal.CreatedAt,
	}
}
