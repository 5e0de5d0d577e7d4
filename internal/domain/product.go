package domain

import "time"

// ProductStatus tracks a product through the supply chain.
type ProductStatus string

const (
	ProductStatusRegistered ProductStatus = "REGISTERED"
	ProductStatusInTransit  ProductStatus = "IN_TRANSIT"
	ProductStatusDelivered  ProductStatus = "DELIVERED"
)

// Product is a tracked supply-chain item.
type Product struct {
	ID        string
	Name      string
	Category  string
	Origin    string
	Status    ProductStatus
	Owner     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
