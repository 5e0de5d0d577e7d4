package domain

import "time"

// DealStatus tracks the lifecycle of a deal.
type DealStatus string

const (
	DealStatusPending   DealStatus = "PENDING"
	DealStatusCompleted DealStatus = "COMPLETED"
	DealStatusCancelled DealStatus = "CANCELLED"
)

// Deal records an exchange of a product between two parties.
type Deal struct {
	ID        string
	ProductID string
	Seller    string
	Buyer     string
	Quantity  int64
	Price     int64
	Status    DealStatus
	CreatedAt time.Time
}
