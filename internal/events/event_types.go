package events

import (
	"time"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventProductAdded         EventType = "product_added"
	EventProductStatusChanged EventType = "product_status_changed"
	EventDealCreated          EventType = "deal_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
}

// ProductAddedPayload payload.
type ProductAddedPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Origin    string `json:"origin"`
}

// ProductStatusChangedPayload payload.
type ProductStatusChangedPayload struct {
	ProductID string               `json:"product_id"`
	NewStatus domain.ProductStatus `json:"new_status"`
}

// DealCreatedPayload payload.
type DealCreatedPayload struct {
	DealID    string `json:"deal_id"`
	ProductID string `json:"product_id"`
	Seller    string `json:"seller"`
	Buyer     string `json:"buyer"`
}
