package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/supplychain-service/internal/domain"
	"github.com/spec-kit/supplychain-service/internal/events"
	"github.com/spec-kit/supplychain-service/internal/repository"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// ProductService coordinates product tracking workflows.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// ProductCreateInput describes product creation payload.
type ProductCreateInput struct {
	Name     string
	Category string
	Origin   string
	Owner    string
}

// NewProductService constructs the service.
func NewProductService(products repository.ProductRepository, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, dispatcher: dispatcher}
}

// AddProduct registers a new product in the chain.
func (s *ProductService) AddProduct(ctx context.Context, input ProductCreateInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:     input.Name,
		Category: input.Category,
		Origin:   input.Origin,
		Status:   domain.ProductStatusRegistered,
		Owner:    input.Owner,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewUpstreamError("store", err)
	}

	s.publish(ctx, events.EventProductAdded, input.Owner, events.ProductAddedPayload{
		ProductID: product.ID,
		Name:      product.Name,
		Origin:    product.Origin,
	})
	return product, nil
}

// UpdateStatus moves a product to a new supply-chain status.
func (s *ProductService) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) (*domain.Product, error) {
	switch status {
	case domain.ProductStatusRegistered, domain.ProductStatusInTransit, domain.ProductStatusDelivered:
	default:
		return nil, apperrors.NewValidationError("unknown product status", map[string]any{"status": string(status)})
	}

	// ids are UUIDs; a malformed one cannot name a row, and sending it to
	// Postgres would surface a cast error instead of a clean miss
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
	}

	product, err := s.products.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, apperrors.NewUpstreamError("store", err)
	}

	s.publish(ctx, events.EventProductStatusChanged, product.Owner, events.ProductStatusChangedPayload{
		ProductID: product.ID,
		NewStatus: product.Status,
	})
	return product, nil
}

// ListProducts returns all tracked products, newest first.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("store", err)
	}
	return products, nil
}

func (s *ProductService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
