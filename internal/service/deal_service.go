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

// DealService coordinates deal workflows.
type DealService struct {
	deals      repository.DealRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// DealCreateInput describes deal creation payload.
type DealCreateInput struct {
	ProductID string
	Seller    string
	Buyer     string
	Quantity  int64
	Price     int64
}

// NewDealService constructs the service.
func NewDealService(deals repository.DealRepository, products repository.ProductRepository, dispatcher events.Dispatcher) *DealService {
	return &DealService{deals: deals, products: products, dispatcher: dispatcher}
}

// CreateDeal records an exchange for an existing product.
func (s *DealService) CreateDeal(ctx context.Context, input DealCreateInput) (*domain.Deal, error) {
	if _, err := uuid.Parse(input.ProductID); err != nil {
		return nil, apperrors.NewNotFound("product", map[string]any{"id": input.ProductID})
	}
	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": input.ProductID})
		}
		return nil, apperrors.NewUpstreamError("store", err)
	}

	deal := &domain.Deal{
		ProductID: input.ProductID,
		Seller:    input.Seller,
		Buyer:     input.Buyer,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Status:    domain.DealStatusPending,
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, apperrors.NewUpstreamError("store", err)
	}

	s.publish(ctx, events.EventDealCreated, input.Seller, events.DealCreatedPayload{
		DealID:    deal.ID,
		ProductID: deal.ProductID,
		Seller:    deal.Seller,
		Buyer:     deal.Buyer,
	})
	return deal, nil
}

// ListDeals returns all deals, newest first.
func (s *DealService) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, apperrors.NewUpstreamError("store", err)
	}
	return deals, nil
}

func (s *DealService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
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
