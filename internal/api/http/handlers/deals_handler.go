package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplychain-service/internal/api/dto"
	"github.com/spec-kit/supplychain-service/internal/service"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// DealsHandler manages deal endpoints.
type DealsHandler struct {
	service *service.DealService
}

// NewDealsHandler constructs handler.
func NewDealsHandler(dealService *service.DealService) *DealsHandler {
	return &DealsHandler{service: dealService}
}

// CreateDeal POST /create-deal.
func (h *DealsHandler) CreateDeal(c *fiber.Ctx) error {
	var req dto.CreateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" || req.Seller == "" || req.Buyer == "" {
		return apperrors.NewValidationError("productId, seller, buyer required", nil)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}

	deal, err := h.service.CreateDeal(c.UserContext(), service.DealCreateInput{
		ProductID: req.ProductID,
		Seller:    req.Seller,
		Buyer:     req.Buyer,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"deal": dto.NewDealResponse(deal)})
}

// ListDeals GET /deals.
func (h *DealsHandler) ListDeals(c *fiber.Ctx) error {
	deals, err := h.service.ListDeals(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DealResponse, 0, len(deals))
	for i := range deals {
		items = append(items, dto.NewDealResponse(&deals[i]))
	}
	return c.JSON(fiber.Map{"deals": items})
}
