package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplychain-service/internal/api/dto"
	"github.com/spec-kit/supplychain-service/internal/domain"
	"github.com/spec-kit/supplychain-service/internal/service"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// ProductsHandler manages product tracking endpoints.
type ProductsHandler struct {
	service *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{service: productService}
}

// AddProduct POST /add-product.
func (h *ProductsHandler) AddProduct(c *fiber.Ctx) error {
	var req dto.AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Origin == "" {
		return apperrors.NewValidationError("name and origin required", nil)
	}

	product, err := h.service.AddProduct(c.UserContext(), service.ProductCreateInput{
		Name:     req.Name,
		Category: req.Category,
		Origin:   req.Origin,
		Owner:    req.Owner,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"product": dto.NewProductResponse(product)})
}

// UpdateProductStatus POST /update-product-status.
func (h *ProductsHandler) UpdateProductStatus(c *fiber.Ctx) error {
	var req dto.UpdateProductStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ID == "" || req.Status == "" {
		return apperrors.NewValidationError("id and status required", nil)
	}

	product, err := h.service.UpdateStatus(c.UserContext(), req.ID, domain.ProductStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": dto.NewProductResponse(product)})
}

// ListProducts GET /products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, dto.NewProductResponse(&products[i]))
	}
	return c.JSON(fiber.Map{"products": items})
}
