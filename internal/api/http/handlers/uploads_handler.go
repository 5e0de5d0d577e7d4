package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplychain-service/internal/api/dto"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// Presigner issues presigned upload URLs.
type Presigner interface {
	PresignedUpload(ctx context.Context, fileName, fileType, folder string) (uploadURL, fileURL string, err error)
}

// UploadsHandler exposes the presigned upload endpoint.
type UploadsHandler struct {
	presigner Presigner
}

// NewUploadsHandler constructs handler. A nil presigner means object storage
// is not configured for this deployment.
func NewUploadsHandler(presigner Presigner) *UploadsHandler {
	return &UploadsHandler{presigner: presigner}
}

// GetPresignedURL POST /get-presigned-url.
func (h *UploadsHandler) GetPresignedURL(c *fiber.Ctx) error {
	if h.presigner == nil {
		return apperrors.NewUpstreamError("object storage", nil)
	}

	var req dto.PresignedURLRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FileName == "" || req.FileType == "" {
		return apperrors.NewValidationError("fileName and fileType required", nil)
	}

	uploadURL, fileURL, err := h.presigner.PresignedUpload(c.UserContext(), req.FileName, req.FileType, req.Folder)
	if err != nil {
		return apperrors.NewUpstreamError("object storage", err)
	}

	return c.JSON(dto.PresignedURLResponse{UploadURL: uploadURL, FileURL: fileURL})
}
