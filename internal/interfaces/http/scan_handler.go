package http

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ScanHandler accepts invoice photos for extraction.
type ScanHandler struct {
	uc  *usecase.ScanUseCase
	log *logger.Logger
}

// NewScanHandler builds the handler.
func NewScanHandler(uc *usecase.ScanUseCase, log *logger.Logger) *ScanHandler {
	return &ScanHandler{uc: uc, log: log}
}

// Scan godoc
// @Summary      Extract a tax record from an invoice image
// @Description  The image is base64 (a data: URI prefix is accepted). HEIC photos are converted to JPEG.
// @Description  When the model output is unusable the 422 body carries the raw payload.
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScanRequest  true  "image, mimeType, save"
// @Success      200   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ExtractionErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Scan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	image, mediaType, err := decodeImage(req.Image, req.MimeType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_IMAGE", Message: err.Error(),
		})
	}
	out, err := h.uc.Scan(c.Context(), usecase.ScanInput{Image: image, MediaType: mediaType, Save: req.Save})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// decodeImage accepts plain base64 or a data URI. The URI's media type wins
// over an empty mimeType.
func decodeImage(payload, mimeType string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		header, data, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, "", fiber.NewError(fiber.StatusBadRequest, "malformed data URI")
		}
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		payload = data
	}
	if payload == "" {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "image is required")
	}
	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "image is not valid base64")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return image, strings.ToLower(mimeType), nil
}
