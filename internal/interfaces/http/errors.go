package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/extraction"
	"github.com/itcguard/itc-api/internal/domain"
	"github.com/itcguard/itc-api/pkg/logger"
)

// writeError maps use case errors to HTTP responses. Only unexpected
// failures are logged; their message is not exposed.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	if xerr, ok := extraction.AsExtractionError(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ExtractionErrorResponse{
			Code:    "EXTRACTION_FAILED",
			Message: xerr.Error(),
			Field:   xerr.Field,
			Raw:     xerr.Raw,
		})
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrModelUnavailable):
		status, code = fiber.StatusBadGateway, "MODEL_UNAVAILABLE"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		msg = "internal error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "request body is not valid JSON",
	})
}
