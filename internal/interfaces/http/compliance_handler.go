package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ComplianceHandler serves the ITC dashboard and record lifecycle.
type ComplianceHandler struct {
	uc  *usecase.ComplianceUseCase
	log *logger.Logger
}

// NewComplianceHandler builds the handler.
func NewComplianceHandler(uc *usecase.ComplianceUseCase, log *logger.Logger) *ComplianceHandler {
	return &ComplianceHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Dashboard records and ITC buckets
// @Description  Returns every record (newest invoice first) together with outstanding, at-risk and safe-to-pay totals.
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ComplianceListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compliance [get]
func (h *ComplianceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one record
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "record ID"
// @Success      200  {object}  dto.TaxRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compliance/{id} [get]
func (h *ComplianceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Enter a record manually
// @Tags         compliance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaxRecordRequest  true  "vendor_name and amount are required"
// @Success      201   {object}  dto.TaxRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compliance [post]
func (h *ComplianceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTaxRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Correct a record
// @Description  Partial update. Absent fields keep their value.
// @Tags         compliance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "record ID"
// @Param        body  body      dto.UpdateTaxRecordRequest  true  "fields to change"
// @Success      200   {object}  dto.TaxRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compliance/{id} [patch]
func (h *ComplianceHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateTaxRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Check the vendor GSTIN
// @Description  Validates structure, state code and check character, then marks the record Safe or Failed.
// @Tags         compliance
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "record ID"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compliance/{id}/verify [post]
func (h *ComplianceHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Settle godoc
// @Summary      Mark a Safe record as paid
// @Tags         compliance
// @Security     Bearer
// @Param        id   path  string  true  "record ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compliance/{id}/settle [post]
func (h *ComplianceHandler) Settle(c *fiber.Ctx) error {
	if err := h.uc.Settle(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Block godoc
// @Summary      Block the vendor of a Failed record
// @Tags         compliance
// @Security     Bearer
// @Param        id   path  string  true  "record ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compliance/{id}/block [post]
func (h *ComplianceHandler) Block(c *fiber.Ctx) error {
	if err := h.uc.Block(c.Context(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
