package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/report"
	"github.com/itcguard/itc-api/pkg/logger"
)

// ReportHandler serves filing documents.
type ReportHandler struct {
	gstr3b *report.GSTR3BUseCase
	log    *logger.Logger
}

// NewReportHandler builds the handler.
func NewReportHandler(gstr3b *report.GSTR3BUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{gstr3b: gstr3b, log: log}
}

// GSTR3B godoc
// @Summary      Download the GSTR-3B summary PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  int  true  "1-12"
// @Param        year   query  int  true  "four-digit year"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/gstr3b [get]
func (h *ReportHandler) GSTR3B(c *fiber.Ctx) error {
	month, errM := strconv.Atoi(c.Query("month"))
	year, errY := strconv.Atoi(c.Query("year"))
	if errM != nil || errY != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "month and year query parameters must be integers",
		})
	}

	doc, err := h.gstr3b.Generate(c.Context(), month, year)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return c.Send(doc.Content)
}
