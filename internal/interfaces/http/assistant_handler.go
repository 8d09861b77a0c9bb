package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itcguard/itc-api/internal/application/dto"
	"github.com/itcguard/itc-api/internal/application/usecase"
	"github.com/itcguard/itc-api/pkg/logger"
)

// AssistantHandler answers free-text questions about the ledger.
type AssistantHandler struct {
	uc  *usecase.AssistantUseCase
	log *logger.Logger
}

// NewAssistantHandler builds the handler.
func NewAssistantHandler(uc *usecase.AssistantUseCase, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{uc: uc, log: log}
}

// Chat godoc
// @Summary      Ask the CFO assistant
// @Tags         assistant
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ChatRequest  true  "message"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reply(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
