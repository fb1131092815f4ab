package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/internal/domain"
)

// ChatHandler relay del asistente del sitio hacia el modelo configurado.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Reply godoc
// @Summary      Responder en el chat del sitio
// @Description  Reenvía la conversación al modelo con un prompt construido del catálogo. Timeout interno de 10 s.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "historial; el último turno es del usuario"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Reply(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Reply(c.Context(), in)
	if err == nil {
		return c.JSON(out)
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrServiceUnavailable):
		return writeError(c, err)
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{
			Code: "TIMEOUT", Message: "The assistant took too long to answer. Please try again.",
		})
	default:
		c.Locals(localErr, err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "AI_ERROR", Message: "The assistant is unavailable right now. Please try again later.",
		})
	}
}
