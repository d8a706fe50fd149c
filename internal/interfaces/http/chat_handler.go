package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/usecase"
)

// ChatHandler reenvía mensajes al asistente de inventario.
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje al asistente
// @Description  product_id opcional da contexto de producto. Timeout interno configurable.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message (obligatorio) y product_id (opcional)"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Send(c.Context(), s, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
				Code: "TIMEOUT", Message: "el asistente tardó demasiado; intenta de nuevo",
			})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}
