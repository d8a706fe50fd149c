package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
)

// ChatUseCase reenvía mensajes al asistente del backend.
// Cada mensaje tiene su propio timeout para no retener goroutines del servidor.
type ChatUseCase struct {
	chat    ports.ChatBackend
	timeout time.Duration
}

// NewChatUseCase construye el caso de uso. timeout <= 0 usa 10 s.
func NewChatUseCase(chat ports.ChatBackend, timeout time.Duration) *ChatUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChatUseCase{chat: chat, timeout: timeout}
}

// Send valida el mensaje y devuelve la respuesta del asistente.
func (uc *ChatUseCase) Send(ctx context.Context, s ports.Session, req dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, domain.Invalid("message", "el mensaje es obligatorio")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.chat.Chat(ctx, s, ports.ChatMessage{Message: msg, ProductID: strings.TrimSpace(req.ProductID)})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}
	return &dto.ChatResponse{Reply: reply}, nil
}
