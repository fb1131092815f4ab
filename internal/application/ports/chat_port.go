package ports

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// ChatModel define el puerto de salida hacia el LLM que responde el chat del sitio.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type ChatModel interface {
	// Reply devuelve la respuesta del asistente al último turno de history.
	Reply(ctx context.Context, system string, history []entity.ChatMessage) (string, error)
}
