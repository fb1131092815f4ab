package entity

// Roles de un mensaje de chat.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage turno de la conversación con el asistente del sitio.
type ChatMessage struct {
	Role    string
	Content string
}
