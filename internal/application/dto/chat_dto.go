package dto

// ChatMessageDTO turno de la conversación.
type ChatMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest historial completo; el último mensaje debe ser del usuario.
type ChatRequest struct {
	Messages []ChatMessageDTO `json:"messages"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	Reply string `json:"reply"`
}
