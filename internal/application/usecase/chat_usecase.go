package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

const (
	chatTimeout      = 10 * time.Second
	maxChatHistory   = 20
	maxChatMessageLn = 2000
)

// ChatUseCase reenvía la conversación del sitio al LLM configurado.
// Aplica un timeout de 10 segundos por llamada y no reintenta.
type ChatUseCase struct {
	model  ports.ChatModel
	system string
}

// NewChatUseCase construye el caso de uso. model nil = chat deshabilitado.
func NewChatUseCase(model ports.ChatModel, cat *catalog.Catalog) *ChatUseCase {
	return &ChatUseCase{model: model, system: SystemPrompt(cat)}
}

// Reply valida el historial y devuelve la respuesta del asistente.
func (uc *ChatUseCase) Reply(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if uc.model == nil {
		return nil, domain.ErrServiceUnavailable
	}
	history, err := normalizeHistory(req.Messages)
	if err != nil {
		metrics.ChatRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	reply, err := uc.model.Reply(ctx, uc.system, history)
	if err != nil {
		metrics.ChatRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("chat: %w", err)
	}
	metrics.ChatRequests.WithLabelValues("success").Inc()
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// normalizeHistory descarta turnos vacíos, conserva los últimos maxChatHistory
// y exige que el último turno sea del usuario.
func normalizeHistory(in []dto.ChatMessageDTO) ([]entity.ChatMessage, error) {
	out := make([]entity.ChatMessage, 0, len(in))
	for _, m := range in {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		role := strings.ToLower(strings.TrimSpace(m.Role))
		if role != entity.ChatRoleUser && role != entity.ChatRoleAssistant {
			return nil, fmt.Errorf("role %q: %w", m.Role, domain.ErrInvalidInput)
		}
		if len(content) > maxChatMessageLn {
			content = content[:maxChatMessageLn]
		}
		out = append(out, entity.ChatMessage{Role: role, Content: content})
	}
	if len(out) == 0 || out[len(out)-1].Role != entity.ChatRoleUser {
		return nil, fmt.Errorf("el último mensaje debe ser del usuario: %w", domain.ErrInvalidInput)
	}
	if len(out) > maxChatHistory {
		out = out[len(out)-maxChatHistory:]
	}
	// Los proveedores exigen que la conversación empiece con el usuario.
	for len(out) > 0 && out[0].Role != entity.ChatRoleUser {
		out = out[1:]
	}
	return out, nil
}

// SystemPrompt instrucciones del asistente con el catálogo vigente (precios en CAD).
func SystemPrompt(cat *catalog.Catalog) string {
	var b strings.Builder
	b.WriteString("You are the assistant on the Oasis AI Solutions website. ")
	b.WriteString("Answer questions about our AI automations briefly and in a friendly tone. ")
	b.WriteString("Prices are in CAD; USD is about 0.71 of the CAD amount. ")
	b.WriteString("Never invent products or discounts. For custom work, suggest the contact form.\n\nAutomations:\n")
	for _, it := range cat.Automations() {
		fmt.Fprintf(&b, "- %s: %s Setup $%s.", it.Name, it.Description, it.SetupFee.String())
		for _, k := range entity.AllTiers {
			if t, ok := it.Tiers[k]; ok {
				fmt.Fprintf(&b, " %s $%s/mo.", t.Name, t.Price.String())
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\nBundles:\n")
	for _, bd := range cat.Bundles() {
		fmt.Fprintf(&b, "- %s: setup $%s, $%s/mo.\n", bd.Name, bd.SetupFee.String(), bd.MonthlyFee.String())
	}
	return b.String()
}
