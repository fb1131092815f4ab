package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

// Mensajes del formulario de contacto.
const (
	MsgMessageRequired = "Message is required"
	MsgRateLimited     = "Please wait a moment before sending another message"
)

const maxContactMessage = 5000

// SubmitLimiter limita envíos por clave (IP del visitante).
type SubmitLimiter interface {
	Allow(key string) bool
}

// ContactUseCase guarda los mensajes del formulario de contacto.
type ContactUseCase struct {
	repo    repository.ContactRepository
	limiter SubmitLimiter
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.ContactRepository, limiter SubmitLimiter) *ContactUseCase {
	return &ContactUseCase{repo: repo, limiter: limiter}
}

// Submit valida y guarda el mensaje. La validación corre antes del límite para
// que un formulario incompleto no consuma el intervalo.
func (uc *ContactUseCase) Submit(ctx context.Context, ip string, in dto.ContactRequest) (*dto.ContactMessageResponse, error) {
	msg := &entity.ContactMessage{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		BusinessName: strings.TrimSpace(in.BusinessName),
		Phone:        strings.TrimSpace(in.Phone),
		Message:      strings.TrimSpace(in.Message),
		IPAddress:    ip,
	}
	fe := domain.FieldErrors{}
	if msg.Name == "" {
		fe["name"] = checkout.MsgNameRequired
	}
	switch {
	case msg.Email == "":
		fe["email"] = checkout.MsgEmailRequired
	case !checkout.ValidEmail(msg.Email):
		fe["email"] = checkout.MsgEmailInvalid
	}
	if msg.Message == "" {
		fe["message"] = MsgMessageRequired
	}
	if err := fe.OrNil(); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}
	msg.Message = truncateUTF8(msg.Message, maxContactMessage)
	if uc.limiter != nil && !uc.limiter.Allow(ip) {
		metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
		return nil, domain.ErrRateLimited
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()
	if err := uc.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("guardar mensaje de contacto: %w", err)
	}
	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	r := toContactResponse(msg)
	return &r, nil
}

// List mensajes para administración.
func (uc *ContactUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ContactMessageListResponse, error) {
	page.DefaultPage()
	msgs, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, toContactResponse(m))
	}
	return &dto.ContactMessageListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toContactResponse(m *entity.ContactMessage) dto.ContactMessageResponse {
	return dto.ContactMessageResponse{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		BusinessName: m.BusinessName,
		Phone:        m.Phone,
		Message:      m.Message,
		CreatedAt:    m.CreatedAt,
	}
}

// truncateUTF8 corta s a lo sumo en max bytes sin partir un carácter multibyte.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
