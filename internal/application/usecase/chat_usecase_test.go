package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

type fakeChatModel struct {
	system   string
	history  []entity.ChatMessage
	deadline bool
	reply    string
	err      error
}

func (m *fakeChatModel) Reply(ctx context.Context, system string, history []entity.ChatMessage) (string, error) {
	m.system = system
	m.history = history
	_, m.deadline = ctx.Deadline()
	return m.reply, m.err
}

func TestChatUseCase_Reply(t *testing.T) {
	model := &fakeChatModel{reply: "  Hi! \n"}
	uc := NewChatUseCase(model, catalog.Default())

	res, err := uc.Reply(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessageDTO{
		{Role: "assistant", Content: "Welcome"},
		{Role: "user", Content: "How much is the receptionist?"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Hi!", res.Reply)
	assert.True(t, model.deadline, "la llamada lleva timeout")
	require.Len(t, model.history, 1, "la conversación empieza por el usuario")
	assert.Contains(t, model.system, "AI Receptionist")
}

func TestChatUseCase_UltimoTurnoDebeSerDelUsuario(t *testing.T) {
	uc := NewChatUseCase(&fakeChatModel{}, catalog.Default())
	_, err := uc.Reply(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "assistant", Content: "x"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reply(context.Background(), dto.ChatRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reply(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "system", Content: "x"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatUseCase_SinModelo(t *testing.T) {
	uc := NewChatUseCase(nil, catalog.Default())
	_, err := uc.Reply(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "user", Content: "x"}}})
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestChatUseCase_ErrorDelProveedor(t *testing.T) {
	uc := NewChatUseCase(&fakeChatModel{err: context.DeadlineExceeded}, catalog.Default())
	_, err := uc.Reply(context.Background(), dto.ChatRequest{Messages: []dto.ChatMessageDTO{{Role: "user", Content: "x"}}})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestNormalizeHistory_Recorta(t *testing.T) {
	in := make([]dto.ChatMessageDTO, 0, 30)
	for i := 0; i < 30; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		in = append(in, dto.ChatMessageDTO{Role: role, Content: time.Duration(i).String()})
	}
	in = append(in, dto.ChatMessageDTO{Role: "user", Content: "last"})

	out, err := normalizeHistory(in)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(out), maxChatHistory)
	assert.Equal(t, entity.ChatRoleUser, out[0].Role)
	assert.Equal(t, "last", out[len(out)-1].Content)
}
