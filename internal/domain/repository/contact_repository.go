package repository

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// ContactRepository mensajes del formulario de contacto.
type ContactRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]*entity.ContactMessage, int, error)
}
