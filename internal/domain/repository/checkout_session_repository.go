package repository

import (
	"context"
	"time"

	"github.com/jhoicas/oasis-api/internal/domain/checkout"
)

// CheckoutSessionRepository persistencia de sesiones de checkout.
type CheckoutSessionRepository interface {
	Create(ctx context.Context, s *checkout.Session) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*checkout.Session, error)
	Update(ctx context.Context, s *checkout.Session) error

	// DeleteExpired borra las sesiones no completadas vencidas antes de now. Devuelve cuántas.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
