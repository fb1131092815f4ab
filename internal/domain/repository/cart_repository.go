package repository

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// CartRepository persistencia de carritos (ítems en JSONB).
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	// GetByID devuelve domain.ErrNotFound si el carrito no existe.
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	// Delete es idempotente: borrar un carrito inexistente no es error.
	Delete(ctx context.Context, id string) error
}
