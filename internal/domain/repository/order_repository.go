package repository

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// OrderRepository pedidos creados en el handoff al proveedor de pagos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	ListByEmail(ctx context.Context, email string) ([]*entity.Order, error)
	// List pagina por fecha de creación descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Order, int, error)
}
