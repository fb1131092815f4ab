package repository

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// LegalAcceptanceRepository audit log de aceptaciones. Solo inserción.
type LegalAcceptanceRepository interface {
	// CreateBatch inserta todas las filas o ninguna (llamar dentro de una transacción).
	CreateBatch(ctx context.Context, records []entity.LegalAcceptance) error
	ListByEmail(ctx context.Context, email string) ([]*entity.LegalAcceptance, error)
}
