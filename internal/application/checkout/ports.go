package checkout

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

// TxRunner ejecuta la escritura del audit log dentro de una transacción:
// se guardan todas las aceptaciones de un envío o ninguna.
type TxRunner interface {
	RunAcceptances(ctx context.Context, fn func(repo repository.LegalAcceptanceRepository) error) error
}

// RequestMeta datos de la petición que se registran en el audit log.
type RequestMeta struct {
	UserAgent string
	IP        string
}
