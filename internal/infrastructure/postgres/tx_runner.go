package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ appcheckout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAcceptances inicia una transacción, ejecuta fn con el repo del audit log
// atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunAcceptances(ctx context.Context, fn func(repo repository.LegalAcceptanceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLegalAcceptanceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
