package ports

import (
	"context"
	"time"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// QuoteDocument datos del resumen de pedido que se imprime.
type QuoteDocument struct {
	Reference    string
	IssuedAt     time.Time
	CustomerName string
	Email        string
	BusinessName string
	PromoCode    string
	Snapshot     entity.PricingSnapshot
}

// QuotePDFGenerator genera el PDF del resumen de pedido.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, doc QuoteDocument) ([]byte, error)
}
