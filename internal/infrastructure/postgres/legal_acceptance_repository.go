package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ repository.LegalAcceptanceRepository = (*LegalAcceptanceRepo)(nil)

// LegalAcceptanceRepo audit log de aceptaciones legales (solo INSERT y lectura).
type LegalAcceptanceRepo struct {
	q Querier
}

// NewLegalAcceptanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLegalAcceptanceRepository(q Querier) *LegalAcceptanceRepo {
	return &LegalAcceptanceRepo{q: q}
}

// CreateBatch inserta las filas una a una; usar dentro de TxRunner para que sea todo o nada.
func (r *LegalAcceptanceRepo) CreateBatch(ctx context.Context, records []entity.LegalAcceptance) error {
	query := `
		INSERT INTO legal_acceptances (id, checkout_session_id, client_name, client_email, company_name,
			document_type, document_version, acceptance_method, related_purchase_type,
			user_agent, ip_address, accepted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		_, err := r.q.Exec(ctx, query,
			rec.ID, nullIfEmpty(rec.CheckoutSessionID), rec.ClientName, rec.ClientEmail, nullIfEmpty(rec.CompanyName),
			rec.DocumentType, rec.DocumentVersion, rec.AcceptanceMethod, rec.RelatedPurchaseType,
			nullIfEmpty(rec.UserAgent), nullIfEmpty(rec.IPAddress), rec.AcceptedAt,
		)
		if err != nil {
			return fmt.Errorf("insert legal acceptance %s: %w", rec.DocumentType, err)
		}
	}
	return nil
}

// ListByEmail aceptaciones del cliente, más recientes primero.
func (r *LegalAcceptanceRepo) ListByEmail(ctx context.Context, email string) ([]*entity.LegalAcceptance, error) {
	query := `
		SELECT id, checkout_session_id, client_name, client_email, company_name, document_type,
			document_version, acceptance_method, related_purchase_type, user_agent, ip_address, accepted_at
		FROM legal_acceptances
		WHERE lower(client_email) = lower($1)
		ORDER BY accepted_at DESC, document_type`
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list legal acceptances: %w", err)
	}
	defer rows.Close()

	var out []*entity.LegalAcceptance
	for rows.Next() {
		var a entity.LegalAcceptance
		var sessionID, company, ua, ip *string
		if err := rows.Scan(&a.ID, &sessionID, &a.ClientName, &a.ClientEmail, &company, &a.DocumentType,
			&a.DocumentVersion, &a.AcceptanceMethod, &a.RelatedPurchaseType, &ua, &ip, &a.AcceptedAt); err != nil {
			return nil, fmt.Errorf("scan legal acceptance: %w", err)
		}
		a.CheckoutSessionID = derefString(sessionID)
		a.CompanyName = derefString(company)
		a.UserAgent = derefString(ua)
		a.IPAddress = derefString(ip)
		out = append(out, &a)
	}
	return out, rows.Err()
}
