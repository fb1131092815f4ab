package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ repository.ContactRepository = (*ContactRepo)(nil)

// ContactRepo mensajes del formulario de contacto.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Create persiste el mensaje.
func (r *ContactRepo) Create(ctx context.Context, m *entity.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO contact_messages (id, name, email, business_name, phone, message, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.Email, nullIfEmpty(m.BusinessName), nullIfEmpty(m.Phone), m.Message, nullIfEmpty(m.IPAddress), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List mensajes más recientes primero, con total para paginar.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*entity.ContactMessage, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contact messages: %w", err)
	}
	query := `
		SELECT id, name, email, business_name, phone, message, ip_address, created_at
		FROM contact_messages ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var out []*entity.ContactMessage
	for rows.Next() {
		var m entity.ContactMessage
		var business, phone, ip *string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &business, &phone, &m.Message, &ip, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		m.BusinessName = derefString(business)
		m.Phone = derefString(phone)
		m.IPAddress = derefString(ip)
		out = append(out, &m)
	}
	return out, total, rows.Err()
}
