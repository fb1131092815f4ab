package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Los montos viajan como NUMERIC gracias al codec pgx-shopspring-decimal.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, checkout_session_id, payment_session_id, payment_url, customer_name, customer_email,
	business_name, customer_phone, purchase_type, summary, currency, setup_fee, discount_percent, promo_code,
	discounted_setup, monthly_fee, total_due_today, status, created_at`

// Create persiste el pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CheckoutSessionID, nullIfEmpty(o.PaymentSessionID), o.PaymentURL, o.CustomerName, o.CustomerEmail,
		nullIfEmpty(o.BusinessName), nullIfEmpty(o.CustomerPhone), o.PurchaseType, o.Summary, string(o.Currency),
		o.SetupFee, o.DiscountPercent, nullIfEmpty(o.PromoCode),
		o.DiscountedSetup, o.MonthlyFee, o.TotalDueToday, o.Status, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order for payment session %s already exists: %w", o.PaymentSessionID, err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// ListByEmail pedidos del cliente, más recientes primero.
func (r *OrderRepo) ListByEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE lower(customer_email) = lower($1) ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("list orders by email: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// List pagina todos los pedidos.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanOrders(rows rowScanner) ([]*entity.Order, error) {
	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		var currency string
		var paymentID, business, phone, promo *string
		if err := rows.Scan(
			&o.ID, &o.CheckoutSessionID, &paymentID, &o.PaymentURL, &o.CustomerName, &o.CustomerEmail,
			&business, &phone, &o.PurchaseType, &o.Summary, &currency, &o.SetupFee, &o.DiscountPercent, &promo,
			&o.DiscountedSetup, &o.MonthlyFee, &o.TotalDueToday, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Currency = entity.Currency(currency)
		o.PaymentSessionID = derefString(paymentID)
		o.BusinessName = derefString(business)
		o.CustomerPhone = derefString(phone)
		o.PromoCode = derefString(promo)
		out = append(out, &o)
	}
	return out, rows.Err()
}
