package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos con los ítems en una columna JSONB.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

type cartItemRecord struct {
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
	Tier        string `json:"tier,omitempty"`
	Quantity    int    `json:"quantity"`
}

func encodeCartItems(items []entity.CartItem) ([]byte, error) {
	recs := make([]cartItemRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, cartItemRecord{
			ProductID:   it.ProductID,
			ProductType: string(it.ProductType),
			Tier:        string(it.Tier),
			Quantity:    it.Quantity,
		})
	}
	return json.Marshal(recs)
}

func decodeCartItems(raw []byte) ([]entity.CartItem, error) {
	var recs []cartItemRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, err
		}
	}
	return decodeCartItemRecords(recs), nil
}

func decodeCartItemRecords(recs []cartItemRecord) []entity.CartItem {
	items := make([]entity.CartItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, entity.CartItem{
			ProductID:   r.ProductID,
			ProductType: entity.ProductType(r.ProductType),
			Tier:        entity.TierKey(r.Tier),
			Quantity:    r.Quantity,
		})
	}
	return items
}

// Create inserta un carrito nuevo.
func (r *CartRepo) Create(ctx context.Context, c *entity.Cart) error {
	items, err := encodeCartItems(c.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	query := `
		INSERT INTO carts (id, items, promo_code, discount_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, items, nullIfEmpty(c.PromoCode), c.DiscountPercent, c.CreatedAt, c.UpdatedAt); err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetByID devuelve domain.ErrNotFound si no existe.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	query := `SELECT id, items, promo_code, discount_percent, created_at, updated_at FROM carts WHERE id = $1`
	var c entity.Cart
	var raw []byte
	var promo *string
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &raw, &promo, &c.DiscountPercent, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if c.Items, err = decodeCartItems(raw); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	c.PromoCode = derefString(promo)
	return &c, nil
}

// Update reemplaza ítems y promo.
func (r *CartRepo) Update(ctx context.Context, c *entity.Cart) error {
	items, err := encodeCartItems(c.Items)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	query := `UPDATE carts SET items = $2, promo_code = $3, discount_percent = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, items, nullIfEmpty(c.PromoCode), c.DiscountPercent, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete idempotente.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
