// Package cart casos de uso del carrito. El carrito guarda ítems y el código
// activo; los precios se recalculan en cada lectura.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

const maxQuantity = 10

// UseCase operaciones sobre carritos.
type UseCase struct {
	repo   repository.CartRepository
	calc   *pricing.Calculator
	engine *pricing.DiscountEngine
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CartRepository, calc *pricing.Calculator, engine *pricing.DiscountEngine) *UseCase {
	return &UseCase{repo: repo, calc: calc, engine: engine, now: time.Now}
}

// Create abre un carrito vacío.
func (uc *UseCase) Create(ctx context.Context, currency string) (*dto.CartResponse, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	c := &entity.Cart{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear carrito: %w", err)
	}
	return uc.toResponse(c, cur)
}

// Get devuelve el carrito cotizado en la moneda pedida.
func (uc *UseCase) Get(ctx context.Context, id, currency string) (*dto.CartResponse, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(c, cur)
}

// AddItem agrega un producto validado contra el catálogo. Volver a agregar el
// mismo producto reemplaza nivel y cantidad.
func (uc *UseCase) AddItem(ctx context.Context, id, currency string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	item, err := uc.resolveItem(in)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i := c.Find(item.ProductType, item.ProductID); i >= 0 {
		c.Items[i] = item
	} else {
		c.Items = append(c.Items, item)
	}
	return uc.save(ctx, c, cur)
}

// RemoveItem quita un producto. Quitar algo que no está no es error.
func (uc *UseCase) RemoveItem(ctx context.Context, id, productID, currency string) (*dto.CartResponse, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
	return uc.save(ctx, c, cur)
}

// ApplyPromo reemplaza el código activo. Un código inválido deja el carrito sin
// descuento y el mensaje viaja en promo.error.
func (uc *UseCase) ApplyPromo(ctx context.Context, id, currency, code string) (*dto.CartResponse, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res := uc.engine.Apply(code)
	metrics.PromoApplications.WithLabelValues(res.Outcome()).Inc()
	c.PromoCode = res.Code
	c.DiscountPercent = res.Percent

	out, err := uc.save(ctx, c, cur)
	if err != nil {
		return nil, err
	}
	out.Promo.Error = res.Error
	return out, nil
}

// Delete vacía y elimina el carrito.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *UseCase) resolveItem(in dto.AddCartItemRequest) (entity.CartItem, error) {
	pt, ok := entity.ParseProductType(in.ProductType)
	if !ok {
		return entity.CartItem{}, domain.ErrProductNotFound
	}
	item := entity.CartItem{ProductID: in.ProductID, ProductType: pt, Quantity: in.Quantity}
	if pt == entity.ProductTypeAutomation {
		tier, ok := entity.ParseTier(in.Tier)
		if !ok {
			return entity.CartItem{}, fmt.Errorf("tier %q: %w", in.Tier, domain.ErrInvalidInput)
		}
		item.Tier = tier
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Quantity > maxQuantity {
		return entity.CartItem{}, fmt.Errorf("quantity %d: %w", item.Quantity, domain.ErrInvalidInput)
	}
	if _, ok := uc.calc.Catalog().Lookup(item.ProductType, item.ProductID, item.Tier); !ok {
		return entity.CartItem{}, domain.ErrProductNotFound
	}
	return item, nil
}

func (uc *UseCase) save(ctx context.Context, c *entity.Cart, cur entity.Currency) (*dto.CartResponse, error) {
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar carrito: %w", err)
	}
	return uc.toResponse(c, cur)
}

func (uc *UseCase) toResponse(c *entity.Cart, cur entity.Currency) (*dto.CartResponse, error) {
	snap, err := uc.calc.Quote(c.Items, cur, c.DiscountPercent)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CartItemDTO, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CartItemDTO{
			ProductID:   it.ProductID,
			ProductType: string(it.ProductType),
			Tier:        string(it.Tier),
			Quantity:    it.Quantity,
		})
	}
	return &dto.CartResponse{
		ID:        c.ID,
		Items:     items,
		Promo:     dto.PromoDTO{Code: c.PromoCode, Percent: c.DiscountPercent},
		Pricing:   dto.PricingFromSnapshot(snap),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func parseCurrency(s string) (entity.Currency, error) {
	cur, ok := pricing.ParseCurrency(s)
	if !ok {
		return "", fmt.Errorf("currency %q: %w", s, domain.ErrInvalidInput)
	}
	return cur, nil
}
