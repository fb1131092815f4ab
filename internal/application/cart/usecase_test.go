package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
)

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]entity.Cart
}

func newMemCartRepo() *memCartRepo { return &memCartRepo{carts: map[string]entity.Cart{}} }

func (r *memCartRepo) Create(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.ID] = copyCart(*c)
	return nil
}

func (r *memCartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyCart(c)
	return &out, nil
}

func (r *memCartRepo) Update(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.carts[c.ID] = copyCart(*c)
	return nil
}

func (r *memCartRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}

func copyCart(c entity.Cart) entity.Cart {
	c.Items = append([]entity.CartItem(nil), c.Items...)
	return c
}

func newUseCase() (*UseCase, *memCartRepo) {
	repo := newMemCartRepo()
	return NewUseCase(repo, pricing.NewCalculator(catalog.Default()), pricing.NewDiscountEngine(pricing.DefaultPromoCodes())), repo
}

func TestCart_AgregarYCotizar(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	c, err := uc.Create(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.True(t, c.Pricing.TotalDueToday.IsZero())

	c, err = uc.AddItem(ctx, c.ID, "cad", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "agent"})
	require.NoError(t, err)
	c, err = uc.AddItem(ctx, c.ID, "cad", dto.AddCartItemRequest{ProductID: "review-manager", ProductType: "automation", Tier: "starter"})
	require.NoError(t, err)

	require.Len(t, c.Items, 2)
	assert.Equal(t, "professional", c.Items[0].Tier)
	// 997 + 497 de instalación; 297 + 97 mensual.
	assert.True(t, c.Pricing.SetupFee.Equal(decimal.NewFromInt(1494)))
	assert.True(t, c.Pricing.MonthlyFee.Equal(decimal.NewFromInt(394)))
}

func TestCart_ReagregarReemplaza(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c, _ := uc.Create(ctx, "")

	_, err := uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "automation", Tier: "starter"})
	require.NoError(t, err)
	c, err = uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "automation", Tier: "business", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, "business", c.Items[0].Tier)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestCart_DescuentoSobreLaSuma(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c, _ := uc.Create(ctx, "")
	_, _ = uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "automation"})
	_, _ = uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "growth-bundle", ProductType: "bundle"})

	c, err := uc.ApplyPromo(ctx, c.ID, "usd", "OASISAI15")
	require.NoError(t, err)
	assert.Equal(t, "OASISAI15", c.Promo.Code)
	// USD: 708 + 1418 = 2126; ×0.85 = 1807.1 → 1807.
	assert.True(t, c.Pricing.SetupFee.Equal(decimal.NewFromInt(2126)), c.Pricing.SetupFee.String())
	assert.True(t, c.Pricing.DiscountedSetup.Equal(decimal.NewFromInt(1807)), c.Pricing.DiscountedSetup.String())
	assert.True(t, c.Pricing.DiscountedMonthly.Equal(c.Pricing.MonthlyFee))
}

func TestCart_CodigoInvalidoQuitaDescuento(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	c, _ := uc.Create(ctx, "")
	_, err := uc.ApplyPromo(ctx, c.ID, "", "LAUNCH20")
	require.NoError(t, err)

	c, err = uc.ApplyPromo(ctx, c.ID, "", "NOPE")
	require.NoError(t, err)
	assert.Equal(t, "Invalid promo code", c.Promo.Error)
	assert.Equal(t, 0, c.Promo.Percent)
	assert.Equal(t, 0, repo.carts[c.ID].DiscountPercent)
}

func TestCart_Errores(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	c, _ := uc.Create(ctx, "")

	_, err := uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ghost", ProductType: "automation"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "automation", Quantity: 50})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "missing", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, "eur")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCart_QuitarYEliminar(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	c, _ := uc.Create(ctx, "")
	_, _ = uc.AddItem(ctx, c.ID, "", dto.AddCartItemRequest{ProductID: "ai-receptionist", ProductType: "automation"})

	c, err := uc.RemoveItem(ctx, c.ID, "ai-receptionist", "")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	require.NoError(t, uc.Delete(ctx, c.ID))
	assert.Empty(t, repo.carts)
}
