package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// BaseLine línea con precio base en CAD antes de convertir.
type BaseLine struct {
	ProductType entity.ProductType
	ProductID   string
	Name        string
	Tier        entity.TierKey
	Quantity    int
	SetupFee    decimal.Decimal
	MonthlyFee  decimal.Decimal
}

// ComputeTotal combina precio base, moneda y descuento.
//
// Cada monto se convierte y redondea por separado; el descuento se aplica a la suma
// de instalaciones y se redondea una sola vez. La mensualidad nunca se descuenta.
func ComputeTotal(lines []BaseLine, currency entity.Currency, discountPercent int) entity.PricingSnapshot {
	snap := entity.PricingSnapshot{
		Currency:        currency,
		Lines:           make([]entity.PriceLine, 0, len(lines)),
		SetupFee:        decimal.Zero,
		MonthlyFee:      decimal.Zero,
		DiscountPercent: clampPercent(discountPercent),
	}
	for _, l := range lines {
		qty := l.Quantity
		if qty <= 0 {
			qty = 1
		}
		q := decimal.NewFromInt(int64(qty))
		setup := Convert(l.SetupFee, entity.CurrencyCAD, currency).Mul(q)
		monthly := Convert(l.MonthlyFee, entity.CurrencyCAD, currency).Mul(q)
		snap.Lines = append(snap.Lines, entity.PriceLine{
			ProductType: l.ProductType,
			ProductID:   l.ProductID,
			Name:        l.Name,
			Tier:        l.Tier,
			Quantity:    qty,
			SetupFee:    setup,
			MonthlyFee:  monthly,
		})
		snap.SetupFee = snap.SetupFee.Add(setup)
		snap.MonthlyFee = snap.MonthlyFee.Add(monthly)
	}
	return finish(snap)
}

// CustomTotal precio del flujo de acuerdo personalizado: montos acordados ya en la moneda elegida.
func CustomTotal(upfront, monthly decimal.Decimal, currency entity.Currency, discountPercent int) entity.PricingSnapshot {
	upfront = roundUnit(nonNegative(upfront))
	monthly = roundUnit(nonNegative(monthly))
	snap := entity.PricingSnapshot{
		Currency: currency,
		Lines: []entity.PriceLine{{
			ProductType: entity.ProductTypeCustom,
			ProductID:   "custom-agreement",
			Name:        "Custom Automation Agreement",
			Quantity:    1,
			SetupFee:    upfront,
			MonthlyFee:  monthly,
		}},
		SetupFee:        upfront,
		MonthlyFee:      monthly,
		DiscountPercent: clampPercent(discountPercent),
	}
	return finish(snap)
}

func finish(snap entity.PricingSnapshot) entity.PricingSnapshot {
	snap.DiscountedSetup = applyDiscount(snap.SetupFee, snap.DiscountPercent)
	snap.DiscountedMonthly = snap.MonthlyFee
	snap.Savings = snap.SetupFee.Sub(snap.DiscountedSetup)
	snap.TotalDueToday = snap.DiscountedSetup.Add(snap.DiscountedMonthly)
	return snap
}

func applyDiscount(setup decimal.Decimal, percent int) decimal.Decimal {
	if percent == 0 {
		return setup
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(percent))).Div(hundred)
	return roundUnit(setup.Mul(factor))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Calculator resuelve ítems contra el catálogo y calcula el snapshot.
type Calculator struct {
	catalog *catalog.Catalog
}

// NewCalculator construye el calculador sobre un catálogo.
func NewCalculator(c *catalog.Catalog) *Calculator {
	return &Calculator{catalog: c}
}

// Catalog expone el catálogo subyacente.
func (c *Calculator) Catalog() *catalog.Catalog {
	return c.catalog
}

// Resolve convierte ítems del carrito en líneas con precio base.
// Devuelve domain.ErrProductNotFound si algún producto o nivel no existe.
func (c *Calculator) Resolve(items []entity.CartItem) ([]BaseLine, error) {
	lines := make([]BaseLine, 0, len(items))
	for _, it := range items {
		base, ok := c.catalog.Lookup(it.ProductType, it.ProductID, it.Tier)
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		lines = append(lines, BaseLine{
			ProductType: it.ProductType,
			ProductID:   it.ProductID,
			Name:        base.Name,
			Tier:        base.Tier,
			Quantity:    it.Quantity,
			SetupFee:    base.SetupFee,
			MonthlyFee:  base.MonthlyFee,
		})
	}
	return lines, nil
}

// Quote calcula el snapshot para un conjunto de ítems (uno solo en el checkout directo).
func (c *Calculator) Quote(items []entity.CartItem, currency entity.Currency, discountPercent int) (entity.PricingSnapshot, error) {
	lines, err := c.Resolve(items)
	if err != nil {
		return entity.PricingSnapshot{}, err
	}
	return ComputeTotal(lines, currency, discountPercent), nil
}
