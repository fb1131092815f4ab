// Package catalog registro estático de automatizaciones y bundles.
// Montos en CAD (moneda base), unidades enteras.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// BasePrice precio base (CAD) de un producto y nivel.
type BasePrice struct {
	Name       string
	SetupFee   decimal.Decimal
	MonthlyFee decimal.Decimal
	Tier       entity.TierKey // vacío para bundles
}

// Catalog registro inmutable de productos. Seguro para uso concurrente (solo lectura).
type Catalog struct {
	automations map[string]entity.CatalogItem
	bundles     map[string]entity.Bundle
	order       []string
	bundleOrder []string
}

// New construye un catálogo. IDs duplicados: gana el último.
func New(items []entity.CatalogItem, bundles []entity.Bundle) *Catalog {
	c := &Catalog{
		automations: make(map[string]entity.CatalogItem, len(items)),
		bundles:     make(map[string]entity.Bundle, len(bundles)),
	}
	for _, it := range items {
		if _, dup := c.automations[it.ID]; !dup {
			c.order = append(c.order, it.ID)
		}
		c.automations[it.ID] = it
	}
	for _, b := range bundles {
		if _, dup := c.bundles[b.ID]; !dup {
			c.bundleOrder = append(c.bundleOrder, b.ID)
		}
		c.bundles[b.ID] = b
	}
	return c
}

// Default catálogo de producción.
func Default() *Catalog {
	return New(defaultAutomations(), defaultBundles())
}

// Automation busca una automatización por ID.
func (c *Catalog) Automation(id string) (entity.CatalogItem, bool) {
	it, ok := c.automations[id]
	return it, ok
}

// Bundle busca un bundle por ID.
func (c *Catalog) Bundle(id string) (entity.Bundle, bool) {
	b, ok := c.bundles[id]
	return b, ok
}

// Automations lista en orden de presentación.
func (c *Catalog) Automations() []entity.CatalogItem {
	out := make([]entity.CatalogItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.automations[id])
	}
	return out
}

// Bundles lista en orden de presentación.
func (c *Catalog) Bundles() []entity.Bundle {
	out := make([]entity.Bundle, 0, len(c.bundleOrder))
	for _, id := range c.bundleOrder {
		out = append(out, c.bundles[id])
	}
	return out
}

// Resolves indica si el producto existe.
func (c *Catalog) Resolves(productType entity.ProductType, id string) bool {
	switch productType {
	case entity.ProductTypeAutomation:
		_, ok := c.automations[id]
		return ok
	case entity.ProductTypeBundle:
		_, ok := c.bundles[id]
		return ok
	}
	return false
}

// Lookup devuelve el precio base en CAD. false si el ID o el nivel no existen.
// Un nivel vacío en una automatización usa entity.DefaultTier; los bundles ignoran el nivel.
func (c *Catalog) Lookup(productType entity.ProductType, id string, tier entity.TierKey) (BasePrice, bool) {
	switch productType {
	case entity.ProductTypeAutomation:
		it, ok := c.automations[id]
		if !ok {
			return BasePrice{}, false
		}
		if tier == "" {
			tier = entity.DefaultTier
		}
		t, ok := it.Tiers[tier]
		if !ok {
			return BasePrice{}, false
		}
		return BasePrice{Name: it.Name + " (" + t.Name + ")", SetupFee: it.SetupFee, MonthlyFee: t.Price, Tier: tier}, true
	case entity.ProductTypeBundle:
		b, ok := c.bundles[id]
		if !ok {
			return BasePrice{}, false
		}
		return BasePrice{Name: b.Name, SetupFee: b.SetupFee, MonthlyFee: b.MonthlyFee}, true
	}
	return BasePrice{}, false
}
