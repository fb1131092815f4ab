package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductType tipo de producto vendible.
type ProductType string

const (
	ProductTypeAutomation ProductType = "automation"
	ProductTypeBundle     ProductType = "bundle"
	// ProductTypeCustom solo aparece en pedidos del flujo de acuerdo personalizado.
	ProductTypeCustom ProductType = "custom_agreement"
)

// ParseProductType normaliza el tipo recibido del frontend. "agent" es el nombre
// que usa el carrito para una automatización.
func ParseProductType(s string) (ProductType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "automation", "agent":
		return ProductTypeAutomation, true
	case "bundle":
		return ProductTypeBundle, true
	default:
		return "", false
	}
}

// TierKey nivel de precio de una automatización.
type TierKey string

const (
	TierStarter      TierKey = "starter"
	TierProfessional TierKey = "professional"
	TierBusiness     TierKey = "business"
)

// DefaultTier se usa cuando el cliente no elige nivel.
const DefaultTier = TierProfessional

// AllTiers en el orden en que se muestran.
var AllTiers = []TierKey{TierStarter, TierProfessional, TierBusiness}

// ParseTier valida el nivel. Vacío devuelve DefaultTier.
func ParseTier(s string) (TierKey, bool) {
	switch TierKey(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultTier, true
	case TierStarter:
		return TierStarter, true
	case TierProfessional:
		return TierProfessional, true
	case TierBusiness:
		return TierBusiness, true
	default:
		return "", false
	}
}

// Tier precio mensual recurrente (CAD) de un nivel.
type Tier struct {
	Name  string
	Price decimal.Decimal
}

// CatalogItem automatización vendible. Montos en CAD, unidades enteras.
// Inmutable: se define en compilación y nunca se modifica en runtime.
type CatalogItem struct {
	ID          string
	Name        string
	Description string
	Icon        Icon
	SetupFee    decimal.Decimal
	Tiers       map[TierKey]Tier
	Features    []string
}

// Bundle paquete de automatizaciones con precio propio.
type Bundle struct {
	ID            string
	Name          string
	Description   string
	Icon          Icon
	SetupFee      decimal.Decimal
	MonthlyFee    decimal.Decimal
	Features      []string
	AutomationIDs []string
}
