package dto

import "github.com/shopspring/decimal"

// TierDTO precio mensual de un nivel.
type TierDTO struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// AutomationDTO automatización del catálogo con precios en la moneda pedida.
type AutomationDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Currency    string             `json:"currency"`
	SetupFee    decimal.Decimal    `json:"setupFee"`
	Tiers       map[string]TierDTO `json:"tiers"`
	Features    []string           `json:"features"`
}

// BundleDTO paquete del catálogo.
type BundleDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Icon          string          `json:"icon"`
	Currency      string          `json:"currency"`
	SetupFee      decimal.Decimal `json:"setupFee"`
	MonthlyFee    decimal.Decimal `json:"monthlyFee"`
	Features      []string        `json:"features"`
	AutomationIDs []string        `json:"automationIds"`
}
