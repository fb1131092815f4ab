package entity

import "github.com/shopspring/decimal"

// Currency moneda de presentación y cobro.
type Currency string

const (
	CurrencyCAD Currency = "cad"
	CurrencyUSD Currency = "usd"
)

// PriceLine línea de precio ya convertida a la moneda del snapshot y multiplicada por la cantidad.
type PriceLine struct {
	ProductType ProductType
	ProductID   string
	Name        string
	Tier        TierKey
	Quantity    int
	SetupFee    decimal.Decimal
	MonthlyFee  decimal.Decimal
}

// PricingSnapshot resultado derivado del calculador. No se persiste como fuente de verdad.
type PricingSnapshot struct {
	Currency          Currency
	Lines             []PriceLine
	SetupFee          decimal.Decimal // sin descuento (para el tachado)
	MonthlyFee        decimal.Decimal
	DiscountPercent   int
	DiscountedSetup   decimal.Decimal
	DiscountedMonthly decimal.Decimal // siempre igual a MonthlyFee
	Savings           decimal.Decimal
	TotalDueToday     decimal.Decimal
}
