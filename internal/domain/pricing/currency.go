package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// CADToUSD tasa fija. USD→CAD usa su inverso (1/0.71 ≈ 1.41).
var CADToUSD = decimal.RequireFromString("0.71")

// ParseCurrency valida la moneda (sin distinguir mayúsculas). Vacío = CAD, la moneda base.
func ParseCurrency(s string) (entity.Currency, bool) {
	switch entity.Currency(strings.ToLower(strings.TrimSpace(s))) {
	case "", entity.CurrencyCAD:
		return entity.CurrencyCAD, true
	case entity.CurrencyUSD:
		return entity.CurrencyUSD, true
	default:
		return "", false
	}
}

// Convert aplica la tasa fija y redondea a la unidad (half-up).
// La ida y vuelta CAD→USD→CAD puede diferir en ±1 por el redondeo.
func Convert(amount decimal.Decimal, from, to entity.Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	switch {
	case from == entity.CurrencyCAD && to == entity.CurrencyUSD:
		return roundUnit(amount.Mul(CADToUSD))
	case from == entity.CurrencyUSD && to == entity.CurrencyCAD:
		return roundUnit(amount.Div(CADToUSD))
	}
	return amount
}

// roundUnit redondea a entero. decimal.Round es "half away from zero", que para
// montos no negativos coincide con half-up.
func roundUnit(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
