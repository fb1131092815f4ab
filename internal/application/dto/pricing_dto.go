package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// QuoteRequest parámetros de GET /api/pricing/quote.
type QuoteRequest struct {
	ProductType string `query:"productType"`
	ProductID   string `query:"productId"`
	Tier        string `query:"tier"`
	Currency    string `query:"currency"`
	PromoCode   string `query:"promoCode"`
}

// PriceLineDTO línea del resumen de pedido.
type PriceLineDTO struct {
	ProductType string          `json:"productType"`
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Tier        string          `json:"tier,omitempty"`
	Quantity    int             `json:"quantity"`
	SetupFee    decimal.Decimal `json:"setupFee"`
	MonthlyFee  decimal.Decimal `json:"monthlyFee"`
}

// PricingDTO resumen de pedido. setupFee se muestra tachado cuando hay descuento.
type PricingDTO struct {
	Currency          string          `json:"currency"`
	Lines             []PriceLineDTO  `json:"lines"`
	SetupFee          decimal.Decimal `json:"setupFee"`
	MonthlyFee        decimal.Decimal `json:"monthlyFee"`
	DiscountPercent   int             `json:"discountPercent"`
	DiscountedSetup   decimal.Decimal `json:"discountedSetup"`
	DiscountedMonthly decimal.Decimal `json:"discountedMonthly"`
	Savings           decimal.Decimal `json:"savings"`
	TotalDueToday     decimal.Decimal `json:"totalDueToday"`
}

// PromoDTO estado del código aplicado.
type PromoDTO struct {
	Code    string `json:"code,omitempty"`
	Percent int    `json:"percent"`
	Error   string `json:"error,omitempty"`
}

// QuoteResponse cotización de un producto.
type QuoteResponse struct {
	Pricing PricingDTO `json:"pricing"`
	Promo   PromoDTO   `json:"promo"`
}

// ValidatePromoRequest entrada de POST /api/promo/validate y de los endpoints de promo.
type ValidatePromoRequest struct {
	Code string `json:"code"`
}

// ValidatePromoResponse resultado de aplicar un código.
type ValidatePromoResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
	Percent int    `json:"percent"`
	Error   string `json:"error,omitempty"`
}

// PricingFromSnapshot mapea el resultado del calculador.
func PricingFromSnapshot(s entity.PricingSnapshot) PricingDTO {
	lines := make([]PriceLineDTO, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, PriceLineDTO{
			ProductType: string(l.ProductType),
			ProductID:   l.ProductID,
			Name:        l.Name,
			Tier:        string(l.Tier),
			Quantity:    l.Quantity,
			SetupFee:    l.SetupFee,
			MonthlyFee:  l.MonthlyFee,
		})
	}
	return PricingDTO{
		Currency:          string(s.Currency),
		Lines:             lines,
		SetupFee:          s.SetupFee,
		MonthlyFee:        s.MonthlyFee,
		DiscountPercent:   s.DiscountPercent,
		DiscountedSetup:   s.DiscountedSetup,
		DiscountedMonthly: s.DiscountedMonthly,
		Savings:           s.Savings,
		TotalDueToday:     s.TotalDueToday,
	}
}
