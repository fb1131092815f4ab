package pricing

import (
	"strings"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// Mensajes que ve el cliente al aplicar un código.
const (
	MsgInvalidPromoCode = "Invalid promo code"
	MsgSubscriptionOnly = "This code is for subscription discounts only"
)

// DefaultPromoCodes tabla estática de códigos vigentes.
func DefaultPromoCodes() []entity.PromoCode {
	return []entity.PromoCode{
		{Code: "OASISAI15", Percent: 15, AppliesTo: entity.AppliesToSetup},
		{Code: "WELCOME10", Percent: 10, AppliesTo: entity.AppliesToSetup},
		{Code: "LAUNCH20", Percent: 20, AppliesTo: entity.AppliesToSetup},
	}
}

// PromoResult resultado de aplicar un código.
type PromoResult struct {
	Success bool
	Code    string // normalizado; vacío si falló
	Percent int
	Error   string
}

// Outcome etiqueta corta del resultado (success|invalid|subscription_only).
func (r PromoResult) Outcome() string {
	switch {
	case r.Success:
		return "success"
	case r.Error == MsgSubscriptionOnly:
		return "subscription_only"
	default:
		return "invalid"
	}
}

// DiscountEngine valida códigos contra una tabla inmutable.
type DiscountEngine struct {
	codes map[string]entity.PromoCode
}

// NewDiscountEngine construye el motor. Las claves se normalizan a mayúsculas.
func NewDiscountEngine(codes []entity.PromoCode) *DiscountEngine {
	m := make(map[string]entity.PromoCode, len(codes))
	for _, c := range codes {
		c.Code = NormalizeCode(c.Code)
		m[c.Code] = c
	}
	return &DiscountEngine{codes: m}
}

// NormalizeCode recorta espacios y pasa a mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply valida el código. Solo los códigos que incluyen la instalación tienen éxito:
// el descuento nunca toca la mensualidad.
func (e *DiscountEngine) Apply(code string) PromoResult {
	promo, ok := e.codes[NormalizeCode(code)]
	if !ok {
		return PromoResult{Error: MsgInvalidPromoCode}
	}
	if !promo.AppliesTo.IncludesSetup() {
		return PromoResult{Error: MsgSubscriptionOnly}
	}
	return PromoResult{Success: true, Code: promo.Code, Percent: clampPercent(promo.Percent)}
}

// DiscountState el único descuento activo de un carrito o checkout.
type DiscountState struct {
	Code    string
	Percent int
	Error   string
}

// Apply reemplaza siempre el estado anterior (sin acumulación). Un código
// inválido deja el porcentaje en 0.
func (s *DiscountState) Apply(engine *DiscountEngine, code string) PromoResult {
	res := engine.Apply(code)
	s.Code = res.Code
	s.Percent = res.Percent
	s.Error = res.Error
	return res
}

// Clear quita el código activo.
func (s *DiscountState) Clear() {
	*s = DiscountState{}
}
