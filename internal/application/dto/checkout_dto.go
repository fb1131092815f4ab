package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCheckoutRequest entrada de POST /api/checkout/sessions.
// Con cartId se cotiza el carrito; si no, el producto único.
type CreateCheckoutRequest struct {
	Flow        string `json:"flow"`
	ProductType string `json:"productType"`
	ProductID   string `json:"productId"`
	Tier        string `json:"tier"`
	Currency    string `json:"currency"`
	CartID      string `json:"cartId"`
	PromoCode   string `json:"promoCode"`
}

// UpdateSelectionRequest cambio de nivel o moneda antes del handoff.
type UpdateSelectionRequest struct {
	Tier     string `json:"tier"`
	Currency string `json:"currency"`
}

// CustomerDetailsDTO paso 1.
type CustomerDetailsDTO struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
}

// LegalRequest paso 2.
type LegalRequest struct {
	Terms            bool `json:"terms"`
	Privacy          bool `json:"privacy"`
	ServiceAgreement bool `json:"serviceAgreement"`
}

// NDARequest paso 3 del flujo de acuerdo personalizado.
type NDARequest struct {
	UpfrontCost decimal.Decimal `json:"upfrontCost"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Description string          `json:"description"`
	Signature   string          `json:"signature"`
	Agreed      bool            `json:"agreed"`
}

// NDADTO acuerdo firmado.
type NDADTO struct {
	UpfrontCost decimal.Decimal `json:"upfrontCost"`
	MonthlyCost decimal.Decimal `json:"monthlyCost"`
	Description string          `json:"description,omitempty"`
	Signature   string          `json:"signature"`
	AcceptedAt  time.Time       `json:"acceptedAt"`
}

// SelectionDTO lo que se está comprando.
type SelectionDTO struct {
	ProductType string        `json:"productType,omitempty"`
	ProductID   string        `json:"productId,omitempty"`
	Tier        string        `json:"tier,omitempty"`
	Currency    string        `json:"currency"`
	CartID      string        `json:"cartId,omitempty"`
	Items       []CartItemDTO `json:"items,omitempty"`
}

// CheckoutSessionResponse estado del checkout para pintar el paso actual.
type CheckoutSessionResponse struct {
	ID              string             `json:"id"`
	Flow            string             `json:"flow"`
	Step            int                `json:"step"`
	StepName        string             `json:"stepName"`
	Selection       SelectionDTO       `json:"selection"`
	Promo           PromoDTO           `json:"promo"`
	Details         CustomerDetailsDTO `json:"details"`
	LegalAccepted   bool               `json:"legalAccepted"`
	NDA             *NDADTO            `json:"nda,omitempty"`
	ReadyForHandoff bool               `json:"readyForHandoff"`
	Completed       bool               `json:"completed"`
	PaymentURL      string             `json:"paymentUrl,omitempty"`
	Pricing         PricingDTO         `json:"pricing"`
	ExpiresAt       time.Time          `json:"expiresAt"`
}

// HandoffErrorResponse fallo del audit log o del proveedor de pagos. El paso se conserva.
type HandoffErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Session *CheckoutSessionResponse `json:"session,omitempty"`
}
