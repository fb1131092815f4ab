package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeResponse identidad del cliente autenticado.
type MeResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// OrderResponse pedido visible en el portal y en administración.
type OrderResponse struct {
	ID                string          `json:"id"`
	CheckoutSessionID string          `json:"checkoutSessionId"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	BusinessName      string          `json:"businessName,omitempty"`
	PurchaseType      string          `json:"purchaseType"`
	Summary           string          `json:"summary"`
	Currency          string          `json:"currency"`
	SetupFee          decimal.Decimal `json:"setupFee"`
	DiscountPercent   int             `json:"discountPercent"`
	PromoCode         string          `json:"promoCode,omitempty"`
	DiscountedSetup   decimal.Decimal `json:"discountedSetup"`
	MonthlyFee        decimal.Decimal `json:"monthlyFee"`
	TotalDueToday     decimal.Decimal `json:"totalDueToday"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// OrderListResponse listado paginado.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AgreementResponse documento aceptado por el cliente (audit log).
type AgreementResponse struct {
	ID                  string    `json:"id"`
	DocumentType        string    `json:"documentType"`
	DocumentVersion     string    `json:"documentVersion"`
	AcceptanceMethod    string    `json:"acceptanceMethod"`
	RelatedPurchaseType string    `json:"relatedPurchaseType"`
	CompanyName         string    `json:"companyName,omitempty"`
	AcceptedAt          time.Time `json:"acceptedAt"`
}
