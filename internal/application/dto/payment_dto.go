package dto

// CreatePaymentSessionRequest payload de POST /api/create-checkout-session.
// discountPercent se acepta por compatibilidad pero el servidor lo recalcula desde promoCode.
type CreatePaymentSessionRequest struct {
	ProductID       string        `json:"productId"`
	ProductType     string        `json:"productType"`
	Tier            string        `json:"tier,omitempty"`
	Items           []CartItemDTO `json:"items,omitempty"`
	Currency        string        `json:"currency"`
	CustomerName    string        `json:"customerName,omitempty"`
	BusinessName    string        `json:"businessName,omitempty"`
	CustomerEmail   string        `json:"customerEmail,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty"`
	DiscountPercent *int          `json:"discountPercent,omitempty"`
	PromoCode       string        `json:"promoCode,omitempty"`
}

// PaymentSessionResponse respuesta exitosa: URL de la página de pago.
type PaymentSessionResponse struct {
	URL string `json:"url"`
}

// PaymentErrorResponse respuesta de error del mismo endpoint.
type PaymentErrorResponse struct {
	Error string `json:"error"`
}
