package ports

import (
	"context"

	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

// PaymentCustomer datos del cliente que viajan al proveedor de pagos.
type PaymentCustomer struct {
	Name         string
	Email        string
	BusinessName string
	Phone        string
}

// PaymentSessionRequest todo lo necesario para abrir la página de pago.
// Snapshot ya viene calculado en el servidor; el adaptador no recalcula precios.
type PaymentSessionRequest struct {
	CheckoutSessionID string
	PurchaseType      string
	ProductType       entity.ProductType
	ProductID         string
	Tier              entity.TierKey
	Items             []entity.CartItem
	Customer          PaymentCustomer
	PromoCode         string
	Snapshot          entity.PricingSnapshot
}

// PaymentSession sesión creada por el proveedor. URL nunca vacía en un éxito.
type PaymentSession struct {
	ID  string
	URL string
}

// GatewayError fallo reportado por el proveedor. Message es lo que ve el cliente.
type GatewayError struct {
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return "payment gateway: " + e.Message + ": " + e.Err.Error()
	}
	return "payment gateway: " + e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PaymentGateway puerto de salida hacia el colaborador que crea la sesión de pago.
// Una sola llamada por envío; sin reintentos automáticos.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req PaymentSessionRequest) (*PaymentSession, error)
}
