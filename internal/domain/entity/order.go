package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Sin webhooks el pedido queda en pending_payment;
// la confirmación del cobro vive en el proveedor de pagos.
const (
	OrderStatusPendingPayment = "pending_payment"
)

// Order pedido registrado tras crear la sesión de pago.
type Order struct {
	ID                string
	CheckoutSessionID string
	PaymentSessionID  string
	PaymentURL        string
	CustomerName      string
	CustomerEmail     string
	BusinessName      string
	CustomerPhone     string
	PurchaseType      string
	Summary           string // nombres de las líneas, separados por coma
	Currency          Currency
	SetupFee          decimal.Decimal
	DiscountPercent   int
	PromoCode         string
	DiscountedSetup   decimal.Decimal
	MonthlyFee        decimal.Decimal
	TotalDueToday     decimal.Decimal
	Status            string
	CreatedAt         time.Time
}
