package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v82"
	stripesession "github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

var _ ports.PaymentGateway = (*StripeGateway)(nil)

// StripeConfig credenciales y URLs de retorno del Checkout hospedado.
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// StripeGateway crea Checkout Sessions de Stripe con los montos ya calculados por el servidor.
type StripeGateway struct {
	cfg                   StripeConfig
	createCheckoutSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewStripeGateway construye el adaptador contra la API real.
func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	return &StripeGateway{cfg: cfg, createCheckoutSession: stripesession.New}
}

// CreateSession abre la sesión de pago. Modo subscription si hay cuota mensual.
func (g *StripeGateway) CreateSession(ctx context.Context, req ports.PaymentSessionRequest) (*ports.PaymentSession, error) {
	if strings.TrimSpace(g.cfg.SecretKey) == "" {
		return nil, &ports.GatewayError{Message: "Payments are not configured"}
	}
	stripe.Key = strings.TrimSpace(g.cfg.SecretKey)

	params := g.buildParams(req)
	params.Context = ctx

	session, err := g.createCheckoutSession(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, &ports.GatewayError{Message: stripeErr.Msg, Err: err}
		}
		return nil, &ports.GatewayError{Err: err}
	}
	if session == nil || strings.TrimSpace(session.URL) == "" {
		return nil, &ports.GatewayError{Err: errors.New("stripe: session without url")}
	}
	return &ports.PaymentSession{ID: session.ID, URL: strings.TrimSpace(session.URL)}, nil
}

func (g *StripeGateway) buildParams(req ports.PaymentSessionRequest) *stripe.CheckoutSessionParams {
	snap := req.Snapshot
	currency := string(snap.Currency)

	var lines []*stripe.CheckoutSessionLineItemParams
	if snap.DiscountedSetup.IsPositive() {
		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toCents(snap.DiscountedSetup)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Setup fee"),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	recurring := false
	for _, l := range snap.Lines {
		if !l.MonthlyFee.IsPositive() {
			continue
		}
		recurring = true
		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toCents(l.MonthlyFee)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name + " (monthly)"),
				},
				Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
					Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	mode := stripe.CheckoutSessionModePayment
	if recurring {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(g.cfg.SuccessURL),
		CancelURL:  stripe.String(g.cfg.CancelURL),
		LineItems:  lines,
	}
	if req.Customer.Email != "" {
		params.CustomerEmail = stripe.String(req.Customer.Email)
	}
	if req.CheckoutSessionID != "" {
		params.ClientReferenceID = stripe.String(req.CheckoutSessionID)
	}
	params.AddMetadata("checkout_session_id", req.CheckoutSessionID)
	params.AddMetadata("purchase_type", req.PurchaseType)
	params.AddMetadata("customer_name", req.Customer.Name)
	params.AddMetadata("business_name", req.Customer.BusinessName)
	params.AddMetadata("items", lineNames(snap.Lines))
	params.AddMetadata("promo_code", req.PromoCode)
	params.AddMetadata("discount_percent", strconv.Itoa(snap.DiscountPercent))
	return params
}

// toCents montos enteros en la moneda del snapshot -> centavos para Stripe.
func toCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// lineNames resumen de lo comprado para la metadata.
func lineNames(lines []entity.PriceLine) string {
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}
