package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain"
	domcheckout "github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

// CreatePaymentSession atiende el endpoint directo de sesión de pago, usado por
// páginas que registran la aceptación legal por su cuenta. El precio se recalcula
// aquí: el descuento sale de promoCode y un discountPercent distinto se ignora.
func (uc *UseCase) CreatePaymentSession(ctx context.Context, req dto.CreatePaymentSessionRequest) (*dto.PaymentSessionResponse, error) {
	cur, ok := pricing.ParseCurrency(req.Currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", req.Currency, domain.ErrInvalidInput)
	}
	customer := ports.PaymentCustomer{
		Name:         strings.TrimSpace(req.CustomerName),
		Email:        strings.TrimSpace(req.CustomerEmail),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Phone:        strings.TrimSpace(req.CustomerPhone),
	}
	if customer.Email != "" && !domcheckout.ValidEmail(customer.Email) {
		return nil, domain.FieldErrors{domcheckout.FieldEmail: domcheckout.MsgEmailInvalid}
	}

	sel := domcheckout.Selection{Currency: cur}
	if len(req.Items) > 0 {
		for _, in := range req.Items {
			item, err := uc.resolveProduct(in.ProductType, in.ProductID, in.Tier)
			if err != nil {
				return nil, err
			}
			if in.Quantity > 0 {
				item.Quantity = in.Quantity
			}
			sel.Items = append(sel.Items, item)
		}
	} else {
		item, err := uc.resolveProduct(req.ProductType, req.ProductID, req.Tier)
		if err != nil {
			return nil, err
		}
		sel.ProductType, sel.ProductID, sel.Tier = item.ProductType, item.ProductID, item.Tier
	}

	var promo pricing.PromoResult
	if req.PromoCode != "" {
		promo = uc.engine.Apply(req.PromoCode)
		metrics.PromoApplications.WithLabelValues(promo.Outcome()).Inc()
	}
	if req.DiscountPercent != nil && *req.DiscountPercent != promo.Percent {
		uc.log.Warn().
			Int("client_percent", *req.DiscountPercent).
			Int("server_percent", promo.Percent).
			Str("promo_code", req.PromoCode).
			Msg("checkout: discountPercent del cliente ignorado")
	}

	snap, err := uc.calc.Quote(sel.CartItems(), cur, promo.Percent)
	if err != nil {
		return nil, err
	}

	ref := uuid.New().String()
	purchaseType := string(sel.ProductType)
	if len(sel.Items) > 0 {
		purchaseType = "cart"
	}
	start := uc.now()
	ps, err := uc.gateway.CreateSession(ctx, paymentRequest(ref, purchaseType, sel, customer, promo.Code, snap))
	if err == nil && (ps == nil || ps.URL == "") {
		err = errMissingURL
	}
	if err != nil {
		metrics.HandoffTotal.WithLabelValues("payment_failed").Inc()
		uc.log.Warn().Err(err).Str("reference", ref).Str("email", customer.Email).Msg("checkout: el proveedor de pagos rechazó la sesión")
		return nil, &HandoffError{Stage: StagePayment, Message: gatewayMessage(err), Err: err}
	}
	if err := uc.orders.Create(ctx, newOrder(ref, ps, customer, purchaseType, promo.Code, snap, start)); err != nil {
		uc.log.Error().Err(err).Str("reference", ref).Str("payment_session", ps.ID).Msg("checkout: no se pudo guardar el pedido")
	}
	metrics.HandoffTotal.WithLabelValues("success").Inc()
	metrics.HandoffDuration.WithLabelValues("success").Observe(uc.now().Sub(start).Seconds())
	return &dto.PaymentSessionResponse{URL: ps.URL}, nil
}
