package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripe "github.com/stripe/stripe-go/v82"

	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

func sampleRequest() ports.PaymentSessionRequest {
	return ports.PaymentSessionRequest{
		CheckoutSessionID: "sess-1",
		PurchaseType:      "automation",
		ProductType:       entity.ProductTypeAutomation,
		ProductID:         "ai-receptionist",
		Tier:              "professional",
		Customer:          ports.PaymentCustomer{Name: "Ana Díaz", Email: "ana@example.com", BusinessName: "Clínica Sol"},
		PromoCode:         "WELCOME10",
		Snapshot: entity.PricingSnapshot{
			Currency: entity.CurrencyUSD,
			Lines: []entity.PriceLine{
				{Name: "AI Receptionist (Professional)", SetupFee: decimal.NewFromInt(708), MonthlyFee: decimal.NewFromInt(211), Quantity: 1},
			},
			SetupFee:        decimal.NewFromInt(708),
			MonthlyFee:      decimal.NewFromInt(211),
			DiscountPercent: 10,
			DiscountedSetup: decimal.NewFromInt(637),
			TotalDueToday:   decimal.NewFromInt(848),
		},
	}
}

// ── HTTPGateway ─────────────────────────────────────────────────────────────

func TestHTTPGateway_DevuelveURL(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"url":"https://pay.example.com/s/1"}`))
	}))
	defer srv.Close()

	ps, err := NewHTTPGateway(srv.URL, 0).CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/s/1", ps.URL)

	assert.Equal(t, "ai-receptionist", got["productId"])
	assert.Equal(t, "automation", got["productType"])
	assert.Equal(t, "professional", got["tier"])
	assert.Equal(t, "usd", got["currency"])
	assert.Equal(t, "ana@example.com", got["customerEmail"])
	assert.Equal(t, float64(10), got["discountPercent"])
	assert.Equal(t, "WELCOME10", got["promoCode"])
	assert.Equal(t, "708", got["setupFee"])
	assert.Equal(t, "637", got["discountedSetup"])
	assert.Equal(t, "211", got["monthlyFee"])
	assert.NotContains(t, got, "items")
}

func TestHTTPGateway_AcuerdoPersonalizadoEnviaProductoEImportes(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"url":"https://pay.example.com/s/2"}`))
	}))
	defer srv.Close()

	req := ports.PaymentSessionRequest{
		CheckoutSessionID: "sess-2",
		PurchaseType:      string(entity.ProductTypeCustom),
		Customer:          ports.PaymentCustomer{Name: "Ana", Email: "ana@example.com"},
		Snapshot: entity.PricingSnapshot{
			Currency: entity.CurrencyCAD,
			Lines: []entity.PriceLine{{
				ProductType: entity.ProductTypeCustom,
				ProductID:   "custom-agreement",
				Name:        "Custom Automation Agreement",
				Quantity:    1,
				SetupFee:    decimal.NewFromInt(5000),
				MonthlyFee:  decimal.NewFromInt(400),
			}},
			SetupFee:          decimal.NewFromInt(5000),
			MonthlyFee:        decimal.NewFromInt(400),
			DiscountedSetup:   decimal.NewFromInt(5000),
			DiscountedMonthly: decimal.NewFromInt(400),
			TotalDueToday:     decimal.NewFromInt(5400),
		},
	}

	ps, err := NewHTTPGateway(srv.URL, 0).CreateSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/s/2", ps.URL)

	assert.Equal(t, "custom-agreement", got["productId"])
	assert.Equal(t, "custom_agreement", got["productType"])
	assert.Equal(t, "cad", got["currency"])
	assert.Equal(t, "5000", got["setupFee"])
	assert.Equal(t, "5000", got["discountedSetup"])
	assert.Equal(t, "400", got["monthlyFee"])
	assert.Equal(t, "5400", got["totalDueToday"])
}

func TestHTTPGateway_ErrorDelColaborador(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"card declined"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, 0).CreateSession(context.Background(), sampleRequest())
	var ge *ports.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "card declined", ge.Message)
}

func TestHTTPGateway_StatusNo2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, 0).CreateSession(context.Background(), sampleRequest())
	var ge *ports.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Empty(t, ge.Message)
}

func TestHTTPGateway_RespuestaSinURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	_, err := NewHTTPGateway(srv.URL, 0).CreateSession(context.Background(), sampleRequest())
	var ge *ports.GatewayError
	assert.ErrorAs(t, err, &ge)
}

func TestBuildPayload_CarritoUsaPrimerItem(t *testing.T) {
	req := sampleRequest()
	req.ProductID, req.ProductType, req.Tier = "", "", ""
	req.Items = []entity.CartItem{
		{ProductID: "growth-bundle", ProductType: entity.ProductTypeBundle, Quantity: 1},
		{ProductID: "ai-receptionist", ProductType: entity.ProductTypeAutomation, Tier: "starter", Quantity: 2},
	}
	p := buildPayload(req)
	assert.Equal(t, "growth-bundle", p.ProductID)
	assert.Equal(t, "bundle", p.ProductType)
	require.Len(t, p.Items, 2)
	assert.Equal(t, 2, p.Items[1].Quantity)
}

// ── StripeGateway ───────────────────────────────────────────────────────────

func TestStripeGateway_SuscripcionConSetupDescontado(t *testing.T) {
	g := NewStripeGateway(StripeConfig{SecretKey: "sk_test_x", SuccessURL: "https://ok", CancelURL: "https://cancel"})
	var params *stripe.CheckoutSessionParams
	g.createCheckoutSession = func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		params = p
		return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil
	}

	ps, err := g.CreateSession(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_1", ps.ID)

	require.NotNil(t, params)
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), *params.Mode)
	assert.Equal(t, "ana@example.com", *params.CustomerEmail)
	require.Len(t, params.LineItems, 2)
	assert.Equal(t, "Setup fee", *params.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(63700), *params.LineItems[0].PriceData.UnitAmount)
	assert.Nil(t, params.LineItems[0].PriceData.Recurring)
	assert.Equal(t, int64(21100), *params.LineItems[1].PriceData.UnitAmount)
	assert.NotNil(t, params.LineItems[1].PriceData.Recurring)
	assert.Equal(t, "WELCOME10", params.Metadata["promo_code"])
	assert.Equal(t, "10", params.Metadata["discount_percent"])
}

func TestStripeGateway_PagoUnicoSinMensualidad(t *testing.T) {
	g := NewStripeGateway(StripeConfig{SecretKey: "sk_test_x"})
	req := sampleRequest()
	req.Snapshot.Lines[0].MonthlyFee = decimal.Zero
	params := g.buildParams(req)
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Len(t, params.LineItems, 1)
}

func TestStripeGateway_ErrorDeStripe(t *testing.T) {
	g := NewStripeGateway(StripeConfig{SecretKey: "sk_test_x"})
	g.createCheckoutSession = func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, &stripe.Error{Msg: "Your card was declined."}
	}
	_, err := g.CreateSession(context.Background(), sampleRequest())
	var ge *ports.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Your card was declined.", ge.Message)
}

func TestStripeGateway_SinClave(t *testing.T) {
	g := NewStripeGateway(StripeConfig{})
	g.createCheckoutSession = func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("should not be called")
	}
	_, err := g.CreateSession(context.Background(), sampleRequest())
	var ge *ports.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "Payments are not configured", ge.Message)
}
