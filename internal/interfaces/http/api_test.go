package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oasis-api/internal/application/cart"
	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	domcheckout "github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/internal/infrastructure/payment"
	"github.com/jhoicas/oasis-api/internal/infrastructure/ratelimit"
	apphttp "github.com/jhoicas/oasis-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/oasis-api/pkg/jwt"
	"github.com/jhoicas/oasis-api/pkg/logger"
)

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type memSessions struct {
	mu   sync.Mutex
	data map[string]domcheckout.Session
}

// clone copia profunda: el caso de uso muta la sesión que recibe.
func clone(s domcheckout.Session) domcheckout.Session {
	s.Selection.Items = append([]entity.CartItem(nil), s.Selection.Items...)
	if s.Legal != nil {
		l := *s.Legal
		s.Legal = &l
	}
	if s.NDA != nil {
		n := *s.NDA
		s.NDA = &n
	}
	return s
}

func (r *memSessions) Create(_ context.Context, s *domcheckout.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.ID] = clone(*s)
	return nil
}

func (r *memSessions) GetByID(_ context.Context, id string) (*domcheckout.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := clone(s)
	return &c, nil
}

func (r *memSessions) Update(ctx context.Context, s *domcheckout.Session) error {
	return r.Create(ctx, s)
}

func (r *memSessions) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type memCarts struct {
	mu    sync.Mutex
	carts map[string]entity.Cart
}

func (r *memCarts) Create(_ context.Context, c *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	r.carts[c.ID] = cp
	return nil
}

func (r *memCarts) Update(ctx context.Context, c *entity.Cart) error { return r.Create(ctx, c) }

func (r *memCarts) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Items = append([]entity.CartItem(nil), c.Items...)
	return &c, nil
}

func (r *memCarts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, id)
	return nil
}

type memOrders struct{ orders []*entity.Order }

func (r *memOrders) Create(_ context.Context, o *entity.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *memOrders) ListByEmail(_ context.Context, email string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrders) List(_ context.Context, _, _ int) ([]*entity.Order, int, error) {
	return r.orders, len(r.orders), nil
}

type memAudit struct{ records []entity.LegalAcceptance }

func (r *memAudit) CreateBatch(_ context.Context, recs []entity.LegalAcceptance) error {
	r.records = append(r.records, recs...)
	return nil
}

func (r *memAudit) ListByEmail(context.Context, string) ([]*entity.LegalAcceptance, error) {
	out := make([]*entity.LegalAcceptance, 0, len(r.records))
	for i := range r.records {
		out = append(out, &r.records[i])
	}
	return out, nil
}

type fakeTx struct{ repo *memAudit }

func (t *fakeTx) RunAcceptances(_ context.Context, fn func(repository.LegalAcceptanceRepository) error) error {
	return fn(t.repo)
}

type fakeGateway struct {
	err error
}

func (g *fakeGateway) CreateSession(context.Context, ports.PaymentSessionRequest) (*ports.PaymentSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &ports.PaymentSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

type memContacts struct{ msgs []*entity.ContactMessage }

func (r *memContacts) Create(_ context.Context, m *entity.ContactMessage) error {
	r.msgs = append(r.msgs, m)
	return nil
}

func (r *memContacts) List(context.Context, int, int) ([]*entity.ContactMessage, int, error) {
	return r.msgs, len(r.msgs), nil
}

type echoModel struct{}

func (echoModel) Reply(_ context.Context, _ string, h []entity.ChatMessage) (string, error) {
	return "You asked: " + h[len(h)-1].Content, nil
}

// ── App de prueba ─────────────────────────────────────────────────────────────

type testAPI struct {
	app     *fiber.App
	gateway *fakeGateway
	orders  *memOrders
}

func newTestAPI() *testAPI {
	gw := &fakeGateway{}
	api := newTestAPIWithGateway(gw)
	api.gateway = gw
	return api
}

func newTestAPIWithGateway(gw ports.PaymentGateway) *testAPI {
	cat := catalog.Default()
	calc := pricing.NewCalculator(cat)
	engine := pricing.NewDiscountEngine(pricing.DefaultPromoCodes())
	carts := &memCarts{carts: map[string]entity.Cart{}}
	orders := &memOrders{}
	audit := &memAudit{}

	checkoutUC := appcheckout.NewUseCase(appcheckout.Config{SessionTTL: time.Hour, DocumentVersion: "1.0"}, appcheckout.Deps{
		Sessions: &memSessions{data: map[string]domcheckout.Session{}},
		Carts:    carts,
		Orders:   orders,
		Tx:       &fakeTx{repo: audit},
		Gateway:  gw,
		Calc:     calc,
		Engine:   engine,
		Log:      logger.Nop(),
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC:  usecase.NewCatalogUseCase(calc, engine),
		CartUC:     cart.NewUseCase(carts, calc, engine),
		CheckoutUC: checkoutUC,
		ContactUC:  usecase.NewContactUseCase(&memContacts{}, ratelimit.NewSubmitLimiter(time.Minute)),
		ChatUC:     usecase.NewChatUseCase(echoModel{}, cat),
		PortalUC:   usecase.NewPortalUseCase(orders, audit),
		JWTSecret:  testJWTSecret,
		JWTIssuer:  testIssuer,
	})
	return &testAPI{app: app, orders: orders}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, headers ...string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func field(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[p]
	}
	return cur
}

// ── Precios ───────────────────────────────────────────────────────────────────

func TestQuote_EscenarioAEnUSD(t *testing.T) {
	api := newTestAPI()
	status, body := api.do(t, http.MethodGet, "/api/pricing/quote?productType=automation&productId=ai-receptionist&tier=professional&currency=usd", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "708", field(body, "pricing", "setupFee"))
	assert.Equal(t, "211", field(body, "pricing", "monthlyFee"))
	assert.Equal(t, "919", field(body, "pricing", "totalDueToday"))
}

func TestQuote_CodigoInvalidoNoEsError(t *testing.T) {
	api := newTestAPI()
	status, body := api.do(t, http.MethodGet, "/api/pricing/quote?productType=automation&productId=ai-receptionist&tier=professional&currency=usd&promoCode=XYZ123", nil)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Invalid promo code", field(body, "promo", "error"))
	assert.Equal(t, "919", field(body, "pricing", "totalDueToday"))
}

func TestQuote_NivelInvalidoMensajeFijo(t *testing.T) {
	api := newTestAPI()
	status, body := api.do(t, http.MethodGet, "/api/pricing/quote?productType=automation&productId=ai-receptionist&tier=platinum", nil)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", body["code"])
	assert.Equal(t, apphttp.MsgInvalidInput, body["message"])
}

func TestQuote_ProductoDesconocido404(t *testing.T) {
	api := newTestAPI()
	status, body := api.do(t, http.MethodGet, "/api/pricing/quote?productType=automation&productId=nope", nil)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func TestCheckout_EmailVacioDevuelve422YConservaPaso(t *testing.T) {
	api := newTestAPI()
	status, s := api.do(t, http.MethodPost, "/api/checkout/sessions", map[string]any{
		"productType": "automation", "productId": "ai-receptionist", "tier": "professional", "currency": "usd",
	})
	require.Equal(t, http.StatusCreated, status)
	id := s["id"].(string)

	status, body := api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/details", map[string]any{"fullName": "Jane Doe"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Email is required", field(body, "fields", "email"))

	_, s = api.do(t, http.MethodGet, "/api/checkout/sessions/"+id, nil)
	assert.Equal(t, float64(1), s["step"])
}

func TestCheckout_PagoRechazadoLuegoReintento(t *testing.T) {
	api := newTestAPI()
	_, s := api.do(t, http.MethodPost, "/api/checkout/sessions", map[string]any{
		"productType": "automation", "productId": "ai-receptionist", "tier": "professional", "currency": "usd", "promoCode": "WELCOME10",
	})
	id := s["id"].(string)
	status, _ := api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/details", map[string]any{"fullName": "Jane Doe", "email": "jane@example.com"})
	require.Equal(t, http.StatusOK, status)

	legal := map[string]any{"terms": true, "privacy": true, "serviceAgreement": true}
	api.gateway.err = &ports.GatewayError{Message: "card declined"}
	status, body := api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/legal", legal, "User-Agent", "test-agent")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "card declined", body["message"])
	assert.Equal(t, float64(2), field(body, "session", "step"))

	api.gateway.err = nil
	status, body = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/legal", legal)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://pay.example/cs_1", body["paymentUrl"])
	assert.Equal(t, true, body["completed"])
	assert.Equal(t, "848", field(body, "pricing", "totalDueToday"))

	status, body = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/back", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CHECKOUT_COMPLETED", body["code"])
}

func TestCheckout_VolverYReenviarConservaDatos(t *testing.T) {
	api := newTestAPI()
	_, s := api.do(t, http.MethodPost, "/api/checkout/sessions", map[string]any{
		"productType": "automation", "productId": "ai-receptionist", "tier": "professional", "currency": "usd",
	})
	id := s["id"].(string)
	details := map[string]any{"fullName": "Jane Doe", "email": "jane@example.com", "businessName": "Acme"}
	status, _ := api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/details", details)
	require.Equal(t, http.StatusOK, status)

	status, s = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), s["step"])
	assert.Equal(t, "Jane Doe", field(s, "details", "fullName"))
	assert.Equal(t, "jane@example.com", field(s, "details", "email"))
	assert.Equal(t, "Acme", field(s, "details", "businessName"))

	status, s = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/details", details)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), s["step"])
	assert.Equal(t, "Acme", field(s, "details", "businessName"))
}

func TestCheckout_AcuerdoPersonalizadoPorHTTPGateway(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"url":"https://pay.example/custom"}`))
	}))
	defer srv.Close()

	api := newTestAPIWithGateway(payment.NewHTTPGateway(srv.URL, 0))
	_, s := api.do(t, http.MethodPost, "/api/checkout/sessions", map[string]any{"flow": "custom_agreement", "currency": "cad"})
	id := s["id"].(string)
	status, _ := api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/details", map[string]any{"fullName": "Jane Doe", "email": "jane@example.com"})
	require.Equal(t, http.StatusOK, status)
	status, s = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/legal", map[string]any{"terms": true, "privacy": true, "serviceAgreement": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), s["step"])

	status, s = api.do(t, http.MethodPost, "/api/checkout/sessions/"+id+"/nda", map[string]any{
		"upfrontCost": "5000", "monthlyCost": "400", "description": "CRM sync", "signature": "jane doe", "agreed": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://pay.example/custom", s["paymentUrl"])

	assert.Equal(t, "custom-agreement", payload["productId"])
	assert.Equal(t, "custom_agreement", payload["productType"])
	assert.Equal(t, "5000", payload["setupFee"])
	assert.Equal(t, "400", payload["monthlyFee"])
	assert.Equal(t, "5400", payload["totalDueToday"])
}

func TestCheckout_SesionInexistente404(t *testing.T) {
	status, _ := newTestAPI().do(t, http.MethodGet, "/api/checkout/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreatePaymentSession_RespuestaURLYError(t *testing.T) {
	api := newTestAPI()
	payload := map[string]any{
		"productId": "ai-receptionist", "productType": "automation", "tier": "professional",
		"currency": "usd", "customerName": "Jane", "customerEmail": "jane@example.com", "promoCode": "WELCOME10",
	}
	status, body := api.do(t, http.MethodPost, "/api/create-checkout-session", payload)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://pay.example/cs_1", body["url"])

	api.gateway.err = &ports.GatewayError{Message: "card declined"}
	status, body = api.do(t, http.MethodPost, "/api/create-checkout-session", payload)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "card declined", body["error"])
}

// ── Carrito ───────────────────────────────────────────────────────────────────

func TestCart_AgregarYQuitar(t *testing.T) {
	api := newTestAPI()
	status, c := api.do(t, http.MethodPost, "/api/carts", nil)
	require.Equal(t, http.StatusCreated, status)
	id := c["id"].(string)

	status, c = api.do(t, http.MethodPost, "/api/carts/"+id+"/items", map[string]any{"productId": "growth-bundle", "productType": "bundle"})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, c["items"], 1)

	status, c = api.do(t, http.MethodDelete, "/api/carts/"+id+"/items/growth-bundle", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, c["items"])

	status, _ = api.do(t, http.MethodDelete, "/api/carts/"+id, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

// ── Contacto y chat ───────────────────────────────────────────────────────────

func TestContact_SegundoEnvioLimitado(t *testing.T) {
	api := newTestAPI()
	msg := map[string]any{"name": "Jane", "email": "jane@example.com", "message": "Hi there"}

	status, _ := api.do(t, http.MethodPost, "/api/contact", msg)
	require.Equal(t, http.StatusCreated, status)

	status, body := api.do(t, http.MethodPost, "/api/contact", msg)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, usecase.MsgRateLimited, body["message"])
}

func TestChat_Responde(t *testing.T) {
	status, body := newTestAPI().do(t, http.MethodPost, "/api/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "pricing?"}},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "You asked: pricing?", body["reply"])
}

// ── Portal y admin ────────────────────────────────────────────────────────────

func TestAdmin_RequiereRolAdmin(t *testing.T) {
	api := newTestAPI()
	status, _ := api.do(t, http.MethodGet, "/api/admin/orders", nil, "Authorization", tokenForRole(t, pkgjwt.RoleClient))
	assert.Equal(t, http.StatusForbidden, status)

	status, body := api.do(t, http.MethodGet, "/api/admin/orders", nil, "Authorization", tokenForRole(t, pkgjwt.RoleAdmin))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "items")
}

func TestPortal_MeConToken(t *testing.T) {
	status, body := newTestAPI().do(t, http.MethodGet, "/api/portal/me", nil, "Authorization", tokenForRole(t, pkgjwt.RoleClient))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, testEmail, body["email"])
}

func TestMetrics_Expuesto(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := newTestAPI().app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
