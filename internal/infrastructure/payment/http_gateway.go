package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
)

var _ ports.PaymentGateway = (*HTTPGateway)(nil)

// HTTPGateway envía el payload de checkout a un servicio externo que devuelve {url} o {error}.
type HTTPGateway struct {
	url    string
	client *http.Client
}

// NewHTTPGateway timeout <= 0 usa 20 s.
func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &HTTPGateway{url: url, client: &http.Client{Timeout: timeout}}
}

type checkoutItem struct {
	ProductID   string `json:"productId"`
	ProductType string `json:"productType"`
	Tier        string `json:"tier,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

type checkoutPayload struct {
	ProductID       string         `json:"productId"`
	ProductType     string         `json:"productType"`
	Tier            string         `json:"tier,omitempty"`
	Items           []checkoutItem `json:"items,omitempty"`
	Currency        string         `json:"currency"`
	CustomerName    string         `json:"customerName,omitempty"`
	BusinessName    string         `json:"businessName,omitempty"`
	CustomerEmail   string         `json:"customerEmail,omitempty"`
	CustomerPhone   string         `json:"customerPhone,omitempty"`
	DiscountPercent int            `json:"discountPercent,omitempty"`
	PromoCode       string         `json:"promoCode,omitempty"`
	// Importes ya calculados en el servidor; el acuerdo personalizado no tiene precio de catálogo.
	SetupFee        decimal.Decimal `json:"setupFee"`
	DiscountedSetup decimal.Decimal `json:"discountedSetup"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"`
	TotalDueToday   decimal.Decimal `json:"totalDueToday"`
}

type checkoutReply struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

func buildPayload(req ports.PaymentSessionRequest) checkoutPayload {
	p := checkoutPayload{
		ProductID:       req.ProductID,
		ProductType:     string(req.ProductType),
		Tier:            string(req.Tier),
		Currency:        string(req.Snapshot.Currency),
		CustomerName:    req.Customer.Name,
		BusinessName:    req.Customer.BusinessName,
		CustomerEmail:   req.Customer.Email,
		CustomerPhone:   req.Customer.Phone,
		DiscountPercent: req.Snapshot.DiscountPercent,
		PromoCode:       req.PromoCode,
		SetupFee:        req.Snapshot.SetupFee,
		DiscountedSetup: req.Snapshot.DiscountedSetup,
		MonthlyFee:      req.Snapshot.MonthlyFee,
		TotalDueToday:   req.Snapshot.TotalDueToday,
	}
	if len(req.Items) > 0 {
		for _, it := range req.Items {
			p.Items = append(p.Items, checkoutItem{
				ProductID:   it.ProductID,
				ProductType: string(it.ProductType),
				Tier:        string(it.Tier),
				Quantity:    it.Quantity,
			})
		}
		// productId es obligatorio en el payload: el primer ítem representa al carrito.
		if p.ProductID == "" {
			p.ProductID = req.Items[0].ProductID
			p.ProductType = string(req.Items[0].ProductType)
			p.Tier = string(req.Items[0].Tier)
		}
	}
	// Sin producto ni carrito (acuerdo personalizado): la única línea del snapshot lo identifica.
	if p.ProductID == "" && len(req.Snapshot.Lines) > 0 {
		p.ProductID = req.Snapshot.Lines[0].ProductID
		p.ProductType = string(req.Snapshot.Lines[0].ProductType)
	}
	if p.Currency == "" {
		p.Currency = string(entity.CurrencyCAD)
	}
	return p
}

// CreateSession un solo POST, sin reintentos. Cualquier respuesta que no sea 2xx con url es un fallo.
func (g *HTTPGateway) CreateSession(ctx context.Context, req ports.PaymentSessionRequest) (*ports.PaymentSession, error) {
	body, err := json.Marshal(buildPayload(req))
	if err != nil {
		return nil, fmt.Errorf("encode checkout payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, &ports.GatewayError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, &ports.GatewayError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ports.GatewayError{Err: err}
	}
	var reply checkoutReply
	decodeErr := json.Unmarshal(raw, &reply)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = strings.TrimSpace(reply.Error)
		}
		return nil, &ports.GatewayError{Message: msg, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return nil, &ports.GatewayError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if msg := strings.TrimSpace(reply.Error); msg != "" {
		return nil, &ports.GatewayError{Message: msg}
	}
	if strings.TrimSpace(reply.URL) == "" {
		return nil, &ports.GatewayError{Err: errors.New("response without url")}
	}
	return &ports.PaymentSession{URL: strings.TrimSpace(reply.URL)}, nil
}
