// Package checkout orquesta el checkout de varios pasos: validación por paso,
// audit log de aceptaciones legales y handoff al proveedor de pagos.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/domain"
	domcheckout "github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/pkg/logger"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

// Config parámetros del checkout.
type Config struct {
	SessionTTL      time.Duration
	DocumentVersion string
}

// Deps dependencias del caso de uso.
type Deps struct {
	Sessions repository.CheckoutSessionRepository
	Carts    repository.CartRepository
	Orders   repository.OrderRepository
	Tx       TxRunner
	Gateway  ports.PaymentGateway
	PDF      ports.QuotePDFGenerator
	Calc     *pricing.Calculator
	Engine   *pricing.DiscountEngine
	Log      *logger.Logger
}

// UseCase casos de uso del checkout.
type UseCase struct {
	cfg      Config
	sessions repository.CheckoutSessionRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	tx       TxRunner
	gateway  ports.PaymentGateway
	pdf      ports.QuotePDFGenerator
	calc     *pricing.Calculator
	engine   *pricing.DiscountEngine
	log      *logger.Logger
	inflight *inflight
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(cfg Config, d Deps) *UseCase {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		cfg:      cfg,
		sessions: d.Sessions,
		carts:    d.Carts,
		orders:   d.Orders,
		tx:       d.Tx,
		gateway:  d.Gateway,
		pdf:      d.PDF,
		calc:     d.Calc,
		engine:   d.Engine,
		log:      log.Component("checkout"),
		inflight: newInflight(),
		now:      time.Now,
	}
}

// Create abre una sesión en el paso de datos del cliente.
func (uc *UseCase) Create(ctx context.Context, req dto.CreateCheckoutRequest) (*dto.CheckoutSessionResponse, error) {
	flow, ok := domcheckout.ParseFlow(req.Flow)
	if !ok {
		return nil, fmt.Errorf("flow %q: %w", req.Flow, domain.ErrInvalidInput)
	}
	cur, ok := pricing.ParseCurrency(req.Currency)
	if !ok {
		return nil, fmt.Errorf("currency %q: %w", req.Currency, domain.ErrInvalidInput)
	}
	sel := domcheckout.Selection{Currency: cur}
	promoCode := req.PromoCode

	if flow == domcheckout.FlowStandard {
		switch {
		case req.CartID != "":
			c, err := uc.carts.GetByID(ctx, req.CartID)
			if err != nil {
				return nil, err
			}
			if len(c.Items) == 0 {
				return nil, fmt.Errorf("carrito vacío: %w", domain.ErrInvalidInput)
			}
			sel.CartID = c.ID
			sel.Items = c.Items
			if promoCode == "" {
				promoCode = c.PromoCode
			}
		default:
			item, err := uc.resolveProduct(req.ProductType, req.ProductID, req.Tier)
			if err != nil {
				return nil, err
			}
			sel.ProductType, sel.ProductID, sel.Tier = item.ProductType, item.ProductID, item.Tier
		}
	}

	now := uc.now().UTC()
	s := domcheckout.NewSession(uuid.New().String(), flow, sel, now, uc.cfg.SessionTTL)
	if promoCode != "" {
		res := s.Discount.Apply(uc.engine, promoCode)
		metrics.PromoApplications.WithLabelValues(res.Outcome()).Inc()
	}
	if err := uc.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("crear sesión de checkout: %w", err)
	}
	return uc.toResponse(s)
}

// Get estado actual. Una sesión completada sigue visible después de vencer.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Completed && s.Expired(uc.now()) {
		return nil, domain.ErrSessionExpired
	}
	return uc.toResponse(s)
}

// UpdateSelection cambia nivel o moneda; el código aplicado se conserva.
func (uc *UseCase) UpdateSelection(ctx context.Context, id string, req dto.UpdateSelectionRequest) (*dto.CheckoutSessionResponse, error) {
	var tier entity.TierKey
	if req.Tier != "" {
		t, ok := entity.ParseTier(req.Tier)
		if !ok {
			return nil, fmt.Errorf("tier %q: %w", req.Tier, domain.ErrInvalidInput)
		}
		tier = t
	}
	var cur entity.Currency
	if req.Currency != "" {
		c, ok := pricing.ParseCurrency(req.Currency)
		if !ok {
			return nil, fmt.Errorf("currency %q: %w", req.Currency, domain.ErrInvalidInput)
		}
		cur = c
	}
	return uc.mutate(ctx, id, func(s *domcheckout.Session) error {
		return s.ChangeSelection(tier, cur)
	})
}

// ApplyPromo reemplaza el código activo de la sesión.
func (uc *UseCase) ApplyPromo(ctx context.Context, id, code string) (*dto.CheckoutSessionResponse, error) {
	return uc.mutate(ctx, id, func(s *domcheckout.Session) error {
		res, err := s.ApplyPromo(uc.engine, code)
		if err != nil {
			return err
		}
		metrics.PromoApplications.WithLabelValues(res.Outcome()).Inc()
		return nil
	})
}

// SubmitDetails paso 1. Los valores ingresados se guardan aunque la validación falle.
func (uc *UseCase) SubmitDetails(ctx context.Context, id string, req dto.CustomerDetailsDTO) (*dto.CheckoutSessionResponse, error) {
	return uc.mutate(ctx, id, func(s *domcheckout.Session) error {
		err := s.SubmitDetails(domcheckout.CustomerDetails{
			FullName:     req.FullName,
			Email:        req.Email,
			BusinessName: req.BusinessName,
			Phone:        req.Phone,
		})
		recordStep(domcheckout.StepDetails, err)
		return err
	})
}

// Back vuelve al paso anterior.
func (uc *UseCase) Back(ctx context.Context, id string) (*dto.CheckoutSessionResponse, error) {
	return uc.mutate(ctx, id, func(s *domcheckout.Session) error {
		return s.Back()
	})
}

// SubmitLegal paso 2. En el flujo standard dispara el handoff.
func (uc *UseCase) SubmitLegal(ctx context.Context, id string, req dto.LegalRequest, meta RequestMeta) (*StepResult, error) {
	if !uc.inflight.acquire(id) {
		return nil, domain.ErrSubmitInProgress
	}
	defer uc.inflight.release(id)

	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.AcceptLegal(domcheckout.LegalInput{
		Terms:            req.Terms,
		Privacy:          req.Privacy,
		ServiceAgreement: req.ServiceAgreement,
	}, uc.now().UTC())
	recordStep(domcheckout.StepLegal, err)
	if err != nil {
		return nil, uc.saveOnValidation(ctx, s, err)
	}
	if s.Flow == domcheckout.FlowCustomAgreement {
		return uc.saveStep(ctx, s)
	}
	return uc.handoff(ctx, s, meta)
}

// SubmitNDA paso 3 del flujo personalizado; dispara el handoff.
func (uc *UseCase) SubmitNDA(ctx context.Context, id string, req dto.NDARequest, meta RequestMeta) (*StepResult, error) {
	if !uc.inflight.acquire(id) {
		return nil, domain.ErrSubmitInProgress
	}
	defer uc.inflight.release(id)

	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.SubmitNDA(domcheckout.NDAInput{
		UpfrontCost: req.UpfrontCost,
		MonthlyCost: req.MonthlyCost,
		Description: req.Description,
		Signature:   req.Signature,
		Agreed:      req.Agreed,
	}, uc.now().UTC())
	recordStep(domcheckout.StepNDA, err)
	if err != nil {
		return nil, uc.saveOnValidation(ctx, s, err)
	}
	return uc.handoff(ctx, s, meta)
}

// QuotePDF resumen del pedido en PDF.
func (uc *UseCase) QuotePDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", domain.ErrServiceUnavailable
	}
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	snap, err := s.Quote(uc.calc)
	if err != nil {
		return nil, "", err
	}
	doc := ports.QuoteDocument{
		Reference:    s.ID,
		IssuedAt:     uc.now().UTC(),
		CustomerName: s.Details.FullName,
		Email:        s.Details.Email,
		BusinessName: s.Details.BusinessName,
		PromoCode:    s.Discount.Code,
		Snapshot:     snap,
	}
	b, err := uc.pdf.GenerateQuotePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return b, fmt.Sprintf("quote-%s.pdf", shortID(s.ID)), nil
}

// PurgeExpired borra sesiones abandonadas.
func (uc *UseCase) PurgeExpired(ctx context.Context) (int64, error) {
	return uc.sessions.DeleteExpired(ctx, uc.now().UTC())
}

func (uc *UseCase) load(ctx context.Context, id string) (*domcheckout.Session, error) {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.Completed && s.Expired(uc.now()) {
		return nil, domain.ErrSessionExpired
	}
	return s, nil
}

// mutate carga, aplica fn y guarda. Con FieldErrors también guarda lo ingresado.
func (uc *UseCase) mutate(ctx context.Context, id string, fn func(s *domcheckout.Session) error) (*dto.CheckoutSessionResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, uc.saveOnValidation(ctx, s, err)
	}
	res, err := uc.saveStep(ctx, s)
	if err != nil {
		return nil, err
	}
	return res.Session, nil
}

func (uc *UseCase) saveOnValidation(ctx context.Context, s *domcheckout.Session, cause error) error {
	var fe domain.FieldErrors
	if !errors.As(cause, &fe) {
		return cause
	}
	s.UpdatedAt = uc.now().UTC()
	if err := uc.sessions.Update(ctx, s); err != nil {
		return fmt.Errorf("guardar sesión de checkout: %w", err)
	}
	return cause
}

func (uc *UseCase) saveStep(ctx context.Context, s *domcheckout.Session) (*StepResult, error) {
	s.UpdatedAt = uc.now().UTC()
	if err := uc.sessions.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión de checkout: %w", err)
	}
	resp, err := uc.toResponse(s)
	if err != nil {
		return nil, err
	}
	return &StepResult{Session: resp}, nil
}

func (uc *UseCase) resolveProduct(productType, productID, tier string) (entity.CartItem, error) {
	pt, ok := entity.ParseProductType(productType)
	if !ok {
		return entity.CartItem{}, domain.ErrProductNotFound
	}
	item := entity.CartItem{ProductID: productID, ProductType: pt, Quantity: 1}
	if pt == entity.ProductTypeAutomation {
		t, ok := entity.ParseTier(tier)
		if !ok {
			return entity.CartItem{}, fmt.Errorf("tier %q: %w", tier, domain.ErrInvalidInput)
		}
		item.Tier = t
	}
	if _, ok := uc.calc.Catalog().Lookup(item.ProductType, item.ProductID, item.Tier); !ok {
		return entity.CartItem{}, domain.ErrProductNotFound
	}
	return item, nil
}

func recordStep(step domcheckout.Step, err error) {
	outcome := "advanced"
	var fe domain.FieldErrors
	switch {
	case errors.As(err, &fe):
		outcome = "invalid"
	case err != nil:
		outcome = "rejected"
	}
	metrics.StepTransitions.WithLabelValues(step.String(), outcome).Inc()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
