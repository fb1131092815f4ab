package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/oasis-api/internal/application/dto"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	domcheckout "github.com/jhoicas/oasis-api/internal/domain/checkout"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/repository"
	"github.com/jhoicas/oasis-api/pkg/metrics"
)

// Mensajes del banner cuando falla una integración.
const (
	MsgAuditFailed   = "We couldn't record your agreement. Please try again."
	MsgPaymentFailed = "Unable to start checkout. Please try again."
)

// Etapas del handoff.
const (
	StageAuditLog = "audit_log"
	StagePayment  = "payment_session"
)

var errMissingURL = errors.New("payment session without url")

// HandoffError fallo del audit log o del proveedor de pagos. La sesión conserva
// el paso y el cliente puede reenviar; no hay reintentos automáticos.
type HandoffError struct {
	Stage   string
	Message string
	Err     error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("handoff %s: %v", e.Stage, e.Err)
}

func (e *HandoffError) Unwrap() error { return e.Err }

// StepResult estado de la sesión tras un paso. PaymentURL solo tras el handoff.
type StepResult struct {
	Session    *dto.CheckoutSessionResponse
	PaymentURL string
}

// inflight rechaza un segundo envío de la misma sesión mientras el primero corre.
type inflight struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{ids: make(map[string]struct{})}
}

func (f *inflight) acquire(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

func (f *inflight) release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

// handoff en orden: audit log, sesión de pago, pedido, borrado del carrito y cierre de la sesión.
func (uc *UseCase) handoff(ctx context.Context, s *domcheckout.Session, meta RequestMeta) (*StepResult, error) {
	start := uc.now()
	if err := s.BeginSubmit(); err != nil {
		return nil, err
	}
	if err := uc.sessions.Update(ctx, s); err != nil {
		s.EndSubmit()
		return nil, fmt.Errorf("marcar envío: %w", err)
	}

	snap, err := s.Quote(uc.calc)
	if err != nil {
		return uc.failHandoff(ctx, s, start, StagePayment, MsgPaymentFailed, err)
	}

	// 1. Audit log
	records := s.AuditRecords(uc.cfg.DocumentVersion, meta.UserAgent, meta.IP, start.UTC())
	err = uc.tx.RunAcceptances(ctx, func(repo repository.LegalAcceptanceRepository) error {
		return repo.CreateBatch(ctx, records)
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("session_id", s.ID).
			Str("email", s.Details.Email).
			Msg("checkout: no se pudo registrar la aceptación legal")
		return uc.failHandoff(ctx, s, start, StageAuditLog, MsgAuditFailed, err)
	}

	// 2. Sesión de pago
	req := paymentRequest(s.ID, s.PurchaseType(), s.Selection, customerFromDetails(s.Details), s.Discount.Code, snap)
	ps, err := uc.gateway.CreateSession(ctx, req)
	if err == nil && (ps == nil || ps.URL == "") {
		err = errMissingURL
	}
	if err != nil {
		uc.log.Warn().Err(err).
			Str("session_id", s.ID).
			Str("email", s.Details.Email).
			Msg("checkout: el proveedor de pagos rechazó la sesión")
		return uc.failHandoff(ctx, s, start, StagePayment, gatewayMessage(err), err)
	}

	// 3. Pedido, carrito y cierre. La redirección ya existe: los fallos solo se registran.
	order := newOrder(s.ID, ps, customerFromDetails(s.Details), s.PurchaseType(), s.Discount.Code, snap, start)
	if err := uc.orders.Create(ctx, order); err != nil {
		uc.log.Error().Err(err).Str("session_id", s.ID).Str("payment_session", ps.ID).Msg("checkout: no se pudo guardar el pedido")
	}
	if s.Selection.CartID != "" {
		if err := uc.carts.Delete(ctx, s.Selection.CartID); err != nil {
			uc.log.Warn().Err(err).Str("cart_id", s.Selection.CartID).Msg("checkout: no se pudo borrar el carrito")
		}
	}
	if err := s.CompleteHandoff(ps.URL); err != nil {
		return nil, err
	}
	s.UpdatedAt = uc.now().UTC()
	if err := uc.sessions.Update(ctx, s); err != nil {
		uc.log.Error().Err(err).Str("session_id", s.ID).Msg("checkout: no se pudo cerrar la sesión")
	}

	metrics.HandoffTotal.WithLabelValues("success").Inc()
	metrics.HandoffDuration.WithLabelValues("success").Observe(uc.now().Sub(start).Seconds())
	uc.log.Info().Str("session_id", s.ID).Str("payment_session", ps.ID).Msg("checkout: handoff completado")

	resp, err := uc.toResponse(s)
	if err != nil {
		return nil, err
	}
	return &StepResult{Session: resp, PaymentURL: ps.URL}, nil
}

func (uc *UseCase) failHandoff(ctx context.Context, s *domcheckout.Session, start time.Time, stage, msg string, cause error) (*StepResult, error) {
	s.EndSubmit()
	s.UpdatedAt = uc.now().UTC()
	if err := uc.sessions.Update(ctx, s); err != nil {
		uc.log.Error().Err(err).Str("session_id", s.ID).Msg("checkout: no se pudo liberar el envío")
	}
	outcome := "payment_failed"
	if stage == StageAuditLog {
		outcome = "audit_failed"
	}
	metrics.HandoffTotal.WithLabelValues(outcome).Inc()
	metrics.HandoffDuration.WithLabelValues(outcome).Observe(uc.now().Sub(start).Seconds())

	herr := &HandoffError{Stage: stage, Message: msg, Err: cause}
	resp, err := uc.toResponse(s)
	if err != nil {
		return nil, herr
	}
	return &StepResult{Session: resp}, herr
}

// gatewayMessage mensaje del proveedor o el genérico.
func gatewayMessage(err error) string {
	var ge *ports.GatewayError
	if errors.As(err, &ge) && strings.TrimSpace(ge.Message) != "" {
		return ge.Message
	}
	return MsgPaymentFailed
}

func customerFromDetails(d domcheckout.CustomerDetails) ports.PaymentCustomer {
	return ports.PaymentCustomer{Name: d.FullName, Email: d.Email, BusinessName: d.BusinessName, Phone: d.Phone}
}

func paymentRequest(id, purchaseType string, sel domcheckout.Selection, c ports.PaymentCustomer, promo string, snap entity.PricingSnapshot) ports.PaymentSessionRequest {
	return ports.PaymentSessionRequest{
		CheckoutSessionID: id,
		PurchaseType:      purchaseType,
		ProductType:       sel.ProductType,
		ProductID:         sel.ProductID,
		Tier:              sel.Tier,
		Items:             sel.Items,
		Customer:          c,
		PromoCode:         promo,
		Snapshot:          snap,
	}
}

func newOrder(sessionID string, ps *ports.PaymentSession, c ports.PaymentCustomer, purchaseType, promo string, snap entity.PricingSnapshot, now time.Time) *entity.Order {
	names := make([]string, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		names = append(names, l.Name)
	}
	return &entity.Order{
		CheckoutSessionID: sessionID,
		PaymentSessionID:  ps.ID,
		PaymentURL:        ps.URL,
		CustomerName:      c.Name,
		CustomerEmail:     strings.ToLower(c.Email),
		BusinessName:      c.BusinessName,
		CustomerPhone:     c.Phone,
		PurchaseType:      purchaseType,
		Summary:           strings.Join(names, ", "),
		Currency:          snap.Currency,
		SetupFee:          snap.SetupFee,
		DiscountPercent:   snap.DiscountPercent,
		PromoCode:         promo,
		DiscountedSetup:   snap.DiscountedSetup,
		MonthlyFee:        snap.DiscountedMonthly,
		TotalDueToday:     snap.TotalDueToday,
		Status:            entity.OrderStatusPendingPayment,
		CreatedAt:         now.UTC(),
	}
}
