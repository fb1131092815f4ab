package checkout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/oasis-api/internal/domain"
	"github.com/jhoicas/oasis-api/internal/domain/entity"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
)

// Flow variante del checkout.
type Flow string

const (
	FlowStandard        Flow = "standard"
	FlowCustomAgreement Flow = "custom_agreement"
)

// ParseFlow vacío = standard.
func ParseFlow(s string) (Flow, bool) {
	switch Flow(strings.ToLower(strings.TrimSpace(s))) {
	case "", FlowStandard:
		return FlowStandard, true
	case FlowCustomAgreement:
		return FlowCustomAgreement, true
	default:
		return "", false
	}
}

// Step paso actual. El flujo standard salta StepNDA.
type Step int

const (
	StepDetails Step = 1
	StepLegal   Step = 2
	StepNDA     Step = 3
	StepHandoff Step = 4
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepLegal:
		return "legal"
	case StepNDA:
		return "nda"
	case StepHandoff:
		return "handoff"
	default:
		return "unknown"
	}
}

// Selection lo que se está comprando. Items no vacío = checkout desde un carrito.
type Selection struct {
	ProductType entity.ProductType
	ProductID   string
	Tier        entity.TierKey
	Currency    entity.Currency
	CartID      string
	Items       []entity.CartItem
}

// CartItems ítems a cotizar: los del carrito o el producto único.
func (s Selection) CartItems() []entity.CartItem {
	if len(s.Items) > 0 {
		return s.Items
	}
	if s.ProductID == "" {
		return nil
	}
	return []entity.CartItem{{ProductID: s.ProductID, ProductType: s.ProductType, Tier: s.Tier, Quantity: 1}}
}

// CustomerDetails datos del paso 1.
type CustomerDetails struct {
	FullName     string
	Email        string
	BusinessName string
	Phone        string
}

// LegalInput casillas del paso 2.
type LegalInput struct {
	Terms            bool
	Privacy          bool
	ServiceAgreement bool
}

// LegalAcceptance registro de que el paso 2 se aceptó.
type LegalAcceptance struct {
	AcceptedAt time.Time
}

// NDAInput datos del acuerdo personalizado (paso 3).
type NDAInput struct {
	UpfrontCost decimal.Decimal
	MonthlyCost decimal.Decimal
	Description string
	Signature   string
	Agreed      bool
}

// NDAAcceptance acuerdo firmado.
type NDAAcceptance struct {
	UpfrontCost decimal.Decimal
	MonthlyCost decimal.Decimal
	Description string
	Signature   string
	AcceptedAt  time.Time
}

// Session estado del checkout de un visitante. Vive hasta ExpiresAt o hasta el handoff.
type Session struct {
	ID         string
	Flow       Flow
	Step       Step
	Selection  Selection
	Discount   pricing.DiscountState
	Details    CustomerDetails
	Legal      *LegalAcceptance
	NDA        *NDAAcceptance
	Submitting bool
	Completed  bool
	PaymentURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

// NewSession arranca en el paso de datos del cliente.
func NewSession(id string, flow Flow, sel Selection, now time.Time, ttl time.Duration) *Session {
	if sel.Currency == "" {
		sel.Currency = entity.CurrencyCAD
	}
	return &Session{
		ID:        id,
		Flow:      flow,
		Step:      StepDetails,
		Selection: sel,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired indica si la sesión ya no admite cambios.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) mutable() error {
	if s.Completed {
		return domain.ErrCheckoutCompleted
	}
	if s.Submitting {
		return domain.ErrSubmitInProgress
	}
	return nil
}

// SubmitDetails valida el paso 1 y avanza a Legal. Los valores se guardan aunque fallen.
func (s *Session) SubmitDetails(d CustomerDetails) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.Step != StepDetails {
		return domain.ErrInvalidTransition
	}
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.BusinessName = strings.TrimSpace(d.BusinessName)
	d.Phone = strings.TrimSpace(d.Phone)
	s.Details = d

	fe := FieldErrors{}
	if d.FullName == "" {
		fe[FieldFullName] = MsgNameRequired
	}
	switch {
	case d.Email == "":
		fe[FieldEmail] = MsgEmailRequired
	case !ValidEmail(d.Email):
		fe[FieldEmail] = MsgEmailInvalid
	}
	if err := fe.OrNil(); err != nil {
		return err
	}
	s.Step = StepLegal
	return nil
}

// AcceptLegal valida el paso 2. En el flujo standard la sesión queda lista para
// el handoff sin cambiar de paso; en el personalizado avanza al NDA.
func (s *Session) AcceptLegal(in LegalInput, now time.Time) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.Step != StepLegal {
		return domain.ErrInvalidTransition
	}
	if !in.Terms || !in.Privacy || !in.ServiceAgreement {
		s.Legal = nil
		return FieldErrors{FieldLegal: MsgAcceptAll}
	}
	s.Legal = &LegalAcceptance{AcceptedAt: now}
	if s.Flow == FlowCustomAgreement {
		s.Step = StepNDA
	}
	return nil
}

// SubmitNDA valida el paso 3 del flujo personalizado. Las cuatro condiciones deben cumplirse.
func (s *Session) SubmitNDA(in NDAInput, now time.Time) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if s.Flow != FlowCustomAgreement || s.Step != StepNDA {
		return domain.ErrInvalidTransition
	}
	fe := FieldErrors{}
	if !in.UpfrontCost.IsPositive() && !in.MonthlyCost.IsPositive() {
		fe[FieldCost] = MsgCostRequired
	}
	sig := strings.TrimSpace(in.Signature)
	switch {
	case sig == "":
		fe[FieldSignature] = MsgSignatureRequired
	case !strings.EqualFold(sig, strings.TrimSpace(s.Details.FullName)):
		fe[FieldSignature] = MsgSignatureMismatch
	}
	if !in.Agreed {
		fe[FieldAgreement] = MsgAgreementRequired
	}
	if err := fe.OrNil(); err != nil {
		s.NDA = nil
		return err
	}
	s.NDA = &NDAAcceptance{
		UpfrontCost: in.UpfrontCost,
		MonthlyCost: in.MonthlyCost,
		Description: strings.TrimSpace(in.Description),
		Signature:   sig,
		AcceptedAt:  now,
	}
	return nil
}

// Back vuelve al paso anterior sin borrar lo ingresado.
func (s *Session) Back() error {
	if err := s.mutable(); err != nil {
		return err
	}
	switch s.Step {
	case StepNDA:
		s.Step = StepLegal
	case StepLegal:
		s.Step = StepDetails
	default:
		return domain.ErrInvalidTransition
	}
	return nil
}

// ReadyForHandoff indica que la última aceptación del flujo ya se registró.
func (s *Session) ReadyForHandoff() bool {
	if s.Completed || s.Legal == nil {
		return false
	}
	switch s.Flow {
	case FlowCustomAgreement:
		return s.Step == StepNDA && s.NDA != nil
	default:
		return s.Step == StepLegal
	}
}

// BeginSubmit marca el envío en curso. Un segundo envío concurrente se rechaza.
func (s *Session) BeginSubmit() error {
	if s.Completed {
		return domain.ErrCheckoutCompleted
	}
	if s.Submitting {
		return domain.ErrSubmitInProgress
	}
	if !s.ReadyForHandoff() {
		return domain.ErrInvalidTransition
	}
	s.Submitting = true
	return nil
}

// EndSubmit libera el envío tras un fallo; el paso se conserva para reintentar.
func (s *Session) EndSubmit() {
	s.Submitting = false
}

// CompleteHandoff estado terminal: la sesión ya no acepta cambios.
func (s *Session) CompleteHandoff(url string) error {
	if s.Completed {
		return domain.ErrCheckoutCompleted
	}
	s.Step = StepHandoff
	s.Completed = true
	s.Submitting = false
	s.PaymentURL = url
	return nil
}

// ChangeSelection cambia nivel o moneda. El código aplicado se conserva tal cual.
// El nivel solo aplica al checkout de una automatización; en un carrito se edita el carrito.
func (s *Session) ChangeSelection(tier entity.TierKey, currency entity.Currency) error {
	if err := s.mutable(); err != nil {
		return err
	}
	if tier != "" && len(s.Selection.Items) == 0 && s.Selection.ProductType == entity.ProductTypeAutomation {
		s.Selection.Tier = tier
	}
	if currency != "" {
		s.Selection.Currency = currency
	}
	return nil
}

// ApplyPromo reemplaza el código activo.
func (s *Session) ApplyPromo(engine *pricing.DiscountEngine, code string) (pricing.PromoResult, error) {
	if err := s.mutable(); err != nil {
		return pricing.PromoResult{}, err
	}
	return s.Discount.Apply(engine, code), nil
}

// PurchaseType tipo que se registra en el audit log y en el pedido.
func (s *Session) PurchaseType() string {
	if s.Flow == FlowCustomAgreement {
		return string(entity.ProductTypeCustom)
	}
	if len(s.Selection.Items) > 1 {
		return "cart"
	}
	if items := s.Selection.CartItems(); len(items) == 1 {
		return string(items[0].ProductType)
	}
	return string(s.Selection.ProductType)
}

// Quote precio actual de la sesión.
func (s *Session) Quote(calc *pricing.Calculator) (entity.PricingSnapshot, error) {
	if s.Flow == FlowCustomAgreement {
		upfront, monthly := decimal.Zero, decimal.Zero
		if s.NDA != nil {
			upfront, monthly = s.NDA.UpfrontCost, s.NDA.MonthlyCost
		}
		return pricing.CustomTotal(upfront, monthly, s.Selection.Currency, s.Discount.Percent), nil
	}
	return calc.Quote(s.Selection.CartItems(), s.Selection.Currency, s.Discount.Percent)
}

// AuditRecords filas del audit log para la aceptación final: términos, privacidad y
// acuerdo de servicio, más el NDA en el flujo personalizado.
func (s *Session) AuditRecords(version, userAgent, ip string, now time.Time) []entity.LegalAcceptance {
	base := entity.LegalAcceptance{
		CheckoutSessionID:   s.ID,
		ClientName:          s.Details.FullName,
		ClientEmail:         s.Details.Email,
		CompanyName:         s.Details.BusinessName,
		DocumentVersion:     version,
		AcceptanceMethod:    entity.AcceptanceMethodCheckbox,
		RelatedPurchaseType: s.PurchaseType(),
		UserAgent:           userAgent,
		IPAddress:           ip,
		AcceptedAt:          now,
	}
	docs := []string{entity.DocumentTermsOfService, entity.DocumentPrivacyPolicy, entity.DocumentServiceAgreement}
	out := make([]entity.LegalAcceptance, 0, len(docs)+1)
	for _, d := range docs {
		r := base
		r.DocumentType = d
		out = append(out, r)
	}
	if s.Flow == FlowCustomAgreement && s.NDA != nil {
		r := base
		r.DocumentType = entity.DocumentNDA
		r.AcceptanceMethod = entity.AcceptanceMethodTypedSignature
		out = append(out, r)
	}
	return out
}
